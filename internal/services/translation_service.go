package services

import (
	"context"
	"errors"

	"microblog/internal/logger"
	"microblog/internal/metrics"
	"microblog/internal/translate"
	"microblog/pkg/apperrors"
)

type TranslationService interface {
	Translate(ctx context.Context, text, sourceLang, destLang string) (string, error)
}

type TranslationServiceImpl struct {
	translator translate.Translator
}

func NewTranslationService(translator translate.Translator) TranslationService {
	return &TranslationServiceImpl{translator: translator}
}

func (s *TranslationServiceImpl) Translate(ctx context.Context, text, sourceLang, destLang string) (string, error) {
	if s.translator == nil {
		metrics.TranslationRequests.WithLabelValues("not_configured").Inc()
		return "", apperrors.ErrTranslationNotConfigured
	}

	out, err := s.translator.Translate(ctx, text, sourceLang, destLang)
	switch {
	case err == nil:
		metrics.TranslationRequests.WithLabelValues("success").Inc()
		return out, nil
	case errors.Is(err, translate.ErrNotConfigured):
		metrics.TranslationRequests.WithLabelValues("not_configured").Inc()
		return "", apperrors.ErrTranslationNotConfigured
	default:
		metrics.TranslationRequests.WithLabelValues("failure").Inc()
		logger.CtxError(ctx, "Translation failed", "error", err, "from", sourceLang, "to", destLang)
		return "", apperrors.ErrTranslationFailed.WithError(err)
	}
}
