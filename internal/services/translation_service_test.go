package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"microblog/internal/services"
	"microblog/internal/translate"
	"microblog/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslator struct {
	out string
	err error
}

func (s stubTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	return s.out, s.err
}

func TestTranslationService(t *testing.T) {
	ctx := context.Background()

	out, err := services.NewTranslationService(stubTranslator{out: "Hola"}).Translate(ctx, "Hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "Hola", out)

	_, err = services.NewTranslationService(nil).Translate(ctx, "Hello", "en", "es")
	assert.ErrorIs(t, err, apperrors.ErrTranslationNotConfigured)

	_, err = services.NewTranslationService(stubTranslator{err: translate.ErrNotConfigured}).Translate(ctx, "Hello", "en", "es")
	assert.ErrorIs(t, err, apperrors.ErrTranslationNotConfigured)

	_, err = services.NewTranslationService(stubTranslator{err: fmt.Errorf("%w: status 500", translate.ErrServiceFailed)}).Translate(ctx, "Hello", "en", "es")
	assert.ErrorIs(t, err, apperrors.ErrTranslationFailed)
	assert.True(t, errors.Is(err, translate.ErrServiceFailed))
}
