package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"microblog/internal/logger"

	"github.com/hashicorp/go-retryablehttp"
)

var (
	ErrNotConfigured = errors.New("translation service is not configured")
	ErrServiceFailed = errors.New("translation service failed")
)

// Translator переводит текст между языками.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// Config - параметры Microsoft Translator Text API v3
type Config struct {
	Endpoint   string
	Key        string
	Region     string
	Timeout    time.Duration
	MaxRetries int
}

// MicrosoftTranslator - клиент Azure Translator с повторами на 5xx и сетевых ошибках.
type MicrosoftTranslator struct {
	cfg    Config
	client *retryablehttp.Client
}

func NewMicrosoftTranslator(cfg Config) *MicrosoftTranslator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.MaxRetries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = logger.GetLogger()

	return &MicrosoftTranslator{cfg: cfg, client: client}
}

type translateRequestItem struct {
	Text string `json:"Text"`
}

type translateResponseItem struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

// Translate переводит text с from на to. Пустой from - автоопределение сервисом.
func (t *MicrosoftTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if t.cfg.Key == "" {
		return "", ErrNotConfigured
	}

	q := url.Values{}
	q.Set("api-version", "3.0")
	q.Set("to", to)
	if from != "" {
		q.Set("from", from)
	}
	endpoint := t.cfg.Endpoint + "/translate?" + q.Encode()

	body, err := json.Marshal([]translateRequestItem{{Text: text}})
	if err != nil {
		return "", err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Ocp-Apim-Subscription-Key", t.cfg.Key)
	if t.cfg.Region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", t.cfg.Region)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		logger.HTTPLog(http.MethodPost, t.cfg.Endpoint, 0, time.Since(start), err)
		return "", fmt.Errorf("%w: %v", ErrServiceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		err := fmt.Errorf("%w: status %d", ErrServiceFailed, resp.StatusCode)
		logger.HTTPLog(http.MethodPost, t.cfg.Endpoint, resp.StatusCode, time.Since(start), err)
		return "", err
	}
	logger.HTTPLog(http.MethodPost, t.cfg.Endpoint, resp.StatusCode, time.Since(start), nil)

	var items []translateResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrServiceFailed, err)
	}
	if len(items) == 0 || len(items[0].Translations) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrServiceFailed)
	}
	return items[0].Translations[0].Text, nil
}
