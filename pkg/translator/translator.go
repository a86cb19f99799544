// Package translator implements the text-to-SQL core: prompt construction,
// completion response normalization, safety classification and their
// orchestration. It never executes SQL; execution stays behind the
// repository boundary with its own credentials.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/vidstat/statbot/pkg/llm"
	"github.com/vidstat/statbot/pkg/logging"
	"github.com/vidstat/statbot/pkg/schema"
)

// ErrEmptyCompletion reports that the backend call succeeded but produced no
// usable text.
var ErrEmptyCompletion = errors.New("completion backend returned no text")

// Config holds per-translator settings.
type Config struct {
	// RequestTimeout bounds one completion backend call.
	RequestTimeout time.Duration
	// MaxInFlight caps concurrent outstanding backend calls.
	MaxInFlight int
}

// Translator turns one natural-language question into one certified SQL
// statement. It is safe for concurrent use: the only shared state is the
// constant schema descriptor and the admission semaphore.
type Translator struct {
	client llm.CompletionClient
	schema *schema.Descriptor
	cfg    Config
	sem    *semaphore.Weighted
	logger *zap.Logger
}

// New creates a Translator.
func New(client llm.CompletionClient, d *schema.Descriptor, cfg Config, logger *zap.Logger) *Translator {
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Translator{
		client: client,
		schema: d,
		cfg:    cfg,
		sem:    semaphore.NewWeighted(int64(cfg.MaxInFlight)),
		logger: logger.Named("translator"),
	}
}

// ToSQL runs the full pipeline: build prompt → bounded backend call →
// normalize → classify. On success the returned query is certified for
// execution. Every failure comes back as an error; none escape as panics.
//
// Failure modes: a wrapped *llm.Error (backend unavailable),
// ErrEmptyCompletion, or *RejectionError (classifier veto, sentinel
// included). Rejection details are logged here and never surface to users.
func (t *Translator) ToSQL(ctx context.Context, userQuery string) (CertifiedQuery, error) {
	messages := BuildMessages(t.schema, userQuery)

	if err := t.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("admission wait: %w", err)
	}
	defer t.sem.Release(1)

	callCtx, cancel := context.WithTimeout(ctx, t.cfg.RequestTimeout)
	defer cancel()

	raw, err := t.client.Complete(callCtx, messages[0].Text, messages[1].Text)
	if err != nil {
		t.logger.Warn("completion backend call failed",
			zap.String("model", t.client.Model()),
			zap.String("error", logging.SanitizeError(err)))
		return "", fmt.Errorf("completion backend: %w", err)
	}

	if strings.TrimSpace(raw) == "" {
		t.logger.Warn("empty backend response")
		return "", ErrEmptyCompletion
	}

	normalized := Normalize(raw)
	t.logger.Debug("normalized completion",
		zap.String("statement", logging.SanitizeQuery(normalized)))

	certified, err := Classify(normalized)
	if err != nil {
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			t.logger.Warn("statement rejected",
				zap.String("reason", string(rejection.Reason)),
				zap.String("statement", logging.SanitizeQuery(normalized)))
		}
		return "", err
	}

	t.logger.Info("statement certified",
		zap.String("statement", logging.SanitizeQuery(string(certified))))
	return certified, nil
}
