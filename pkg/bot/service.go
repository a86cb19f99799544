// Package bot wires the translation pipeline to the Telegram chat transport.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/vidstat/statbot/pkg/logging"
	sqlgate "github.com/vidstat/statbot/pkg/sql"
	"github.com/vidstat/statbot/pkg/translator"
)

// User-facing messages. Deliberately generic: rejection reasons, SQL text and
// backend output stay in logs and never reach chat.
const (
	msgWelcome = "Привет! Я отвечаю на вопросы о статистике видео. " +
		"Спросите, например: «Сколько видео набрали больше 10000 просмотров?»"
	msgCannotUnderstand = "Не удалось понять запрос. Попробуйте переформулировать вопрос."
	msgProcessingError  = "Произошла ошибка при обработке запроса. Попробуйте позже."
	msgNoResult         = "Запрос не вернул результатов."
)

// maxEchoedQuestionLength bounds how much of the user's question is echoed
// back in the reply.
const maxEchoedQuestionLength = 100

// Translator turns a question into a certified statement.
type Translator interface {
	ToSQL(ctx context.Context, userQuery string) (translator.CertifiedQuery, error)
}

// ScalarExecutor runs a certified statement and returns its scalar.
type ScalarExecutor interface {
	QueryScalar(ctx context.Context, query translator.CertifiedQuery) (any, bool, error)
}

// Answerer produces one chat reply per incoming question.
type Answerer struct {
	translator Translator
	executor   ScalarExecutor
	logger     *zap.Logger
}

// NewAnswerer creates an Answerer.
func NewAnswerer(t Translator, e ScalarExecutor, logger *zap.Logger) *Answerer {
	return &Answerer{translator: t, executor: e, logger: logger.Named("answerer")}
}

// Answer handles one question and always returns a user-facing HTML string.
// Every failure mode maps to one of the generic messages; nothing internal
// leaks into the return value.
func (a *Answerer) Answer(ctx context.Context, userText string) string {
	if check := sqlgate.CheckUserQuery(userText); check != nil {
		a.logger.Warn("chat message screened as injection payload",
			zap.String("fingerprint", check.Fingerprint))
		return msgCannotUnderstand
	}

	certified, err := a.translator.ToSQL(ctx, userText)
	if err != nil {
		return a.translationFailure(err)
	}

	value, found, err := a.executor.QueryScalar(ctx, certified)
	if err != nil {
		a.logger.Warn("execution failed",
			zap.String("error", logging.SanitizeError(err)))
		return msgProcessingError
	}
	if !found {
		return msgNoResult
	}

	return renderReply(userText, FormatScalar(value))
}

// translationFailure maps the translation error taxonomy onto the two generic
// user messages. Rejections and empty completions read as "could not
// understand"; backend faults read as a processing error.
func (a *Answerer) translationFailure(err error) string {
	var rejection *translator.RejectionError
	switch {
	case errors.As(err, &rejection):
		a.logger.Info("question not translatable",
			zap.String("reason", string(rejection.Reason)))
		return msgCannotUnderstand
	case errors.Is(err, translator.ErrEmptyCompletion):
		a.logger.Info("backend produced no statement")
		return msgCannotUnderstand
	default:
		a.logger.Warn("translation failed",
			zap.String("error", logging.SanitizeError(err)))
		return msgProcessingError
	}
}

// renderReply builds the HTML reply echoing the question and the result.
func renderReply(question, result string) string {
	runes := []rune(question)
	if len(runes) > maxEchoedQuestionLength {
		question = string(runes[:maxEchoedQuestionLength]) + "..."
	}
	return fmt.Sprintf(
		"<b>Запрос:</b> <i>%s</i>\n\n<b>Результат:</b> <code>%s</code>",
		html.EscapeString(question), html.EscapeString(result),
	)
}
