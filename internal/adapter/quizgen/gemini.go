package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GeminiQuizGenerator implements domain.QuizGenerator on top of the
// Gemini API through langchaingo.
type GeminiQuizGenerator struct {
	llm        llms.Model
	modelName  string
	timeout    time.Duration
	maxRetries int
}

// NewGeminiQuizGenerator creates the langchaingo Gemini client and wraps
// it as a domain.QuizGenerator.
func NewGeminiQuizGenerator(ctx context.Context, cfg config.GeminiConfig) (*GeminiQuizGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Get().Info("Initialized Gemini quiz generator", zap.String("model", cfg.Model))
	return &GeminiQuizGenerator{
		llm:        llm,
		modelName:  cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// newWithModel wires an arbitrary llms.Model; tests use it to substitute
// a stub for the network client.
func newWithModel(llm llms.Model, cfg config.GeminiConfig) *GeminiQuizGenerator {
	return &GeminiQuizGenerator{
		llm:        llm,
		modelName:  cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
	}
}

// GenerateQuiz sends the prompt to Gemini and returns the raw model
// output. Each attempt runs under its own timeout; transient failures are
// retried with exponential backoff up to the configured limit. Context
// cancellation and safety-policy rejections are not retried. All failures
// come back as *domain.DomainError with code LLM_SERVICE_ERROR.
func (g *GeminiQuizGenerator) GenerateQuiz(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			l.Warn("Retrying Gemini call",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", domain.NewLLMServiceError(ctx.Err())
			}
		}

		response, err := g.callOnce(ctx, prompt)
		if err == nil {
			l.Info("Gemini call succeeded",
				zap.String("model", g.modelName),
				zap.Int("attempt", attempt),
				zap.Int("response_len", len(response)),
			)
			return response, nil
		}

		lastErr = err
		if !isRetryable(err) {
			break
		}
	}

	l.Error("Gemini call failed", zap.String("model", g.modelName), zap.Error(lastErr))
	return "", domain.NewLLMServiceError(lastErr)
}

func (g *GeminiQuizGenerator) callOnce(ctx context.Context, prompt string) (string, error) {
	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	response, err := llms.GenerateFromSinglePrompt(callCtx, g.llm, prompt, llms.WithTemperature(0.1))
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

// isRetryable separates transient transport failures from terminal ones.
// A deadline on a single attempt is transient; a canceled parent context
// or a content-policy rejection is not.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "safety") || strings.Contains(msg, "blocked") {
		return false
	}
	if strings.Contains(msg, "api key") || strings.Contains(msg, "permission") || strings.Contains(msg, "unauthenticated") {
		return false
	}
	return true
}

var _ domain.QuizGenerator = (*GeminiQuizGenerator)(nil)
