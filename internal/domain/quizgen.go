package domain

import "context"

// QuizGenerator is the capability interface for the external generative
// text service. It takes a fully rendered prompt and returns the raw model
// output. Implementations report failures as *DomainError with code
// ErrLLMServiceError so they can be substituted with a stub in tests.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, prompt string) (string, error)
}
