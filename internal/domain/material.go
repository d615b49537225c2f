package domain

import (
	"strings"
)

// Difficulty is the requested quiz difficulty level
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes and validates a difficulty label
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

// Material is an uploaded document: raw bytes plus the declared filename.
// It is owned by the caller for the duration of one request and never
// persisted.
type Material struct {
	Filename string
	Data     []byte
}

// IsPDF selects the extraction strategy from the declared extension
func (m Material) IsPDF() bool {
	return strings.HasSuffix(strings.ToLower(m.Filename), ".pdf")
}

// QuizSource records which content path fed the prompt
type QuizSource string

const (
	// SourceDocument means the full extracted text passed the context gate
	SourceDocument QuizSource = "document"
	// SourceKeywords means the gate failed and keyword topics were used instead
	SourceKeywords QuizSource = "keywords"
)

// QuizRequest combines a content blob with the quiz parameters.
// NumQuestions is bounded by configuration; Difficulty comes from the
// fixed enumerated set.
type QuizRequest struct {
	Text         string
	NumQuestions int
	Difficulty   Difficulty
}

// Validate checks the request against the configured question bounds
func (r QuizRequest) Validate(minQuestions, maxQuestions int) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(r.Text) == "" {
		errs = append(errs, NewMissingFieldError("text"))
	}
	if r.NumQuestions < minQuestions || r.NumQuestions > maxQuestions {
		errs = append(errs, NewOutOfRangeError("num_questions", r.NumQuestions, minQuestions, maxQuestions))
	}
	if _, ok := ParseDifficulty(string(r.Difficulty)); !ok {
		errs = append(errs, NewInvalidFormatError("difficulty", string(r.Difficulty)))
	}

	return errs
}

// GeneratedQuiz is a successfully generated quiz artifact. Failures never
// travel through this type; they are DomainErrors.
type GeneratedQuiz struct {
	ID       string
	CSV      string
	Source   QuizSource
	Keywords []string
}
