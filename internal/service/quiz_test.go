package service_test

import (
	"context"
	"strings"
	"testing"

	"studyquiz/internal/adapter/quizgen"
	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockExtractor
type MockExtractor struct {
	ExtractFunc func(material domain.Material) (string, error)
}

func (m *MockExtractor) Extract(material domain.Material) (string, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(material)
	}
	panic("MockExtractor.ExtractFunc not implemented")
}

// MockGenerator
type MockGenerator struct {
	GenerateQuizFunc func(ctx context.Context, prompt string) (string, error)
	LastPrompt       string
}

func (m *MockGenerator) GenerateQuiz(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, prompt)
	}
	panic("MockGenerator.GenerateQuizFunc not implemented")
}

func testConfig() *config.Config {
	return &config.Config{
		Quiz: config.QuizConfig{
			MinContextLength: 300,
			MaxKeywords:      8,
			SummarySentences: 5,
			MinQuestions:     1,
			MaxQuestions:     15,
		},
	}
}

// longText builds >=300 chars of real repeated words so the context gate
// passes
func longText() string {
	return strings.TrimSpace(strings.Repeat("Photosynthesis converts sunlight into glucose inside chloroplasts. ", 8))
}

func validCSV() string {
	return quizgen.CSVHeader + "\n1,What is photosynthesis?,A,B,C,D,A"
}

func TestGenerateQuiz_DocumentPath(t *testing.T) {
	generator := &MockGenerator{
		GenerateQuizFunc: func(ctx context.Context, prompt string) (string, error) {
			return validCSV(), nil
		},
	}
	svc := service.NewQuizService(&MockExtractor{}, generator, testConfig())

	text := longText()
	quiz, err := svc.GenerateQuiz(context.Background(), domain.QuizRequest{
		Text:         text,
		NumQuestions: 5,
		Difficulty:   domain.DifficultyMedium,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceDocument, quiz.Source)
	assert.Empty(t, quiz.Keywords)
	assert.NotEmpty(t, quiz.ID)
	assert.True(t, strings.HasPrefix(quiz.CSV, quizgen.CSVHeader))

	// The full text feeds the prompt on the document path
	assert.Contains(t, generator.LastPrompt, "Photosynthesis converts sunlight")
	assert.Contains(t, generator.LastPrompt, "Difficulty: medium")
}

func TestGenerateQuiz_KeywordPathForShortText(t *testing.T) {
	generator := &MockGenerator{
		GenerateQuizFunc: func(ctx context.Context, prompt string) (string, error) {
			return validCSV(), nil
		},
	}
	svc := service.NewQuizService(&MockExtractor{}, generator, testConfig())

	// 50 characters: well under the 300-char gate
	quiz, err := svc.GenerateQuiz(context.Background(), domain.QuizRequest{
		Text:         "Photosynthesis produces glucose and needs light.",
		NumQuestions: 3,
		Difficulty:   domain.DifficultyEasy,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceKeywords, quiz.Source)
	require.NotEmpty(t, quiz.Keywords)
	assert.Contains(t, quiz.Keywords, "photosynthesis")

	// Keywords, not the raw text, feed the prompt
	assert.Contains(t, generator.LastPrompt, strings.Join(quiz.Keywords, ", "))
	assert.Contains(t, generator.LastPrompt, "Generate 3 multiple-choice questions")
	assert.Contains(t, generator.LastPrompt, "easy")
}

func TestGenerateQuiz_GeneratorFailureSurfacesAsError(t *testing.T) {
	generator := &MockGenerator{
		GenerateQuizFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", domain.NewLLMServiceError(assert.AnError)
		},
	}
	svc := service.NewQuizService(&MockExtractor{}, generator, testConfig())

	quiz, err := svc.GenerateQuiz(context.Background(), domain.QuizRequest{
		Text:         longText(),
		NumQuestions: 5,
		Difficulty:   domain.DifficultyHard,
	})

	assert.Nil(t, quiz, "a failure must never look like a quiz")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrLLMServiceError, domainErr.Code)
}

func TestGenerateQuiz_StripsMarkdownFences(t *testing.T) {
	generator := &MockGenerator{
		GenerateQuizFunc: func(ctx context.Context, prompt string) (string, error) {
			return "```csv\n" + validCSV() + "\n```", nil
		},
	}
	svc := service.NewQuizService(&MockExtractor{}, generator, testConfig())

	quiz, err := svc.GenerateQuiz(context.Background(), domain.QuizRequest{
		Text:         longText(),
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	require.NoError(t, err)
	assert.Equal(t, validCSV(), quiz.CSV)
}

func TestGenerateQuiz_StripsFenceVariants(t *testing.T) {
	variants := map[string]string{
		"lowercase tag":          "```csv\n" + validCSV() + "\n```",
		"uppercase tag":          "```CSV\n" + validCSV() + "\n```",
		"bare fence":             "```\n" + validCSV() + "\n```",
		"tag on its own line":    "```\nCSV\n" + validCSV() + "\n```",
		"no closing fence":       "```csv\n" + validCSV(),
		"surrounding whitespace": "\n\n```csv\n" + validCSV() + "\n```\n",
	}

	for name, raw := range variants {
		t.Run(name, func(t *testing.T) {
			generator := &MockGenerator{
				GenerateQuizFunc: func(ctx context.Context, prompt string) (string, error) {
					return raw, nil
				},
			}
			svc := service.NewQuizService(&MockExtractor{}, generator, testConfig())

			quiz, err := svc.GenerateQuiz(context.Background(), domain.QuizRequest{
				Text:         longText(),
				NumQuestions: 5,
				Difficulty:   domain.DifficultyEasy,
			})

			require.NoError(t, err)
			assert.Equal(t, validCSV(), quiz.CSV)
		})
	}
}

func TestGenerateQuiz_RejectsOutputWithoutHeader(t *testing.T) {
	generator := &MockGenerator{
		GenerateQuizFunc: func(ctx context.Context, prompt string) (string, error) {
			return "Here are your questions:\n1. What is photosynthesis?", nil
		},
	}
	svc := service.NewQuizService(&MockExtractor{}, generator, testConfig())

	quiz, err := svc.GenerateQuiz(context.Background(), domain.QuizRequest{
		Text:         longText(),
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	assert.Nil(t, quiz)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrMalformedQuiz, domainErr.Code)
}

func TestGenerateQuiz_Validation(t *testing.T) {
	svc := service.NewQuizService(&MockExtractor{}, &MockGenerator{}, testConfig())

	tests := []struct {
		name string
		req  domain.QuizRequest
	}{
		{"empty text", domain.QuizRequest{Text: "  ", NumQuestions: 5, Difficulty: domain.DifficultyEasy}},
		{"zero questions", domain.QuizRequest{Text: "some text", NumQuestions: 0, Difficulty: domain.DifficultyEasy}},
		{"too many questions", domain.QuizRequest{Text: "some text", NumQuestions: 16, Difficulty: domain.DifficultyEasy}},
		{"unknown difficulty", domain.QuizRequest{Text: "some text", NumQuestions: 5, Difficulty: "expert"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz, err := svc.GenerateQuiz(context.Background(), tt.req)
			assert.Nil(t, quiz)
			var validationErrs domain.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
			assert.NotEmpty(t, validationErrs)
		})
	}
}

func TestIngestText(t *testing.T) {
	svc := service.NewQuizService(&MockExtractor{}, &MockGenerator{}, testConfig())

	resp, err := svc.IngestText(longText())

	require.NoError(t, err)
	assert.True(t, resp.HasContext)
	assert.Empty(t, resp.Keywords, "keywords only computed when the gate fails")
	assert.NotEmpty(t, resp.Summary)
	assert.LessOrEqual(t, len(resp.Summary), len(resp.Text))
}

func TestIngestText_ShortTextGetsKeywords(t *testing.T) {
	svc := service.NewQuizService(&MockExtractor{}, &MockGenerator{}, testConfig())

	resp, err := svc.IngestText("Photosynthesis produces glucose.")

	require.NoError(t, err)
	assert.False(t, resp.HasContext)
	assert.Contains(t, resp.Keywords, "photosynthesis")
}

func TestIngestText_EmptyIsNotAPipelineError(t *testing.T) {
	svc := service.NewQuizService(&MockExtractor{}, &MockGenerator{}, testConfig())

	resp, err := svc.IngestText("   \n ")

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrEmptyInput, domainErr.Code)
}

func TestIngestMaterial_ExtractionFailureIsSoft(t *testing.T) {
	extractor := &MockExtractor{
		ExtractFunc: func(material domain.Material) (string, error) {
			return "", domain.NewExtractionError(material.Filename, assert.AnError)
		},
	}
	svc := service.NewQuizService(extractor, &MockGenerator{}, testConfig())

	resp, err := svc.IngestMaterial(domain.Material{Filename: "broken.pdf", Data: []byte("x")})

	// Reported to the display layer, not an error of the pipeline
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
	assert.Contains(t, resp.Warning, "broken.pdf")
}

func TestIngestMaterial_PassesThroughExtractedText(t *testing.T) {
	extractor := &MockExtractor{
		ExtractFunc: func(material domain.Material) (string, error) {
			return longText(), nil
		},
	}
	svc := service.NewQuizService(extractor, &MockGenerator{}, testConfig())

	resp, err := svc.IngestMaterial(domain.Material{Filename: "lecture.pdf", Data: []byte("%PDF-")})

	require.NoError(t, err)
	assert.True(t, resp.HasContext)
	assert.Equal(t, longText(), resp.Text)
}
