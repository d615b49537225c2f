package domain_test

import (
	"testing"

	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.Difficulty
		ok       bool
	}{
		{"easy", domain.DifficultyEasy, true},
		{"MEDIUM", domain.DifficultyMedium, true},
		{" hard ", domain.DifficultyHard, true},
		{"expert", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := domain.ParseDifficulty(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.expected, got, "input %q", tt.input)
	}
}

func TestMaterialIsPDF(t *testing.T) {
	assert.True(t, domain.Material{Filename: "lecture.pdf"}.IsPDF())
	assert.True(t, domain.Material{Filename: "LECTURE.PDF"}.IsPDF())
	assert.False(t, domain.Material{Filename: "notes.txt"}.IsPDF())
	assert.False(t, domain.Material{Filename: "pdf"}.IsPDF())
}

func TestQuizRequestValidate(t *testing.T) {
	valid := domain.QuizRequest{Text: "content", NumQuestions: 5, Difficulty: domain.DifficultyEasy}
	assert.Empty(t, valid.Validate(1, 15))

	bounds := domain.QuizRequest{Text: "content", NumQuestions: 16, Difficulty: domain.DifficultyEasy}
	errs := bounds.Validate(1, 15)
	assert.Len(t, errs, 1)
	assert.Equal(t, "num_questions", errs[0].Field)
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := assert.AnError
	err := domain.NewLLMServiceError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, domain.ErrLLMServiceError, err.Code)
	assert.Contains(t, err.Error(), "LLM service")
}
