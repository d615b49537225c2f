package quizgen_test

import (
	"strings"
	"testing"

	"studyquiz/internal/adapter/quizgen"
	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	content := "The French Revolution began in 1789."
	prompt := quizgen.BuildPrompt(content, 5, domain.DifficultyMedium)

	assert.Contains(t, prompt, "Generate 5 multiple-choice questions")
	assert.Contains(t, prompt, quizgen.CSVHeader)
	assert.Contains(t, prompt, content)
	assert.Contains(t, prompt, "Difficulty: medium")
	assert.Contains(t, prompt, "Provide exactly 5 questions")
}

func TestBuildKeywordPrompt_RoundTrip(t *testing.T) {
	keywords := []string{"photosynthesis", "chlorophyll", "glucose"}
	prompt := quizgen.BuildKeywordPrompt(keywords, 3, domain.DifficultyEasy)

	assert.Contains(t, prompt, "3")
	assert.Contains(t, prompt, "easy")
	for _, kw := range keywords {
		assert.Contains(t, prompt, kw)
	}
	assert.Contains(t, prompt, strings.Join(keywords, ", "))
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := quizgen.BuildPrompt("same content", 7, domain.DifficultyHard)
	b := quizgen.BuildPrompt("same content", 7, domain.DifficultyHard)
	assert.Equal(t, a, b)
}
