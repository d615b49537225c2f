package quizgen

import (
	"fmt"
	"strings"

	"studyquiz/internal/domain"
)

// CSVHeader is the column contract the model is held to. The service
// rejects responses that do not carry it.
const CSVHeader = "question_num,question,option_a,option_b,option_c,option_d,correct_option"

const promptTemplate = `Generate %d multiple-choice questions in CSV format with columns:
%s

Use ONLY the following content for question generation:
%s

Difficulty: %s

Requirements:
- 4 options per question (A, B, C, D)
- correct_option must be A, B, C, or D
- Provide exactly %d questions
- Output the CSV text exactly as it should appear in the file, starting with the header row
- Do not wrap the output in markdown code fences`

// BuildPrompt renders the quiz-generation instruction for a content
// block taken verbatim from the document text.
func BuildPrompt(content string, numQuestions int, difficulty domain.Difficulty) string {
	return fmt.Sprintf(promptTemplate, numQuestions, CSVHeader, content, difficulty, numQuestions)
}

// BuildKeywordPrompt renders the instruction from keyword topics instead
// of full document context, for inputs that fail the context gate.
func BuildKeywordPrompt(keywords []string, numQuestions int, difficulty domain.Difficulty) string {
	return BuildPrompt(strings.Join(keywords, ", "), numQuestions, difficulty)
}
