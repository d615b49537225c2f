package dto

// MaterialResponse is the result of ingesting study material
// @Description Extracted text with summary and context-gate verdict
type MaterialResponse struct {
	Text       string   `json:"text"`
	Summary    string   `json:"summary"`
	HasContext bool     `json:"has_context"`
	Keywords   []string `json:"keywords,omitempty"` // only when the context gate fails
	Warning    string   `json:"warning,omitempty"`  // extraction soft-failure report
}

// IngestTextRequest is the JSON body for pasted text ingestion
// @Description Pasted study text
type IngestTextRequest struct {
	Text string `json:"text"`
}

// GenerateQuizRequest is the request body for quiz generation
// @Description Quiz generation parameters
type GenerateQuizRequest struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// GenerateQuizResponse carries a generated quiz in CSV form
// @Description Generated quiz with the content source used
type GenerateQuizResponse struct {
	ID       string   `json:"id"`
	CSV      string   `json:"csv"`
	Source   string   `json:"source"` // "document" or "keywords"
	Keywords []string `json:"keywords,omitempty"`
	Summary  string   `json:"summary"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
