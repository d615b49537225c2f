package service

import (
	"context"
	"strings"

	"studyquiz/internal/adapter/quizgen"
	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"
	"studyquiz/internal/textproc"
	"studyquiz/internal/util"

	"go.uber.org/zap"
)

// TextExtractor converts uploaded material into a text blob
type TextExtractor interface {
	Extract(material domain.Material) (string, error)
}

// QuizService runs the study-material pipeline: extraction, context
// gate, summary and keyword computation, prompt construction, and the
// external quiz generation call.
type QuizService interface {
	IngestMaterial(material domain.Material) (*dto.MaterialResponse, error)
	IngestText(text string) (*dto.MaterialResponse, error)
	GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*domain.GeneratedQuiz, error)
	Summarize(text string) string
	QuestionBounds() (min, max int)
}

type quizService struct {
	extractor TextExtractor
	generator domain.QuizGenerator
	cfg       *config.Config
}

// NewQuizService creates a new instance of quizService
func NewQuizService(extractor TextExtractor, generator domain.QuizGenerator, cfg *config.Config) QuizService {
	return &quizService{
		extractor: extractor,
		generator: generator,
		cfg:       cfg,
	}
}

// IngestMaterial extracts text from an uploaded document and reports the
// summary and context-gate verdict. Extraction failure is soft: the
// response carries an empty blob and a warning for the display layer.
func (s *quizService) IngestMaterial(material domain.Material) (*dto.MaterialResponse, error) {
	text, err := s.extractor.Extract(material)
	if err != nil {
		logger.Get().Warn("Material extraction failed",
			zap.String("filename", material.Filename),
			zap.Error(err),
		)
		return &dto.MaterialResponse{Warning: err.Error()}, nil
	}
	return s.IngestText(text)
}

// IngestText runs the display half of the pipeline on pasted or
// extracted text.
func (s *quizService) IngestText(text string) (*dto.MaterialResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewEmptyInputError()
	}

	resp := &dto.MaterialResponse{
		Text:       text,
		Summary:    textproc.Summarize(text, s.cfg.Quiz.SummarySentences),
		HasContext: textproc.HasEnoughContext(text, s.cfg.Quiz.MinContextLength),
	}
	if !resp.HasContext {
		resp.Keywords = textproc.ExtractKeywords(text, s.cfg.Quiz.MaxKeywords)
	}
	return resp, nil
}

// GenerateQuiz validates the request, picks the content path through the
// context gate, builds the prompt and calls the external service once.
// Failures are DomainErrors; a returned quiz always passed the CSV
// header check.
func (s *quizService) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*domain.GeneratedQuiz, error) {
	if errs := req.Validate(s.cfg.Quiz.MinQuestions, s.cfg.Quiz.MaxQuestions); len(errs) > 0 {
		return nil, errs
	}

	id := util.NewULID()
	l := logger.Get().With(zap.String("quiz_id", id))

	text := strings.TrimSpace(req.Text)

	var prompt string
	quiz := &domain.GeneratedQuiz{ID: id}
	if textproc.HasEnoughContext(text, s.cfg.Quiz.MinContextLength) {
		quiz.Source = domain.SourceDocument
		prompt = quizgen.BuildPrompt(text, req.NumQuestions, req.Difficulty)
		l.Info("Generating quiz from document context", zap.Int("text_len", len(text)))
	} else {
		quiz.Source = domain.SourceKeywords
		quiz.Keywords = textproc.ExtractKeywords(text, s.cfg.Quiz.MaxKeywords)
		prompt = quizgen.BuildKeywordPrompt(quiz.Keywords, req.NumQuestions, req.Difficulty)
		l.Info("Not enough context, generating quiz from keywords",
			zap.Int("text_len", len(text)),
			zap.Strings("keywords", quiz.Keywords),
		)
	}

	raw, err := s.generator.GenerateQuiz(ctx, prompt)
	if err != nil {
		return nil, err
	}

	csv, err := cleanCSV(raw)
	if err != nil {
		l.Warn("Generated quiz failed the CSV contract", zap.Error(err))
		return nil, err
	}

	quiz.CSV = csv
	l.Info("Quiz generated",
		zap.String("source", string(quiz.Source)),
		zap.Int("csv_len", len(csv)),
	)
	return quiz, nil
}

// Summarize exposes the extractive summary for display
func (s *quizService) Summarize(text string) string {
	return textproc.Summarize(text, s.cfg.Quiz.SummarySentences)
}

func (s *quizService) QuestionBounds() (int, int) {
	return s.cfg.Quiz.MinQuestions, s.cfg.Quiz.MaxQuestions
}

// cleanCSV strips the markdown code fences Gemini tends to wrap output
// in and verifies the fixed column header is present, so downstream
// consumers get machine-verifiable CSV or nothing.
func cleanCSV(raw string) (string, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop the language tag on the fence line, whatever its case
		// ("csv", "CSV") and whether it shares the line with the fence
		// or sits alone on the next one
		if nl := strings.Index(text, "\n"); nl >= 0 {
			if tag := strings.TrimSpace(text[:nl]); tag == "" || strings.EqualFold(tag, "csv") {
				text = text[nl+1:]
				if nl2 := strings.Index(text, "\n"); tag == "" && nl2 >= 0 {
					if tag2 := strings.TrimSpace(text[:nl2]); strings.EqualFold(tag2, "csv") {
						text = text[nl2+1:]
					}
				}
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if !strings.HasPrefix(text, quizgen.CSVHeader) {
		return "", domain.NewMalformedQuizError("missing header row")
	}
	return text, nil
}
