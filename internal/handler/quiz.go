package handler

import (
	"io"
	"strings"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"
	"studyquiz/internal/service"
	"studyquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(svc service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   svc,
		validator: validator,
	}
}

// IngestMaterial godoc
// @Summary Ingest study material
// @Description Extracts text from an uploaded PDF/TXT or pasted text, returning the summary and context-gate verdict
// @Tags material
// @Accept mpfd
// @Produce json
// @Param file formData file false "PDF or TXT document"
// @Param text formData string false "Pasted text"
// @Success 200 {object} dto.MaterialResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /material [post]
func (h *QuizHandler) IngestMaterial(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// No file; fall back to pasted text, from a form field or a JSON body
		text := c.FormValue("text")
		if text == "" && strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
			var req dto.IngestTextRequest
			if err := c.BodyParser(&req); err != nil {
				return domain.NewInvalidInputError("Invalid request body")
			}
			text = req.Text
		}
		resp, err := h.service.IngestText(text)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}

	if errs := h.validator.ValidateUpload(fileHeader.Filename, fileHeader.Size); len(errs) > 0 {
		return errs
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}

	logger.Get().Info("Ingesting uploaded material",
		zap.String("filename", fileHeader.Filename),
		zap.Int("size", len(data)),
	)

	resp, err := h.service.IngestMaterial(domain.Material{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateQuiz godoc
// @Summary Generate a multiple-choice quiz
// @Description Generates a CSV quiz from the given text via Gemini; falls back to keyword topics when the text is too short
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	quiz, summary, err := h.generate(c)
	if err != nil {
		return err
	}

	return c.JSON(dto.GenerateQuizResponse{
		ID:       quiz.ID,
		CSV:      quiz.CSV,
		Source:   string(quiz.Source),
		Keywords: quiz.Keywords,
		Summary:  summary,
	})
}

// DownloadQuiz godoc
// @Summary Download a generated quiz as a CSV file
// @Description Same pipeline as /quiz but responds with a quiz.csv attachment
// @Tags quiz
// @Accept json
// @Produce text/csv
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/download [post]
func (h *QuizHandler) DownloadQuiz(c *fiber.Ctx) error {
	quiz, _, err := h.generate(c)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=quiz.csv`)
	return c.SendString(quiz.CSV)
}

func (h *QuizHandler) generate(c *fiber.Ctx) (*domain.GeneratedQuiz, string, error) {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, "", domain.NewInvalidInputError("Invalid request body")
	}

	quizReq := domain.QuizRequest{
		Text:         req.Text,
		NumQuestions: req.NumQuestions,
		Difficulty:   domain.Difficulty(req.Difficulty),
	}
	if errs := h.validator.ValidateQuizRequest(quizReq); len(errs) > 0 {
		return nil, "", errs
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), quizReq)
	if err != nil {
		logger.Get().Error("Quiz generation failed",
			zap.Int("num_questions", req.NumQuestions),
			zap.String("difficulty", req.Difficulty),
			zap.Error(err),
		)
		return nil, "", err
	}

	return quiz, h.service.Summarize(req.Text), nil
}
