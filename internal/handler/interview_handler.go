package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intervue/intervue-backend/internal/analysis"
	"github.com/intervue/intervue-backend/internal/model"
	"github.com/intervue/intervue-backend/internal/questionbank"
	"github.com/intervue/intervue-backend/internal/response"
	"github.com/intervue/intervue-backend/internal/service"
	"github.com/intervue/intervue-backend/internal/session"
	"github.com/intervue/intervue-backend/internal/validator"
)

// InterviewHandler exposes the interview engine over HTTP.
type InterviewHandler struct {
	interviews *service.InterviewService
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(interviews *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

// ListCategories godoc
// GET /api/v1/categories
func (h *InterviewHandler) ListCategories(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"categories": h.interviews.Categories()})
}

// CreateInterview godoc
// POST /api/v1/interviews
// Starts a new interview and returns its first question.
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	var req model.CreateInterviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	category := model.Category(req.Category)
	if !category.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownCategory)
		return
	}

	sess, first, err := h.interviews.Create(c.Request.Context(), category, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, questionbank.ErrUnknownCategory):
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownCategory)
		case errors.Is(err, questionbank.ErrInsufficientQuestions):
			response.Fail(c, http.StatusConflict, response.ErrInsufficientQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"interview_id":    sess.ID,
		"category":        sess.Category,
		"question":        first,
		"question_index":  0,
		"total_questions": sess.Total(),
	})
}

// SubmitAnswer godoc
// POST /api/v1/interviews/:interview_id/answers
// Scores the answer for the current question. Returns the next question
// with per-question feedback, or the final report on the last answer.
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("interview_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcome, err := h.interviews.SubmitAnswer(c.Request.Context(), id, req.AnswerText)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		case errors.Is(err, service.ErrSessionCompleted):
			response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
		case errors.Is(err, service.ErrAnswerAlreadySubmitted):
			response.Fail(c, http.StatusConflict, response.ErrAnswerConflict)
		case errors.Is(err, service.ErrAnswerTooLong):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidAnswer)
		case errors.Is(err, analysis.ErrEmbeddingUnavailable):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrEmbeddingUnavailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	if outcome.Report != nil {
		response.Success(c, http.StatusOK, gin.H{
			"interview_complete":        true,
			"report":                    outcome.Report,
			"category_breakdown":        outcome.Report.Breakdown(),
			"current_response_analysis": outcome.Analysis,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"interview_complete":        false,
		"next_question":             outcome.NextQuestion,
		"question_index":            outcome.NextIndex,
		"total_questions":           outcome.Total,
		"current_response_analysis": outcome.Analysis,
	})
}

// GetStatus godoc
// GET /api/v1/interviews/:interview_id
func (h *InterviewHandler) GetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("interview_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	status, err := h.interviews.Status(id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// GetReport godoc
// GET /api/v1/interviews/:interview_id/report
// Returns the cached final report of a completed interview.
func (h *InterviewHandler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("interview_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.interviews.Report(id)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		case errors.Is(err, service.ErrReportNotReady):
			response.Fail(c, http.StatusConflict, response.ErrReportNotReady)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"report":             report,
		"category_breakdown": report.Breakdown(),
	})
}
