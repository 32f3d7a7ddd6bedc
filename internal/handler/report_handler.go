package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/intervue/intervue-backend/internal/repository"
	"github.com/intervue/intervue-backend/internal/response"
)

// ReportHandler serves persisted interview reports from PostgreSQL.
type ReportHandler struct {
	reports *repository.ReportRepository
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *repository.ReportRepository) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ListUserReports godoc
// GET /api/v1/users/:user_id/reports?page=1&per_page=20
func (h *ReportHandler) ListUserReports(c *gin.Context) {
	userID := c.Param("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	reports, total, err := h.reports.ListByUser(c.Request.Context(), userID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"reports": reports}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: int(total),
		TotalPages: totalPages,
	})
}

// GetReport godoc
// GET /api/v1/reports/:interview_id
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("interview_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, results, err := h.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"report":  report,
		"results": results,
	})
}
