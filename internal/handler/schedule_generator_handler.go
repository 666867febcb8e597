package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/curriculum-scheduler/internal/dto"
	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/service"
	appErrors "github.com/noah-isme/curriculum-scheduler/pkg/errors"
	"github.com/noah-isme/curriculum-scheduler/pkg/response"
)

const (
	maxCourses     = 2000
	maxEnrollments = 5000
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Save(ctx context.Context, req dto.SaveScheduleRequest) (*dto.SaveScheduleResponse, error)
	List(ctx context.Context, query dto.ScheduleRunQuery) ([]models.ScheduleRun, error)
	GetAssignments(ctx context.Context, runID string) ([]models.ScheduleRunAssignment, error)
	Report(ctx context.Context, runID string) (*dto.ScheduleRunReportResponse, error)
	Publish(ctx context.Context, runID string) (*models.ScheduleRun, error)
	Delete(ctx context.Context, runID string) error
}

// ScheduleGeneratorHandler exposes scheduler endpoints.
type ScheduleGeneratorHandler struct {
	service scheduleGenerator
}

// NewScheduleGeneratorHandler constructs the handler.
func NewScheduleGeneratorHandler(svc *service.ScheduleGeneratorService) *ScheduleGeneratorHandler {
	return &ScheduleGeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Generate a schedule proposal
// @Description Runs the engine on an inline snapshot. Results are cached by snapshot fingerprint.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Snapshot payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleGeneratorHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if len(req.Courses) > maxCourses || len(req.Enrollments) > maxEnrollments {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "snapshot exceeds supported size"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, map[string]interface{}{"mode": "preview", "cached": result.Cached})
}

// Save godoc
// @Summary Persist a proposal as a draft run
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.SaveScheduleRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedules/save [post]
func (h *ScheduleGeneratorHandler) Save(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	saved, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, saved)
}

// List godoc
// @Summary List schedule runs for a term
// @Tags Scheduler
// @Produce json
// @Param term query string true "Term"
// @Success 200 {object} response.Envelope
// @Router /schedule-runs [get]
func (h *ScheduleGeneratorHandler) List(c *gin.Context) {
	var query dto.ScheduleRunQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	runs, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, runs, nil)
}

// Assignments godoc
// @Summary Get assignment rows of a run
// @Tags Scheduler
// @Produce json
// @Param id path string true "Schedule run ID"
// @Success 200 {object} response.Envelope
// @Router /schedule-runs/{id}/assignments [get]
func (h *ScheduleGeneratorHandler) Assignments(c *gin.Context) {
	rows, err := h.service.GetAssignments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Report godoc
// @Summary Utilization and timetable report of a run
// @Tags Scheduler
// @Produce json
// @Param id path string true "Schedule run ID"
// @Success 200 {object} response.Envelope
// @Router /schedule-runs/{id}/report [get]
func (h *ScheduleGeneratorHandler) Report(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Publish godoc
// @Summary Publish a draft run
// @Description Archives the previously published run of the same term.
// @Tags Scheduler
// @Produce json
// @Param id path string true "Schedule run ID"
// @Success 200 {object} response.Envelope
// @Router /schedule-runs/{id}/publish [post]
func (h *ScheduleGeneratorHandler) Publish(c *gin.Context) {
	run, err := h.service.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, run, nil)
}

// Delete godoc
// @Summary Delete a draft run
// @Tags Scheduler
// @Param id path string true "Schedule run ID"
// @Success 204
// @Router /schedule-runs/{id} [delete]
func (h *ScheduleGeneratorHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
