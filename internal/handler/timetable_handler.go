package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/timetable-api/internal/dto"
	"github.com/edusphere/timetable-api/internal/models"
	appErrors "github.com/edusphere/timetable-api/pkg/errors"
	"github.com/edusphere/timetable-api/pkg/response"
)

const maxRequirements = 4096

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	SaveDraft(ctx context.Context, req dto.SaveDraftRequest) (string, error)
	GetDraft(ctx context.Context, userID string) (*dto.DraftResponse, error)
	CommitDraft(ctx context.Context, req dto.CommitDraftRequest) (int, error)
}

type draftExporter interface {
	RenderDraft(ctx context.Context, userID, format string) ([]byte, string, error)
}

type lessonReader interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.Lesson, error)
}

// TimetableHandler exposes the generation, draft, and export endpoints.
type TimetableHandler struct {
	service timetableGenerator
	export  draftExporter
	lessons lessonReader
}

// NewTimetableHandler constructs the handler. A nil exporter disables the
// export endpoint.
func NewTimetableHandler(svc timetableGenerator, export draftExporter, lessons lessonReader) *TimetableHandler {
	return &TimetableHandler{service: svc, export: export, lessons: lessons}
}

// Generate godoc
// @Summary Generate a timetable proposal from a wizard snapshot
// @Description Runs the placement engine and returns a preview proposal. The proposal is kept in memory until saved as a draft or until it expires.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Wizard snapshot"
// @Success 200 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if len(req.LessonRequirements) > maxRequirements {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "lessonRequirements exceeds supported limit"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// SaveDraft godoc
// @Summary Save a generated proposal as the user's draft
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SaveDraftRequest true "Save draft payload"
// @Success 201 {object} response.Envelope
// @Router /timetable/draft [post]
func (h *TimetableHandler) SaveDraft(c *gin.Context) {
	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft payload"))
		return
	}
	id, err := h.service.SaveDraft(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"draftId": id})
}

// GetDraft godoc
// @Summary Get the user's current draft
// @Tags Timetable
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/draft [get]
func (h *TimetableHandler) GetDraft(c *gin.Context) {
	draft, err := h.service.GetDraft(c.Request.Context(), c.Query("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft)
}

// CommitDraft godoc
// @Summary Commit the user's draft as the final timetable
// @Description Replaces previously committed lessons for the classes covered by the draft, then clears the draft.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.CommitDraftRequest true "Commit payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/commit [post]
func (h *TimetableHandler) CommitDraft(c *gin.Context) {
	var req dto.CommitDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid commit payload"))
		return
	}
	count, err := h.service.CommitDraft(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"lessonsCommitted": count})
}

// Export godoc
// @Summary Export the user's draft as PDF or CSV
// @Tags Timetable
// @Produce application/pdf
// @Param userId query string true "User ID"
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} byte
// @Router /timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	if h.export == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "exports are disabled"))
		return
	}
	userID := c.Query("userId")
	if userID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "userId is required"))
		return
	}
	payload, contentType, err := h.export.RenderDraft(c.Request.Context(), userID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, payload)
}

// TeacherLessons godoc
// @Summary List a teacher's committed lessons
// @Tags Timetable
// @Produce json
// @Param id path integer true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/lessons [get]
func (h *TimetableHandler) TeacherLessons(c *gin.Context) {
	teacherID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	lessons, err := h.lessons.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	slots := make([]dto.LessonSlot, 0, len(lessons))
	for _, lesson := range lessons {
		slots = append(slots, dto.LessonSlotFromModel(lesson))
	}
	response.JSON(c, http.StatusOK, slots)
}
