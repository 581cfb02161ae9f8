package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/timetable-api/internal/dto"
	"github.com/edusphere/timetable-api/internal/models"
	appErrors "github.com/edusphere/timetable-api/pkg/errors"
	"github.com/edusphere/timetable-api/pkg/response"
)

type constraintManager interface {
	List(ctx context.Context, teacherID int64) ([]models.TeacherConstraint, error)
	Create(ctx context.Context, req dto.CreateConstraintRequest) (*models.TeacherConstraint, error)
	Delete(ctx context.Context, id int64) error
	ValidateLesson(ctx context.Context, req dto.ValidateLessonRequest) (*dto.ValidateLessonResponse, error)
}

// ConstraintHandler exposes teacher unavailability endpoints.
type ConstraintHandler struct {
	service constraintManager
}

// NewConstraintHandler constructs the handler.
func NewConstraintHandler(svc constraintManager) *ConstraintHandler {
	return &ConstraintHandler{service: svc}
}

// List godoc
// @Summary List a teacher's unavailability windows
// @Tags Constraints
// @Produce json
// @Param id path integer true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/constraints [get]
func (h *ConstraintHandler) List(c *gin.Context) {
	teacherID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	constraints, err := h.service.List(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload := make([]dto.TeacherConstraintPayload, 0, len(constraints))
	for _, constraint := range constraints {
		payload = append(payload, dto.ConstraintFromModel(constraint))
	}
	response.JSON(c, http.StatusOK, payload)
}

// Create godoc
// @Summary Declare a teacher unavailability window
// @Tags Constraints
// @Accept json
// @Produce json
// @Param payload body dto.CreateConstraintRequest true "Constraint payload"
// @Success 201 {object} response.Envelope
// @Router /constraints [post]
func (h *ConstraintHandler) Create(c *gin.Context) {
	var req dto.CreateConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid constraint payload"))
		return
	}
	constraint, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ConstraintFromModel(*constraint))
}

// Delete godoc
// @Summary Delete a teacher unavailability window
// @Tags Constraints
// @Param id path integer true "Constraint ID"
// @Success 204
// @Router /constraints/{id} [delete]
func (h *ConstraintHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ValidateLesson godoc
// @Summary Check a proposed lesson against a teacher's windows
// @Tags Constraints
// @Accept json
// @Produce json
// @Param payload body dto.ValidateLessonRequest true "Proposed lesson"
// @Success 200 {object} response.Envelope
// @Router /lessons/validate [post]
func (h *ConstraintHandler) ValidateLesson(c *gin.Context) {
	var req dto.ValidateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lesson payload"))
		return
	}
	result, err := h.service.ValidateLesson(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" parameter")
	}
	return id, nil
}
