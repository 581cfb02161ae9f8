package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/timetable-api/internal/dto"
	appErrors "github.com/edusphere/timetable-api/pkg/errors"
)

func TestExportServiceRenderDraftCSV(t *testing.T) {
	service := NewExportService(draftFetcherStub{draft: exportDraft()}, "Weekly Timetable", nil)

	payload, contentType, err := service.RenderDraft(context.Background(), "user-1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Start,End,Lesson,Teacher,Class,Room", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "monday")
	assert.Contains(t, lines[1], "08:00")
	assert.Contains(t, lines[2], "202")
}

func TestExportServiceRenderDraftPDF(t *testing.T) {
	service := NewExportService(draftFetcherStub{draft: exportDraft()}, "", nil)

	payload, contentType, err := service.RenderDraft(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportServiceRenderDraftUnknownFormat(t *testing.T) {
	service := NewExportService(draftFetcherStub{draft: exportDraft()}, "", nil)

	_, _, err := service.RenderDraft(context.Background(), "user-1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRenderDraftPropagatesFetchError(t *testing.T) {
	wanted := appErrors.Clone(appErrors.ErrNotFound, "no draft for user")
	service := NewExportService(draftFetcherStub{err: wanted}, "", nil)

	_, _, err := service.RenderDraft(context.Background(), "user-1", "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

// --- Fixtures ---

type draftFetcherStub struct {
	draft *dto.DraftResponse
	err   error
}

func (s draftFetcherStub) GetDraft(ctx context.Context, userID string) (*dto.DraftResponse, error) {
	return s.draft, s.err
}

func exportDraft() *dto.DraftResponse {
	start := time.Date(2000, time.January, 1, 8, 0, 0, 0, time.UTC)
	room := int64(202)
	return &dto.DraftResponse{
		DraftID: "draft-1",
		UserID:  "user-1",
		Lessons: []dto.LessonSlot{
			{
				Name:      "Mathematiques - 6A",
				Day:       "monday",
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				SubjectID: 10,
				TeacherID: 100,
				ClassID:   1,
			},
			{
				Name:        "Physique Chimie - 6A",
				Day:         "tuesday",
				StartTime:   start.Add(time.Hour),
				EndTime:     start.Add(2 * time.Hour),
				SubjectID:   11,
				TeacherID:   101,
				ClassID:     1,
				ClassroomID: &room,
			},
		},
	}
}
