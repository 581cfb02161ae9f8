package dto

import (
	"time"

	"github.com/edusphere/timetable-api/internal/models"
)

// SchoolPayload carries school-wide calendar parameters for a run.
type SchoolPayload struct {
	StartTime       string   `json:"startTime" validate:"required"`
	EndTime         string   `json:"endTime" validate:"required"`
	SchoolDays      []string `json:"schoolDays"`
	SessionDuration int      `json:"sessionDuration" validate:"omitempty,min=1"`
}

// ClassPayload describes one class in the wizard snapshot.
type ClassPayload struct {
	ID       int64  `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"omitempty,min=0"`
	GradeID  int64  `json:"gradeId"`
}

// SubjectPayload describes one subject in the wizard snapshot.
type SubjectPayload struct {
	ID          int64  `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	WeeklyHours int    `json:"weeklyHours" validate:"omitempty,min=0"`
}

// TeacherPayload describes one teacher, their qualifications, and an
// optional class restriction list.
type TeacherPayload struct {
	ID       int64            `json:"id" validate:"required"`
	Name     string           `json:"name"`
	Subjects []SubjectPayload `json:"subjects" validate:"dive"`
	Classes  []ClassPayload   `json:"classes" validate:"dive"`
}

// RoomPayload describes one room in the wizard snapshot.
type RoomPayload struct {
	ID       int64  `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity"`
	Building string `json:"building"`
}

// LessonRequirementPayload overrides a subject's default weekly hours for
// one class.
type LessonRequirementPayload struct {
	ClassID   int64 `json:"classId" validate:"required"`
	SubjectID int64 `json:"subjectId" validate:"required"`
	Hours     int   `json:"hours" validate:"min=0"`
}

// TeacherConstraintPayload is an unavailability window.
type TeacherConstraintPayload struct {
	ID          int64  `json:"id,omitempty"`
	TeacherID   int64  `json:"teacherId" validate:"required"`
	Day         string `json:"day" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Description string `json:"description"`
}

// GenerateTimetableRequest is the wizard snapshot the generator consumes.
type GenerateTimetableRequest struct {
	School             SchoolPayload              `json:"school" validate:"required"`
	Classes            []ClassPayload             `json:"classes" validate:"dive"`
	Subjects           []SubjectPayload           `json:"subjects" validate:"dive"`
	Teachers           []TeacherPayload           `json:"teachers" validate:"dive"`
	Rooms              []RoomPayload              `json:"rooms" validate:"dive"`
	LessonRequirements []LessonRequirementPayload `json:"lessonRequirements" validate:"dive"`
	TeacherConstraints []TeacherConstraintPayload `json:"teacherConstraints" validate:"dive"`
}

// LessonSlot is one generated timetable entry.
type LessonSlot struct {
	Name        string    `json:"name"`
	Day         string    `json:"day"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	SubjectID   int64     `json:"subjectId"`
	TeacherID   int64     `json:"teacherId"`
	ClassID     int64     `json:"classId"`
	ClassroomID *int64    `json:"classroomId"`
}

// UnplacedLesson reports one required hour the run could not place.
type UnplacedLesson struct {
	ClassID   int64  `json:"classId"`
	SubjectID int64  `json:"subjectId"`
	HourIndex int    `json:"hourIndex"`
	Reason    string `json:"reason"`
}

// GenerationStats summarises a generation run.
type GenerationStats struct {
	Runs           int   `json:"runs"`
	RequestedHours int   `json:"requestedHours"`
	PlacedHours    int   `json:"placedHours"`
	DurationMs     int64 `json:"durationMs"`
}

// GenerateTimetableResponse returns the built proposal.
type GenerateTimetableResponse struct {
	ProposalID string           `json:"proposalId"`
	Lessons    []LessonSlot     `json:"lessons"`
	Unplaced   []UnplacedLesson `json:"unplaced"`
	Stats      GenerationStats  `json:"stats"`
}

// SaveDraftRequest stores a previously generated proposal as the user's
// draft, overwriting any existing one.
type SaveDraftRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
	UserID     string `json:"userId" validate:"required"`
}

// CommitDraftRequest persists the user's draft as final lessons.
type CommitDraftRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// DraftResponse returns the stored draft lessons for a user.
type DraftResponse struct {
	DraftID   string       `json:"draftId"`
	UserID    string       `json:"userId"`
	Lessons   []LessonSlot `json:"lessons"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ValidateLessonRequest checks one proposed lesson against a teacher's
// unavailability windows.
type ValidateLessonRequest struct {
	TeacherID int64  `json:"teacherId" validate:"required"`
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ValidateLessonResponse reports the first conflicting window, if any.
type ValidateLessonResponse struct {
	Valid    bool                      `json:"valid"`
	Conflict *TeacherConstraintPayload `json:"conflict,omitempty"`
}

// ToModel converts the request snapshot into the engine's input shape.
func (r GenerateTimetableRequest) ToModel() models.WizardData {
	data := models.WizardData{
		School: models.SchoolCalendar{
			StartTime:       r.School.StartTime,
			EndTime:         r.School.EndTime,
			SchoolDays:      r.School.SchoolDays,
			SessionDuration: r.School.SessionDuration,
		},
	}
	for _, c := range r.Classes {
		data.Classes = append(data.Classes, c.toModel())
	}
	for _, s := range r.Subjects {
		data.Subjects = append(data.Subjects, s.toModel())
	}
	for _, t := range r.Teachers {
		teacher := models.Teacher{ID: t.ID, Name: t.Name}
		for _, s := range t.Subjects {
			teacher.Subjects = append(teacher.Subjects, s.toModel())
		}
		for _, c := range t.Classes {
			teacher.Classes = append(teacher.Classes, c.toModel())
		}
		data.Teachers = append(data.Teachers, teacher)
	}
	for _, room := range r.Rooms {
		data.Rooms = append(data.Rooms, models.Room{
			ID:       room.ID,
			Name:     room.Name,
			Capacity: room.Capacity,
			Building: room.Building,
		})
	}
	for _, req := range r.LessonRequirements {
		data.LessonRequirements = append(data.LessonRequirements, models.LessonRequirement{
			ClassID:   req.ClassID,
			SubjectID: req.SubjectID,
			Hours:     req.Hours,
		})
	}
	for _, constraint := range r.TeacherConstraints {
		data.TeacherConstraints = append(data.TeacherConstraints, models.TeacherConstraint{
			ID:          constraint.ID,
			TeacherID:   constraint.TeacherID,
			Day:         constraint.Day,
			StartTime:   constraint.StartTime,
			EndTime:     constraint.EndTime,
			Description: constraint.Description,
		})
	}
	return data
}

func (c ClassPayload) toModel() models.Class {
	return models.Class{ID: c.ID, Name: c.Name, Capacity: c.Capacity, GradeID: c.GradeID}
}

func (s SubjectPayload) toModel() models.Subject {
	return models.Subject{ID: s.ID, Name: s.Name, WeeklyHours: s.WeeklyHours}
}

// LessonSlotFromModel maps an engine lesson onto the wire shape.
func LessonSlotFromModel(lesson models.Lesson) LessonSlot {
	return LessonSlot{
		Name:        lesson.Name,
		Day:         lesson.Day,
		StartTime:   lesson.StartTime,
		EndTime:     lesson.EndTime,
		SubjectID:   lesson.SubjectID,
		TeacherID:   lesson.TeacherID,
		ClassID:     lesson.ClassID,
		ClassroomID: lesson.ClassroomID,
	}
}

// ToLessonModel maps a wire slot back to the storage shape.
func (s LessonSlot) ToLessonModel() models.Lesson {
	return models.Lesson{
		Name:        s.Name,
		Day:         s.Day,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		SubjectID:   s.SubjectID,
		TeacherID:   s.TeacherID,
		ClassID:     s.ClassID,
		ClassroomID: s.ClassroomID,
	}
}
