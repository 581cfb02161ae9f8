package models

// SchoolCalendar carries the school-wide scheduling parameters supplied
// once per generation run.
type SchoolCalendar struct {
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	SchoolDays      []string `json:"school_days"`
	SessionDuration int      `json:"session_duration"`
}

// WizardData is the static snapshot the generator consumes. It is
// assembled by the caller; the engine never reads or writes storage.
type WizardData struct {
	School             SchoolCalendar      `json:"school"`
	Classes            []Class             `json:"classes"`
	Subjects           []Subject           `json:"subjects"`
	Teachers           []Teacher           `json:"teachers"`
	Rooms              []Room              `json:"rooms"`
	LessonRequirements []LessonRequirement `json:"lesson_requirements"`
	TeacherConstraints []TeacherConstraint `json:"teacher_constraints,omitempty"`
}
