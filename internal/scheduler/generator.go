package scheduler

import (
	"math/rand"
	"time"

	"github.com/edusphere/timetable-api/internal/models"
)

// Lesson timestamps are anchored on a fixed reference date; only the day
// name and wall-clock time carry meaning. Slots are always one hour long
// regardless of the configured session duration.
var referenceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Unplaced records one required hour the run could not place.
type Unplaced struct {
	ClassID   int64  `json:"class_id"`
	SubjectID int64  `json:"subject_id"`
	HourIndex int    `json:"hour_index"`
	Reason    string `json:"reason"`
}

// Reasons reported for unplaced hours.
const (
	ReasonNoTeacher = "NO_ELIGIBLE_TEACHER"
	ReasonNoSlot    = "NO_FREE_SLOT"
)

// Result is the sole artifact of a generation run: the committed lessons
// plus a diagnostic report of every hour that fell short.
type Result struct {
	Lessons  []models.Lesson
	Unplaced []Unplaced
}

// Config tunes a Generator.
type Config struct {
	// TimeGrid overrides DefaultTimeGrid when non-empty.
	TimeGrid []string
	// MaxAttemptsPerHour caps the number of (day, slot) combinations
	// examined per required hour. Zero means the full shuffled grid.
	MaxAttemptsPerHour int
	// Rand seeds the shuffle order; nil falls back to a time-seeded source.
	Rand *rand.Rand
}

// Generator places every required (class, subject) hour onto the weekly
// grid using a greedy randomized search. It never errors on unsatisfiable
// demand; it degrades by omission and reports the gap in Result.Unplaced.
type Generator struct {
	grid        []string
	maxAttempts int
	rng         *rand.Rand
}

// New constructs a Generator.
func New(cfg Config) *Generator {
	grid := cfg.TimeGrid
	if len(grid) == 0 {
		grid = DefaultTimeGrid
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{grid: grid, maxAttempts: cfg.MaxAttemptsPerHour, rng: rng}
}

// Generate runs one placement pass over the snapshot. The run owns a
// fresh Occupancy; concurrent calls on distinct Generators are safe,
// concurrent calls on one Generator are not (shared rand source).
func (g *Generator) Generate(data models.WizardData) Result {
	result := Result{}
	if len(data.School.SchoolDays) == 0 {
		return result
	}

	occupancy := NewOccupancy()
	roomless := len(data.Rooms) == 0

	for _, class := range data.Classes {
		for _, subject := range data.Subjects {
			hours := requiredHours(class, subject, data.LessonRequirements)
			if hours <= 0 {
				continue
			}

			eligible := eligibleTeachers(class, subject, data.Teachers)
			if len(eligible) == 0 {
				for h := 0; h < hours; h++ {
					result.Unplaced = append(result.Unplaced, Unplaced{
						ClassID:   class.ID,
						SubjectID: subject.ID,
						HourIndex: h,
						Reason:    ReasonNoTeacher,
					})
				}
				continue
			}

			candidates := CandidateRooms(subject, data.Rooms)

			for h := 0; h < hours; h++ {
				lesson, ok := g.placeHour(class, subject, eligible, candidates, roomless, data.School.SchoolDays, occupancy)
				if !ok {
					result.Unplaced = append(result.Unplaced, Unplaced{
						ClassID:   class.ID,
						SubjectID: subject.ID,
						HourIndex: h,
						Reason:    ReasonNoSlot,
					})
					continue
				}
				result.Lessons = append(result.Lessons, lesson)
			}
		}
	}
	return result
}

// GenerateBest reruns Generate up to runs times and keeps the result with
// the fewest unplaced hours, stopping early on a complete timetable.
func (g *Generator) GenerateBest(data models.WizardData, runs int) Result {
	best := g.Generate(data)
	for i := 1; i < runs; i++ {
		if len(best.Unplaced) == 0 {
			break
		}
		candidate := g.Generate(data)
		if len(candidate.Unplaced) < len(best.Unplaced) {
			best = candidate
		}
	}
	return best
}

// placeHour searches shuffled (day, slot) combinations for the first one
// where an eligible teacher, the class, and a suitable room (when rooms
// exist) are all simultaneously free, and commits it.
func (g *Generator) placeHour(
	class models.Class,
	subject models.Subject,
	eligible []models.Teacher,
	candidateRooms []models.Room,
	roomless bool,
	schoolDays []string,
	occupancy *Occupancy,
) (models.Lesson, bool) {
	days := g.shuffledDays(schoolDays)
	slots := g.shuffledSlots()

	attempts := 0
	for _, day := range days {
		for _, slot := range slots {
			if g.maxAttempts > 0 && attempts >= g.maxAttempts {
				return models.Lesson{}, false
			}
			attempts++

			teacher, ok := firstFreeTeacher(eligible, day, slot, occupancy)
			if !ok {
				continue
			}
			if !occupancy.IsFree(ResourceClass, class.ID, day, slot) {
				continue
			}

			var room *models.Room
			if !roomless {
				room, ok = firstFreeRoom(candidateRooms, day, slot, occupancy)
				if !ok {
					continue
				}
			}

			occupancy.Mark(ResourceTeacher, teacher.ID, day, slot)
			occupancy.Mark(ResourceClass, class.ID, day, slot)

			lesson := models.Lesson{
				Name:      subject.Name + " - " + class.Name,
				Day:       day,
				SubjectID: subject.ID,
				TeacherID: teacher.ID,
				ClassID:   class.ID,
			}
			lesson.StartTime, lesson.EndTime = slotInterval(slot)
			if room != nil {
				occupancy.Mark(ResourceRoom, room.ID, day, slot)
				roomID := room.ID
				lesson.ClassroomID = &roomID
			}
			return lesson, true
		}
	}
	return models.Lesson{}, false
}

func (g *Generator) shuffledDays(schoolDays []string) []string {
	days := make([]string, len(schoolDays))
	copy(days, schoolDays)
	g.rng.Shuffle(len(days), func(i, j int) { days[i], days[j] = days[j], days[i] })
	return days
}

func (g *Generator) shuffledSlots() []string {
	slots := make([]string, len(g.grid))
	copy(slots, g.grid)
	g.rng.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })
	return slots
}

// requiredHours resolves the weekly demand for the pair: an explicit
// requirement wins, the subject default is the fallback. Linear scan is
// fine at school scale.
func requiredHours(class models.Class, subject models.Subject, requirements []models.LessonRequirement) int {
	for _, req := range requirements {
		if req.ClassID == class.ID && req.SubjectID == subject.ID {
			return req.Hours
		}
	}
	return subject.WeeklyHours
}

// eligibleTeachers filters by subject qualification and, when the teacher
// carries a class restriction list, by class membership.
func eligibleTeachers(class models.Class, subject models.Subject, teachers []models.Teacher) []models.Teacher {
	var eligible []models.Teacher
	for _, teacher := range teachers {
		if !teachesSubject(teacher, subject.ID) {
			continue
		}
		if len(teacher.Classes) > 0 && !allowsClass(teacher, class.ID) {
			continue
		}
		eligible = append(eligible, teacher)
	}
	return eligible
}

func teachesSubject(teacher models.Teacher, subjectID int64) bool {
	for _, s := range teacher.Subjects {
		if s.ID == subjectID {
			return true
		}
	}
	return false
}

func allowsClass(teacher models.Teacher, classID int64) bool {
	for _, c := range teacher.Classes {
		if c.ID == classID {
			return true
		}
	}
	return false
}

func firstFreeTeacher(eligible []models.Teacher, day, slot string, occupancy *Occupancy) (models.Teacher, bool) {
	for _, teacher := range eligible {
		if occupancy.IsFree(ResourceTeacher, teacher.ID, day, slot) {
			return teacher, true
		}
	}
	return models.Teacher{}, false
}

func firstFreeRoom(candidates []models.Room, day, slot string, occupancy *Occupancy) (*models.Room, bool) {
	for i := range candidates {
		if occupancy.IsFree(ResourceRoom, candidates[i].ID, day, slot) {
			return &candidates[i], true
		}
	}
	return nil, false
}

// slotInterval converts a grid slot to the fixed-date timestamps the
// output contract requires. The grid only carries well-formed values, so
// a parse failure here would be a programming error; fall back to the
// reference midnight rather than panic.
func slotInterval(slot string) (time.Time, time.Time) {
	minutes, err := ParseClock(slot)
	if err != nil {
		minutes = 0
	}
	start := referenceDate.Add(time.Duration(minutes) * time.Minute)
	return start, start.Add(time.Hour)
}
