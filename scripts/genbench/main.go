// Command genbench exercises the placement engine against a synthetic
// school of configurable size and reports fill rates per seed. Useful
// for sizing GENERATOR_BEST_OF before a deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/edusphere/timetable-api/internal/models"
	"github.com/edusphere/timetable-api/internal/scheduler"
)

type runReport struct {
	Seed       int64         `json:"seed"`
	Requested  int           `json:"requested"`
	Placed     int           `json:"placed"`
	Unplaced   int           `json:"unplaced"`
	FillRate   float64       `json:"fillRate"`
	Duration   time.Duration `json:"-"`
	DurationMs int64         `json:"durationMs"`
}

func main() {
	var (
		classes  int
		subjects int
		teachers int
		rooms    int
		hours    int
		runs     int
		seed     int64
	)

	flag.IntVar(&classes, "classes", 10, "number of classes")
	flag.IntVar(&subjects, "subjects", 8, "number of subjects")
	flag.IntVar(&teachers, "teachers", 20, "number of teachers")
	flag.IntVar(&rooms, "rooms", 12, "number of general rooms")
	flag.IntVar(&hours, "hours", 3, "weekly hours per subject")
	flag.IntVar(&runs, "runs", 5, "number of seeded runs")
	flag.Int64Var(&seed, "seed", 1, "first seed; subsequent runs increment it")
	flag.Parse()

	data := syntheticSchool(classes, subjects, teachers, rooms, hours)
	requested := classes * subjects * hours

	reports := make([]runReport, 0, runs)
	for i := 0; i < runs; i++ {
		s := seed + int64(i)
		engine := scheduler.New(scheduler.Config{Rand: rand.New(rand.NewSource(s))})

		start := time.Now()
		result := engine.Generate(data)
		elapsed := time.Since(start)

		report := runReport{
			Seed:       s,
			Requested:  requested,
			Placed:     len(result.Lessons),
			Unplaced:   len(result.Unplaced),
			Duration:   elapsed,
			DurationMs: elapsed.Milliseconds(),
		}
		if requested > 0 {
			report.FillRate = float64(report.Placed) / float64(requested)
		}
		reports = append(reports, report)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		log.Fatalf("failed to encode report: %v", err)
	}
}

// syntheticSchool spreads subject qualifications round-robin across the
// teacher pool so every subject has at least one qualified teacher.
func syntheticSchool(classCount, subjectCount, teacherCount, roomCount, hours int) models.WizardData {
	data := models.WizardData{
		School: models.SchoolCalendar{
			StartTime:  "08:00",
			EndTime:    "17:00",
			SchoolDays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		},
	}

	for i := 0; i < classCount; i++ {
		data.Classes = append(data.Classes, models.Class{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Class %d", i+1),
		})
	}
	for i := 0; i < subjectCount; i++ {
		data.Subjects = append(data.Subjects, models.Subject{
			ID:          int64(i + 1),
			Name:        fmt.Sprintf("Subject %d", i+1),
			WeeklyHours: hours,
		})
	}
	for i := 0; i < teacherCount; i++ {
		teacher := models.Teacher{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Teacher %d", i+1),
		}
		if subjectCount > 0 {
			teacher.Subjects = append(teacher.Subjects, data.Subjects[i%subjectCount])
			teacher.Subjects = append(teacher.Subjects, data.Subjects[(i+1)%subjectCount])
		}
		data.Teachers = append(data.Teachers, teacher)
	}
	for i := 0; i < roomCount; i++ {
		data.Rooms = append(data.Rooms, models.Room{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Salle %d", i+1),
		})
	}
	return data
}
