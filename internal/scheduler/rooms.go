package scheduler

import (
	"strings"

	"github.com/edusphere/timetable-api/internal/models"
)

// labKeywords classify a subject as lab-requiring by substring match on
// its lowercased name. First match wins.
var labKeywords = []string{"physique", "informatique", "sciences", "technique"}

const labRoomMarker = "labo"

func labKeyword(subjectName string) (string, bool) {
	lowered := strings.ToLower(subjectName)
	for _, keyword := range labKeywords {
		if strings.Contains(lowered, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// CandidateRooms narrows the room pool for a subject. Lab-requiring
// subjects only match rooms whose name carries both "labo" and the same
// keyword that classified the subject; every other subject matches the
// general-purpose rooms (no "labo" in the name). An empty room pool
// yields no candidates; callers must treat that as "room optional", not
// as a blocked placement.
func CandidateRooms(subject models.Subject, rooms []models.Room) []models.Room {
	if len(rooms) == 0 {
		return nil
	}

	keyword, needsLab := labKeyword(subject.Name)
	var candidates []models.Room
	for _, room := range rooms {
		name := strings.ToLower(room.Name)
		if needsLab {
			if strings.Contains(name, labRoomMarker) && strings.Contains(name, keyword) {
				candidates = append(candidates, room)
			}
			continue
		}
		if !strings.Contains(name, labRoomMarker) {
			candidates = append(candidates, room)
		}
	}
	return candidates
}
