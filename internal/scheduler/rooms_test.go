package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/timetable-api/internal/models"
)

var testRooms = []models.Room{
	{ID: 1, Name: "Salle 12"},
	{ID: 2, Name: "Salle 14"},
	{ID: 3, Name: "Labo Physique"},
	{ID: 4, Name: "Labo Informatique"},
	{ID: 5, Name: "Labo Sciences"},
}

func TestCandidateRoomsGeneralSubjectAvoidsLabs(t *testing.T) {
	rooms := CandidateRooms(models.Subject{Name: "Histoire"}, testRooms)

	require.Len(t, rooms, 2)
	assert.Equal(t, int64(1), rooms[0].ID)
	assert.Equal(t, int64(2), rooms[1].ID)
}

func TestCandidateRoomsLabSubjectMatchesKeywordLab(t *testing.T) {
	rooms := CandidateRooms(models.Subject{Name: "Physique Chimie"}, testRooms)

	require.Len(t, rooms, 1)
	assert.Equal(t, int64(3), rooms[0].ID)
}

func TestCandidateRoomsFirstMatchingKeywordWins(t *testing.T) {
	// "Sciences Informatique" matches the "informatique" keyword before
	// "sciences", so only the informatique lab qualifies.
	rooms := CandidateRooms(models.Subject{Name: "Sciences Informatique"}, testRooms)

	require.Len(t, rooms, 1)
	assert.Equal(t, int64(4), rooms[0].ID)
}

func TestCandidateRoomsClassificationIsCaseInsensitive(t *testing.T) {
	rooms := CandidateRooms(models.Subject{Name: "INFORMATIQUE"}, testRooms)

	require.Len(t, rooms, 1)
	assert.Equal(t, int64(4), rooms[0].ID)
}

func TestCandidateRoomsEmptyPoolYieldsNoCandidates(t *testing.T) {
	assert.Nil(t, CandidateRooms(models.Subject{Name: "Physique"}, nil))
}
