package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docusmith/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestSessionDefaultsWhenAbsent(t *testing.T) {
	s := NewSessionService(testLogger())

	session := s.Get(42)
	assert.Equal(t, models.StateDefault, session.State)
	assert.Nil(t, session.Job)
}

func TestSessionStatePersistsUntilOverwrittenOrCleared(t *testing.T) {
	s := NewSessionService(testLogger())

	s.SetState(42, models.StateAwaitingText)
	assert.Equal(t, models.StateAwaitingText, s.Get(42).State)
	assert.Equal(t, models.StateAwaitingText, s.Get(42).State)

	s.SetState(42, models.StateChoosingFont)
	assert.Equal(t, models.StateChoosingFont, s.Get(42).State)

	s.Clear(42)
	assert.Equal(t, models.StateDefault, s.Get(42).State)
}

func TestSessionJobAndStateAreIndependent(t *testing.T) {
	s := NewSessionService(testLogger())

	s.SetState(42, models.StateAwaitingImages)
	s.SetJob(42, &models.ImageJob{Images: []string{"/tmp/img_1"}})

	session := s.Get(42)
	assert.Equal(t, models.StateAwaitingImages, session.State)
	job, ok := session.Job.(*models.ImageJob)
	require.True(t, ok)
	assert.Equal(t, []string{"/tmp/img_1"}, job.Images)

	// Changing state keeps the job, changing the job keeps the state
	s.SetState(42, models.StateChoosingOrientation)
	assert.NotNil(t, s.Get(42).Job)

	s.SetJob(42, &models.ImageJob{Images: []string{"/tmp/img_1", "/tmp/img_2"}})
	assert.Equal(t, models.StateChoosingOrientation, s.Get(42).State)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	s := NewSessionService(testLogger())

	s.SetState(1, models.StateAwaitingPassword)
	s.SetState(2, models.StateAwaitingText)

	assert.Equal(t, models.StateAwaitingPassword, s.Get(1).State)
	assert.Equal(t, models.StateAwaitingText, s.Get(2).State)

	s.Clear(1)
	assert.Equal(t, models.StateDefault, s.Get(1).State)
	assert.Equal(t, models.StateAwaitingText, s.Get(2).State)
}

func TestActiveUsers(t *testing.T) {
	s := NewSessionService(testLogger())

	assert.Empty(t, s.ActiveUsers())

	s.SetState(7, models.StateAwaitingText)
	s.SetState(8, models.StateAwaitingImages)

	users := s.ActiveUsers()
	assert.ElementsMatch(t, []int64{7, 8}, users)
}
