package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"docusmith/internal/models"
)

// SessionService manages per-user conversation sessions. Sessions are created
// lazily, overwritten in place while a workflow advances, and removed entirely
// when the workflow finishes. Idle sessions expire so an abandoned workflow
// does not pin its data forever.
type SessionService struct {
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewSessionService creates a new session service
func NewSessionService(logger *logrus.Logger) *SessionService {
	return &SessionService{
		cache:  cache.New(30*time.Minute, 10*time.Minute),
		logger: logger,
	}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session_%d", userID)
}

// Get returns the user's session, or a zero session if none is active
func (s *SessionService) Get(userID int64) *models.Session {
	if data, found := s.cache.Get(sessionKey(userID)); found {
		if session, ok := data.(*models.Session); ok {
			return session
		}
	}
	return &models.Session{State: models.StateDefault}
}

// SetState sets the user's conversation state, preserving the current job
func (s *SessionService) SetState(userID int64, state models.ConversationState) {
	session := s.Get(userID)
	session.State = state
	s.cache.Set(sessionKey(userID), session, cache.DefaultExpiration)
	s.logger.Debugf("Set state for user %d: %s", userID, state)
}

// SetJob replaces the user's workflow job, preserving the current state
func (s *SessionService) SetJob(userID int64, job models.Job) {
	session := s.Get(userID)
	session.Job = job
	s.cache.Set(sessionKey(userID), session, cache.DefaultExpiration)
}

// Clear removes the user's state and job; the only way a workflow terminates
func (s *SessionService) Clear(userID int64) {
	s.cache.Delete(sessionKey(userID))
	s.logger.Debugf("Cleared session for user %d", userID)
}

// ActiveUsers returns the IDs of users with a live session
func (s *SessionService) ActiveUsers() []int64 {
	items := s.cache.Items()
	users := make([]int64, 0, len(items))
	for key := range items {
		idStr := strings.TrimPrefix(key, "session_")
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			users = append(users, id)
		}
	}
	return users
}
