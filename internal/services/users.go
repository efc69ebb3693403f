package services

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// KnownUser is a chat the bot has interacted with
type KnownUser struct {
	ChatID    int64 `json:"chat_id"`
	FirstSeen int64 `json:"first_seen"`
}

// usersData represents the JSON structure stored in the users file
type usersData struct {
	Users []KnownUser `json:"users"`
}

// UserRegistry persists the set of chats that have talked to the bot. The
// master broadcast and user statistics are served from it.
type UserRegistry struct {
	filename string
	data     *usersData
	mu       sync.RWMutex
	logger   *logrus.Logger
}

// NewUserRegistry creates a new user registry backed by the given JSON file
func NewUserRegistry(filename string, logger *logrus.Logger) *UserRegistry {
	r := &UserRegistry{
		filename: filename,
		data:     &usersData{Users: make([]KnownUser, 0)},
		logger:   logger,
	}

	if err := r.load(); err != nil {
		logger.Warnf("Failed to load users file: %v", err)
	}

	return r
}

// load reads data from the JSON file
func (r *UserRegistry) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.filename)
	if os.IsNotExist(err) {
		r.logger.Info("Users file does not exist, starting with empty registry")
		return nil
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, r.data)
}

// Track records a chat ID if it has not been seen before
func (r *UserRegistry) Track(chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.data.Users {
		if u.ChatID == chatID {
			return nil
		}
	}

	r.data.Users = append(r.data.Users, KnownUser{
		ChatID:    chatID,
		FirstSeen: time.Now().Unix(),
	})

	return r.save()
}

// ChatIDs returns every known chat ID
func (r *UserRegistry) ChatIDs() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, len(r.data.Users))
	for i, u := range r.data.Users {
		ids[i] = u.ChatID
	}
	return ids
}

// Count returns the number of known chats
func (r *UserRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data.Users)
}

// save writes data to the JSON file atomically; assumes the mutex is held
func (r *UserRegistry) save() error {
	data, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := r.filename + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, r.filename)
}
