package permissions

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// AccessType represents the access level of a user
type AccessType int

const (
	// User represents a regular bot user
	User AccessType = iota
	// Master represents the configured administrator
	Master
)

// authTTL bounds how long a master login stays valid
const authTTL = 12 * time.Hour

// Controller manages the master identity and its authentication window.
// The master still has to present the shared secret each time the window
// lapses; regular users never authenticate.
type Controller struct {
	masterID int64
	password string
	authed   *cache.Cache
	logger   *logrus.Logger
}

// NewController creates a new permission controller
func NewController(masterID int64, password string, logger *logrus.Logger) *Controller {
	if masterID != 0 {
		logger.Infof("Initialized permission controller with master %d", masterID)
	} else {
		logger.Info("No master configured; admin panel disabled")
	}

	return &Controller{
		masterID: masterID,
		password: password,
		authed:   cache.New(authTTL, time.Hour),
		logger:   logger,
	}
}

// GetAccessType determines the access type of a user
func (c *Controller) GetAccessType(userID int64) AccessType {
	if c.IsMaster(userID) {
		return Master
	}
	return User
}

// IsMaster checks if a user is the configured master
func (c *Controller) IsMaster(userID int64) bool {
	return c.masterID != 0 && userID == c.masterID
}

// IsAuthenticated checks if the master has a live authentication
func (c *Controller) IsAuthenticated(userID int64) bool {
	_, found := c.authed.Get(authKey(userID))
	return found
}

// Authenticate checks the shared secret and, on match, opens an
// authentication window for the master
func (c *Controller) Authenticate(userID int64, password string) bool {
	if !c.IsMaster(userID) || password != c.password {
		c.logger.Warnf("Failed master authentication attempt by user %d", userID)
		return false
	}

	c.authed.Set(authKey(userID), true, cache.DefaultExpiration)
	c.logger.Infof("Master %d authenticated", userID)
	return true
}

func authKey(userID int64) string {
	return fmt.Sprintf("auth_%d", userID)
}
