package permissions

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestController(masterID int64) *Controller {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewController(masterID, "s3cret", logger)
}

func TestGetAccessType(t *testing.T) {
	c := newTestController(99)

	assert.Equal(t, Master, c.GetAccessType(99))
	assert.Equal(t, User, c.GetAccessType(1))
}

func TestIsMasterWithNoMasterConfigured(t *testing.T) {
	c := newTestController(0)

	assert.False(t, c.IsMaster(0))
	assert.False(t, c.IsMaster(99))
}

func TestAuthenticate(t *testing.T) {
	c := newTestController(99)

	assert.False(t, c.IsAuthenticated(99))

	// Wrong password and wrong user are both rejected
	assert.False(t, c.Authenticate(99, "nope"))
	assert.False(t, c.Authenticate(1, "s3cret"))
	assert.False(t, c.IsAuthenticated(99))

	assert.True(t, c.Authenticate(99, "s3cret"))
	assert.True(t, c.IsAuthenticated(99))
	assert.False(t, c.IsAuthenticated(1))
}
