package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnerGateRoute(t *testing.T) {
	var g ownerGate

	assert.Equal(t, closeDirect, g.route(true))
	assert.Equal(t, closeViaOwner, g.route(false))

	g.detach()
	assert.Equal(t, closeDirect, g.route(true), "the owner can always tear down itself")
	assert.Equal(t, closeRefused, g.route(false), "a stopped pump must not be waited on")
}
