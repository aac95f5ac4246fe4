package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartJanitorDisabledWithZeroTTL(t *testing.T) {
	j, err := StartJanitor(NewManager(), 0, "")
	require.NoError(t, err)
	assert.Nil(t, j)

	// A nil janitor is safe to stop.
	j.Stop()
}

func TestStartJanitorRejectsBadSpec(t *testing.T) {
	_, err := StartJanitor(NewManager(), time.Hour, "not-a-spec")
	assert.Error(t, err)
}

func TestStartJanitorStop(t *testing.T) {
	j, err := StartJanitor(NewManager(), time.Hour, "@every 1h")
	require.NoError(t, err)
	require.NotNil(t, j)
	j.Stop()
}
