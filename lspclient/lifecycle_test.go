package lspclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lspsansio/lspclient/protocol"
)

func TestRequireStateLeavesSessionUntouched(t *testing.T) {
	s, err := NewSession(Options{})
	assert.NoError(t, err)

	before := s.nextID
	beforeSend := len(s.sendBuf)
	beforePending := len(s.pending)

	_, err = s.Hover(protocol.TextDocumentPositionParams{})
	assert.Error(t, err)

	assert.Equal(t, before, s.nextID)
	assert.Equal(t, beforeSend, len(s.sendBuf))
	assert.Equal(t, beforePending, len(s.pending))
}

func TestStateStringAndIsInitialized(t *testing.T) {
	cases := []struct {
		state State
		want  string
		init  bool
	}{
		{NotInitialized, "NOT_INITIALIZED", false},
		{WaitingForInitialized, "WAITING_FOR_INITIALIZED", false},
		{Normal, "NORMAL", true},
		{WaitingForShutdown, "WAITING_FOR_SHUTDOWN", true},
		{Shutdown, "SHUTDOWN", true},
		{Exited, "EXITED", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.state.String())
		assert.Equal(t, c.init, c.state.IsInitialized())
	}
}
