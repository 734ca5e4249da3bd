package lspclient

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspsansio/lspclient/protocol"
)

func frame(body string) []byte {
	return []byte(fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body))
}

// S1 — Handshake.
func TestHandshake(t *testing.T) {
	pid := int32(4242)
	rootURI := protocol.DocumentURI("file:///w")
	s, err := NewSession(Options{
		AutoInitialize: true,
		ProcessID:      &pid,
		RootURI:        &rootURI,
	})
	require.NoError(t, err)
	require.Equal(t, WaitingForInitialized, s.State())

	out := s.Drain()
	assert.Contains(t, string(out), `"method":"initialize"`)
	assert.Contains(t, string(out), `"id":0`)
	assert.Empty(t, s.Drain(), "Drain should be empty after the first call")

	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":0,"result":{"capabilities":{}}}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	_, ok := events[0].(*InitializedEvent)
	assert.True(t, ok, "expected an InitializedEvent, got %T", events[0])
	assert.Equal(t, Normal, s.State())

	out = s.Drain()
	assert.Contains(t, string(out), `"method":"initialized"`)
}

func newNormalSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(Options{AutoInitialize: true})
	require.NoError(t, err)
	s.Drain()
	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":0,"result":{"capabilities":{}}}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	s.Drain()
	require.Equal(t, Normal, s.State())
	return s
}

// S2 — Hover round-trip.
func TestHoverRoundTrip(t *testing.T) {
	s := newNormalSession(t)

	id, err := s.Hover(protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///w/a.go"},
		Position:     protocol.Position{Line: 1, Character: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), idInt(t, id))
	s.Drain()

	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":1,"result":{"contents":"hi"}}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	hov, ok := events[0].(*HoverEvent)
	require.True(t, ok, "expected a HoverEvent, got %T", events[0])
	require.Len(t, hov.Hover.Contents.Marked, 1)
	assert.Equal(t, "hi", hov.Hover.Contents.Marked[0].Value)
	assert.Empty(t, s.pending)
}

// S3 — Null hover.
func TestNullHover(t *testing.T) {
	s := newNormalSession(t)

	_, err := s.Hover(protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///w/a.go"},
	})
	require.NoError(t, err)
	s.Drain()

	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":1,"result":null}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	hov, ok := events[0].(*HoverEvent)
	require.True(t, ok)
	assert.Empty(t, hov.Hover.Contents.Marked)
	assert.Nil(t, hov.Hover.Contents.Markup)
}

// S4 — Server request with reply.
func TestServerRequestReply(t *testing.T) {
	s := newNormalSession(t)

	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":"srv-7","method":"workspace/workspaceFolders"}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	req, ok := events[0].(*WorkspaceFoldersRequest)
	require.True(t, ok, "expected a WorkspaceFoldersRequest, got %T", events[0])

	err = req.Reply([]protocol.WorkspaceFolder{{URI: "file:///w", Name: "w"}})
	require.NoError(t, err)

	out := string(s.Drain())
	assert.Contains(t, out, `"id":"srv-7"`)
	assert.Contains(t, out, `"uri":"file:///w"`)
	assert.Contains(t, out, `"name":"w"`)
}

// S5 — Shutdown + exit.
func TestShutdownExit(t *testing.T) {
	s := newNormalSession(t)

	_, err := s.Shutdown()
	require.NoError(t, err)
	assert.Equal(t, WaitingForShutdown, s.State())
	s.Drain()

	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":1,"result":null}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	_, ok := events[0].(*ShutdownEvent)
	assert.True(t, ok, "expected a ShutdownEvent, got %T", events[0])
	assert.Equal(t, Shutdown, s.State())

	require.NoError(t, s.Exit())
	assert.Equal(t, Exited, s.State())
	assert.Contains(t, string(s.Drain()), `"method":"exit"`)

	_, err = s.Hover(protocol.TextDocumentPositionParams{})
	var invalid *InvalidStateError
	require.ErrorAs(t, err, &invalid)
}

// S6 — Split frame.
func TestSplitFrame(t *testing.T) {
	s := newNormalSession(t)

	msgA := frame(`{"jsonrpc":"2.0","method":"window/showMessage","params":{"type":3,"message":"a"}}`)
	msgB := frame(`{"jsonrpc":"2.0","method":"window/showMessage","params":{"type":3,"message":"b"}}`)
	whole := append(append([]byte{}, msgA...), msgB...)

	var got []Event
	for i := 0; i < len(whole); i++ {
		events, err := s.Feed(whole[i : i+1])
		require.NoError(t, err)
		got = append(got, events...)
	}

	require.Len(t, got, 2)
	first, ok := got[0].(*ShowMessageEvent)
	require.True(t, ok)
	assert.Equal(t, "a", first.Message)
	second, ok := got[1].(*ShowMessageEvent)
	require.True(t, ok)
	assert.Equal(t, "b", second.Message)
}

func idInt(t *testing.T, id interface{ Int64() (int64, bool) }) int64 {
	t.Helper()
	v, ok := id.Int64()
	require.True(t, ok)
	return v
}
