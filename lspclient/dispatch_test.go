package lspclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspsansio/lspclient/jsonrpc2"
	"github.com/lspsansio/lspclient/protocol"
)

func TestUnknownResponseIDIsFatal(t *testing.T) {
	s := newNormalSession(t)
	_, err := s.Feed(frame(`{"jsonrpc":"2.0","id":999,"result":{}}`))
	require.Error(t, err)
	var unknown *UnknownResponseIDError
	require.ErrorAs(t, err, &unknown)
}

func TestUnrecognizedServerRequestIsAnswerable(t *testing.T) {
	s := newNormalSession(t)
	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":"x","method":"textDocument/moniker","params":{}}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	req, ok := events[0].(*UnrecognizedRequest)
	require.True(t, ok, "expected an UnrecognizedRequest, got %T", events[0])
	assert.Equal(t, "textDocument/moniker", req.Payload.Method)

	wireErr := jsonrpc2.NewError(jsonrpc2.CodeMethodNotFound, "method not found: %s", req.Payload.Method)
	require.NoError(t, req.ReplyError(wireErr))
	assert.Contains(t, string(s.Drain()), `"code":-32601`)
}

func TestCompletionSalvagesBareItemArray(t *testing.T) {
	s := newNormalSession(t)
	_, err := s.Completion(completionParamsAt(0, 0))
	require.NoError(t, err)
	s.Drain()

	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":1,"result":[{"label":"Println"}]}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev, ok := events[0].(*CompletionEvent)
	require.True(t, ok)
	require.NotNil(t, ev.List)
	assert.False(t, ev.List.IsIncomplete)
	require.Len(t, ev.List.Items, 1)
	assert.Equal(t, "Println", ev.List.Items[0].Label)
}

func TestDocumentSymbolDiscriminatesHierarchicalFromFlat(t *testing.T) {
	s := newNormalSession(t)
	_, err := s.DocumentSymbol(protocol.TextDocumentIdentifier{URI: "file:///w/a.go"})
	require.NoError(t, err)
	s.Drain()

	events, err := s.Feed(frame(`{"jsonrpc":"2.0","id":1,"result":[{"name":"main","kind":12,"range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}},"selectionRange":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}}}]}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev, ok := events[0].(*DocumentSymbolEvent)
	require.True(t, ok)
	require.Len(t, ev.Hierarchical, 1)
	assert.Empty(t, ev.Flat)
	assert.Equal(t, "main", ev.Hierarchical[0].Name)
}

func TestMalformedServerNotificationDoesNotHaltFeed(t *testing.T) {
	s := newNormalSession(t)

	malformed := frame(`{"jsonrpc":"2.0","method":"window/logMessage","params":{"type":"not-a-number","message":"x"}}`)
	valid := frame(`{"jsonrpc":"2.0","method":"window/showMessage","params":{"type":3,"message":"hi"}}`)
	buf := append(append([]byte{}, malformed...), valid...)

	events, err := s.Feed(buf)
	require.NoError(t, err, "a malformed-but-recognized notification must not be a fatal Feed error")
	require.Len(t, events, 2)

	decodeErr, ok := events[0].(*DecodeErrorEvent)
	require.True(t, ok, "expected a DecodeErrorEvent, got %T", events[0])
	assert.Equal(t, "window/logMessage", decodeErr.Method)
	assert.Error(t, decodeErr.Err)

	shown, ok := events[1].(*ShowMessageEvent)
	require.True(t, ok, "expected the second, well-formed message to still be dispatched, got %T", events[1])
	assert.Equal(t, "hi", shown.Message)
}

func TestMalformedProgressValueDoesNotHaltFeed(t *testing.T) {
	s := newNormalSession(t)

	malformed := frame(`{"jsonrpc":"2.0","method":"$/progress","params":{"token":"t1","value":{"kind":"bogus"}}}`)
	valid := frame(`{"jsonrpc":"2.0","method":"window/showMessage","params":{"type":3,"message":"hi"}}`)
	buf := append(append([]byte{}, malformed...), valid...)

	events, err := s.Feed(buf)
	require.NoError(t, err, "an unrecognized $/progress kind must not be a fatal Feed error")
	require.Len(t, events, 2)

	decodeErr, ok := events[0].(*DecodeErrorEvent)
	require.True(t, ok, "expected a DecodeErrorEvent, got %T", events[0])
	assert.Equal(t, "$/progress", decodeErr.Method)

	_, ok = events[1].(*ShowMessageEvent)
	require.True(t, ok, "expected the second, well-formed message to still be dispatched, got %T", events[1])
}

func TestCancelLastRequest(t *testing.T) {
	s := newNormalSession(t)
	_, err := s.Hover(protocol.TextDocumentPositionParams{})
	require.NoError(t, err)
	s.Drain()

	require.NoError(t, s.CancelLastRequest())
	out := string(s.Drain())
	assert.Contains(t, out, `"method":"$/cancelRequest"`)
	assert.Contains(t, out, `"id":1`)
}

func completionParamsAt(line, char uint32) protocol.CompletionParams {
	return protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///w/a.go"},
			Position:     protocol.Position{Line: line, Character: char},
		},
	}
}
