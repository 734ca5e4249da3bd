// Package lspclient implements the sans-I/O core of a Language Server
// Protocol client: the lifecycle state machine, the request/response
// correlation table, and event decoding. It never touches a socket or a
// subprocess; see package transport for that.
package lspclient

import (
	"github.com/lspsansio/lspclient/jsonrpc2"
	"github.com/lspsansio/lspclient/protocol"
)

// Options configures a new Session. Only ProcessID and RootURI have no
// sane zero value the embedder should rely on; the rest default to the
// values tarts.client used.
type Options struct {
	// AutoInitialize, when true, has NewSession send the initialize
	// request itself before returning, using the fields below to build its
	// params. When false, the caller drives Initialize directly and the
	// rest of these fields are ignored.
	AutoInitialize bool

	ProcessID        *int32
	RootURI          *protocol.DocumentURI
	WorkspaceFolders []protocol.WorkspaceFolder
	Trace            string
	Capabilities     any

	// ExtensionFields is merged flatly into the initialize request's
	// top-level params object (initializationOptions among them); see
	// protocol.InitializeParams.ExtensionFields.
	ExtensionFields map[string]any
}

// Session is a single client-side LSP connection: a state machine, a
// pending-request correlation table, and two byte buffers (spec.md §3).
// It is not safe for concurrent use; an embedder driving one session from
// multiple goroutines must serialize its own calls.
type Session struct {
	state State

	recvBuf []byte
	sendBuf []byte

	nextID  int64
	pending map[jsonrpc2.ID]pendingRequest
}

// NewSession constructs a Session in NOT_INITIALIZED. If opts.AutoInitialize
// is set, it immediately sends the initialize request (moving the session
// to WAITING_FOR_INITIALIZED) using opts' other fields; the caller must
// still Drain the send buffer to actually deliver it.
func NewSession(opts Options) (*Session, error) {
	s := &Session{
		pending: make(map[jsonrpc2.ID]pendingRequest),
	}
	if !opts.AutoInitialize {
		return s, nil
	}
	caps := opts.Capabilities
	if caps == nil {
		caps = protocol.DefaultCapabilities()
	}
	trace := opts.Trace
	if trace == "" {
		trace = "off"
	}
	params := protocol.InitializeParams{
		ProcessID:        opts.ProcessID,
		RootURI:          opts.RootURI,
		WorkspaceFolders: opts.WorkspaceFolders,
		Trace:            trace,
		Capabilities:     caps,
		ExtensionFields:  opts.ExtensionFields,
	}
	if _, err := s.Initialize(params); err != nil {
		return nil, err
	}
	return s, nil
}

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// Feed appends newly-received bytes to the session's receive buffer, scans
// it for complete frames, and dispatches every message it can extract,
// returning the resulting events in wire order.
//
// A framing error (jsonrpc2.ErrFraming) is fatal to the session per
// spec.md §7: the caller should tear the connection down rather than call
// Feed again. Any events decoded before the error are still returned
// alongside it.
func (s *Session) Feed(data []byte) ([]Event, error) {
	s.recvBuf = append(s.recvBuf, data...)

	msgs, consumed, ferr := jsonrpc2.DecodeFrames(s.recvBuf)
	s.recvBuf = s.recvBuf[consumed:]

	events := make([]Event, 0, len(msgs))
	for _, msg := range msgs {
		ev, err := s.dispatchMessage(msg)
		if err != nil {
			return events, err
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
	if ferr != nil {
		return events, ferr
	}
	return events, nil
}

func (s *Session) dispatchMessage(msg jsonrpc2.Message) (Event, error) {
	switch m := msg.(type) {
	case *jsonrpc2.Response:
		return s.dispatchResponse(m)
	case *jsonrpc2.Request:
		return s.dispatchServerRequest(m)
	default:
		return nil, nil
	}
}

// Drain returns every byte queued for the wire since the last Drain call
// and resets the send buffer to empty. The caller is responsible for
// actually writing the returned bytes to the server's stdin (or whichever
// transport it is using); Session never does I/O itself.
func (s *Session) Drain() []byte {
	out := s.sendBuf
	s.sendBuf = nil
	return out
}
