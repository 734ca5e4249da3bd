// Package jsonrpc2 implements the wire-level message shapes of JSON-RPC 2.0
// as used by the Language Server Protocol: identifiers, requests,
// notifications, and responses, plus their framed encoding.
//
// The package is sans-I/O: it never reads or writes a stream itself. See
// Encode and Decode.
package jsonrpc2

import (
	"encoding/json"
	"strconv"

	errors "golang.org/x/xerrors"
)

const wireVersion = "2.0"

// ErrParse indicates a JSON body could not be decoded at all.
var ErrParse = errors.New("jsonrpc2: parse error")

// ErrInvalidRequest indicates a decoded JSON object matched none of the
// Request/Notification/Response shapes.
var ErrInvalidRequest = errors.New("jsonrpc2: invalid request")

// ID is a JSON-RPC request identifier: either a non-negative integer or a
// string. The zero ID is invalid; see MakeID and the StringID/Int64ID
// constructors.
type ID struct {
	value any
}

// Int64ID creates a new integer request identifier.
func Int64ID(i int64) ID { return ID{value: i} }

// StringID creates a new string request identifier.
func StringID(s string) ID { return ID{value: s} }

// MakeID coerces a value decoded from JSON (nil, float64, or string), or a
// value returned by ID.Raw (int64 or string), into an ID.
func MakeID(v any) (ID, error) {
	switch v := v.(type) {
	case nil:
		return ID{}, nil
	case float64:
		return Int64ID(int64(v)), nil
	case int64:
		return Int64ID(v), nil
	case string:
		return StringID(v), nil
	}
	return ID{}, errors.Errorf("%w: invalid id type %T", ErrParse, v)
}

// IsValid reports whether id was produced by Int64ID or StringID (as opposed
// to the zero value, which marks a notification).
func (id ID) IsValid() bool { return id.value != nil }

// Raw returns the underlying int64 or string value, or nil for an invalid ID.
func (id ID) Raw() any { return id.value }

// Int64 returns the id's integer value and true, or (0, false) if id does not
// hold an integer.
func (id ID) Int64() (int64, bool) {
	i, ok := id.value.(int64)
	return i, ok
}

// String returns a human-readable rendering of the id, for logging.
func (id ID) String() string {
	switch v := id.value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	default:
		return "<nil>"
	}
}

// Message is the interface implemented by the three wire shapes this package
// recognizes: *Request (call or notification) and *Response.
type Message interface {
	isMessage()
}

// Request is a call (ID.IsValid()) or a notification (!ID.IsValid()).
type Request struct {
	ID     ID
	Method string
	Params json.RawMessage
}

func (*Request) isMessage() {}

// IsCall reports whether this Request expects a Response.
func (r *Request) IsCall() bool { return r.ID.IsValid() }

// Response is a reply to a prior call Request, matched by ID.
type Response struct {
	ID     ID
	Result json.RawMessage
	Error  *WireError
}

func (*Response) isMessage() {}

// NewNotification builds a Request with no ID.
func NewNotification(method string, params any) (*Request, error) {
	p, err := marshalToRaw(params)
	return &Request{Method: method, Params: p}, err
}

// NewCall builds a Request with the given id.
func NewCall(id ID, method string, params any) (*Request, error) {
	p, err := marshalToRaw(params)
	return &Request{ID: id, Method: method, Params: p}, err
}

// NewResponse builds a success Response. A nil result is encoded as an
// explicit JSON null, since a success response must carry a result.
func NewResponse(id ID, result any) (*Response, error) {
	r, err := marshalToRaw(result)
	if err == nil && r == nil {
		r = json.RawMessage("null")
	}
	return &Response{ID: id, Result: r}, err
}

// NewResponseError builds an error Response.
func NewResponseError(id ID, wireErr *WireError) *Response {
	return &Response{ID: id, Error: wireErr}
}

// wireCombined is the union of every field any of the three wire shapes may
// carry; a frame is decoded into this first and then classified.
type wireCombined struct {
	VersionTag string          `json:"jsonrpc"`
	ID         any             `json:"id,omitempty"`
	Method     string          `json:"method,omitempty"`
	Params     json.RawMessage `json:"params,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      *WireError      `json:"error,omitempty"`
}

// Encode renders msg as a JSON-RPC body (no framing headers; see
// jsonrpc2.EncodeFrame for that).
func Encode(msg Message) ([]byte, error) {
	wire := wireCombined{VersionTag: wireVersion}
	switch m := msg.(type) {
	case *Request:
		wire.Method = m.Method
		wire.Params = m.Params
		if m.ID.IsValid() {
			wire.ID = m.ID.value
		}
	case *Response:
		wire.ID = m.ID.value
		wire.Result = m.Result
		wire.Error = m.Error
	default:
		return nil, errors.Errorf("jsonrpc2: unknown message type %T", msg)
	}
	data, err := json.Marshal(&wire)
	if err != nil {
		return nil, errors.Errorf("jsonrpc2: marshaling message: %w", err)
	}
	return data, nil
}

// Decode classifies and parses a single JSON-RPC body per spec.md §4.1
// step 5: method+id => Request (call); method, no id => Request
// (notification); id + (result or error) => Response; anything else is
// ErrInvalidRequest.
func Decode(body []byte) (Message, error) {
	var wire wireCombined
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, errors.Errorf("%w: %v", ErrParse, err)
	}
	if wire.Method != "" {
		id, err := MakeID(wire.ID)
		if err != nil {
			return nil, err
		}
		return &Request{ID: id, Method: wire.Method, Params: wire.Params}, nil
	}
	if wire.ID == nil {
		return nil, ErrInvalidRequest
	}
	id, err := MakeID(wire.ID)
	if err != nil {
		return nil, err
	}
	if wire.Result == nil && wire.Error == nil {
		return nil, errors.Errorf("%w: response with neither result nor error", ErrInvalidRequest)
	}
	return &Response{ID: id, Result: wire.Result, Error: wire.Error}, nil
}

func marshalToRaw(obj any) (json.RawMessage, error) {
	if obj == nil {
		return nil, nil
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Errorf("jsonrpc2: marshaling params: %w", err)
	}
	return json.RawMessage(data), nil
}
