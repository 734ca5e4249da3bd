package lspclient

import (
	"github.com/lspsansio/lspclient/jsonrpc2"
)

// pendingRequest is what the correlation table remembers about an
// outstanding outbound request: enough to select the response decoder
// (Method) and, for diagnostics, the params that were sent.
type pendingRequest struct {
	Method string
	Params any
}

// sendCall allocates the next id, appends the encoded request to the send
// buffer, and records the correlation entry — all three moves atomically
// with respect to the session, per spec.md §4.3 and the "paired mutation"
// design note in §9. If encoding fails, none of the three steps are
// committed.
func (s *Session) sendCall(method string, params any) (jsonrpc2.ID, error) {
	id := jsonrpc2.Int64ID(s.nextID)
	req, err := jsonrpc2.NewCall(id, method, params)
	if err != nil {
		return jsonrpc2.ID{}, err
	}
	frame, err := jsonrpc2.EncodeFrame(req)
	if err != nil {
		return jsonrpc2.ID{}, err
	}
	s.nextID++
	s.sendBuf = append(s.sendBuf, frame...)
	s.pending[id] = pendingRequest{Method: method, Params: params}
	return id, nil
}

// sendNotify appends an encoded notification to the send buffer. No id is
// allocated and there is nothing to correlate.
func (s *Session) sendNotify(method string, params any) error {
	req, err := jsonrpc2.NewNotification(method, params)
	if err != nil {
		return err
	}
	frame, err := jsonrpc2.EncodeFrame(req)
	if err != nil {
		return err
	}
	s.sendBuf = append(s.sendBuf, frame...)
	return nil
}

// sendResponse appends an encoded response (success or error) to the send
// buffer, used only by Answerable.Reply/ReplyError.
func (s *Session) sendResponse(id jsonrpc2.ID, result any, wireErr *jsonrpc2.WireError) error {
	var resp *jsonrpc2.Response
	if wireErr != nil {
		resp = jsonrpc2.NewResponseError(id, wireErr)
	} else {
		r, err := jsonrpc2.NewResponse(id, result)
		if err != nil {
			return err
		}
		resp = r
	}
	frame, err := jsonrpc2.EncodeFrame(resp)
	if err != nil {
		return err
	}
	s.sendBuf = append(s.sendBuf, frame...)
	return nil
}

// CancelLastRequest emits a $/cancelRequest notification for the most
// recently allocated request id. Per SPEC_FULL.md §6, this targets the
// counter's last value even if that request has already been answered and
// removed from the correlation table — cancellation is advisory, and the
// server is allowed to, and usually will, still send a response for it
// (spec.md §4.3).
func (s *Session) CancelLastRequest() error {
	if s.nextID == 0 {
		return nil
	}
	return s.sendNotify("$/cancelRequest", cancelParams{ID: s.nextID - 1})
}

type cancelParams struct {
	ID int64 `json:"id"`
}
