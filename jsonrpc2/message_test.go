package jsonrpc2

import (
	"encoding/json"
	"testing"
)

func TestIDRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   ID
	}{
		{"int64", Int64ID(42)},
		{"string", StringID("abc")},
		{"zero", ID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MakeID(tt.id.Raw())
			if err != nil {
				t.Fatalf("MakeID: %v", err)
			}
			if got.IsValid() != tt.id.IsValid() || got.Raw() != tt.id.Raw() {
				t.Errorf("MakeID(%v) = %v, want %v", tt.id.Raw(), got, tt.id)
			}
		})
	}
}

func TestDecodeClassifiesCall(t *testing.T) {
	msg, err := Decode([]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	req, ok := msg.(*Request)
	if !ok {
		t.Fatalf("Decode returned %T, want *Request", msg)
	}
	if !req.IsCall() {
		t.Error("expected IsCall() true for a request with an id")
	}
	if req.Method != "initialize" {
		t.Errorf("Method = %q, want initialize", req.Method)
	}
}

func TestDecodeClassifiesNotification(t *testing.T) {
	msg, err := Decode([]byte(`{"jsonrpc":"2.0","method":"initialized","params":{}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	req, ok := msg.(*Request)
	if !ok {
		t.Fatalf("Decode returned %T, want *Request", msg)
	}
	if req.IsCall() {
		t.Error("expected IsCall() false for a notification")
	}
}

func TestDecodeClassifiesResponse(t *testing.T) {
	msg, err := Decode([]byte(`{"jsonrpc":"2.0","id":1,"result":{"ok":true}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	resp, ok := msg.(*Response)
	if !ok {
		t.Fatalf("Decode returned %T, want *Response", msg)
	}
	if resp.Error != nil {
		t.Errorf("Error = %v, want nil", resp.Error)
	}
}

func TestDecodeRejectsResponseWithNeitherResultNorError(t *testing.T) {
	_, err := Decode([]byte(`{"jsonrpc":"2.0","id":1}`))
	if err == nil {
		t.Fatal("expected an error for a response with neither result nor error")
	}
}

func TestEncodeEchoesID(t *testing.T) {
	req, err := NewCall(Int64ID(7), "textDocument/hover", map[string]int{"x": 1})
	if err != nil {
		t.Fatalf("NewCall: %v", err)
	}
	body, err := Encode(req)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var decoded struct {
		ID     int64  `json:"id"`
		Method string `json:"method"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ID != 7 || decoded.Method != "textDocument/hover" {
		t.Errorf("decoded = %+v, want id=7 method=textDocument/hover", decoded)
	}
}
