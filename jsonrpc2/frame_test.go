package jsonrpc2

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeFrameRoundTrip(t *testing.T) {
	req, err := NewCall(Int64ID(1), "initialize", map[string]any{"processId": nil})
	if err != nil {
		t.Fatalf("NewCall: %v", err)
	}
	frame, err := EncodeFrame(req)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	msgs, consumed, err := DecodeFrames(frame)
	if err != nil {
		t.Fatalf("DecodeFrames: %v", err)
	}
	if consumed != len(frame) {
		t.Fatalf("consumed = %d, want %d", consumed, len(frame))
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	got, ok := msgs[0].(*Request)
	if !ok || got.Method != "initialize" {
		t.Fatalf("got %+v, want a Request for initialize", msgs[0])
	}
}

func TestDecodeFramesWaitsForPartialBody(t *testing.T) {
	req, _ := NewNotification("textDocument/didOpen", nil)
	frame, _ := EncodeFrame(req)

	// feed everything but the last 3 bytes of the body
	partial := frame[:len(frame)-3]
	msgs, consumed, err := DecodeFrames(partial)
	if err != nil {
		t.Fatalf("DecodeFrames on partial input returned an error: %v", err)
	}
	if len(msgs) != 0 || consumed != 0 {
		t.Fatalf("got msgs=%v consumed=%d, want none consumed until the body completes", msgs, consumed)
	}

	// now the rest arrives
	msgs, consumed, err = DecodeFrames(frame)
	if err != nil {
		t.Fatalf("DecodeFrames: %v", err)
	}
	if consumed != len(frame) || len(msgs) != 1 {
		t.Fatalf("got consumed=%d msgs=%d, want full frame consumed", consumed, len(msgs))
	}
}

func TestDecodeFramesMultipleInOneBuffer(t *testing.T) {
	a, _ := NewNotification("a", nil)
	b, _ := NewNotification("b", nil)
	fa, _ := EncodeFrame(a)
	fb, _ := EncodeFrame(b)

	buf := append(append([]byte{}, fa...), fb...)
	msgs, consumed, err := DecodeFrames(buf)
	if err != nil {
		t.Fatalf("DecodeFrames: %v", err)
	}
	if consumed != len(buf) {
		t.Fatalf("consumed = %d, want %d", consumed, len(buf))
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
}

func TestDecodeFramesRejectsMissingContentLength(t *testing.T) {
	_, _, err := DecodeFrames([]byte("X-Custom: 1\r\n\r\n{}"))
	if err == nil {
		t.Fatal("expected a framing error for a missing Content-Length header")
	}
}

func TestDecodeFramesRejectsNonUTF8Body(t *testing.T) {
	body := []byte{0xff, 0xfe, 0xfd}
	var buf bytes.Buffer
	buf.WriteString("Content-Length: 3\r\n\r\n")
	buf.Write(body)
	_, _, err := DecodeFrames(buf.Bytes())
	if err == nil {
		t.Fatal("expected a framing error for a non-UTF-8 body")
	}
}
