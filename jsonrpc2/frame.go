package jsonrpc2

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	errors "golang.org/x/xerrors"
)

// ErrFraming is the sentinel wrapped by every framing failure: malformed
// headers, a missing or non-integer Content-Length, a non-UTF-8 body, or a
// body that fails JSON decoding or message classification.
// Per spec.md §7, a FramingError is always fatal to the session — the
// caller of DecodeFrames must tear the session down, never retry on the
// same buffer.
var ErrFraming = errors.New("jsonrpc2: framing error")

// utf8Validator fails on the first byte that is not valid UTF-8 (a decoder
// for unicode.UTF8 would instead replace such bytes with U+FFFD).
var utf8Validator = encoding.UTF8Validator

// EncodeFrame renders msg as header-framed bytes: "Content-Length: N\r\n\r\n"
// followed by N bytes of UTF-8 JSON body.
func EncodeFrame(msg Message) ([]byte, error) {
	body, err := Encode(msg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("Content-Length: ")
	buf.WriteString(strconv.Itoa(len(body)))
	buf.WriteString("\r\n\r\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// DecodeFrames scans buf for as many complete frames as are present,
// decoding each to a Message. It returns every message decoded before a
// framing error (messages 1..k-1 per spec.md §4.1), the framing error (if
// any) halting further scanning, and the number of leading bytes of buf that
// were fully consumed (including any frame whose body failed only the
// per-message JSON decode: see below).
//
// A body that parses as JSON but fails Decode's classification, or whose
// JSON is simply malformed, is also reported as an ErrFraming error, but
// with consumed covering the bad frame, since its length was announced
// correctly. Header errors (bad header, invalid or missing length) and
// non-UTF-8 bodies stop scanning at the first unconsumed byte and leave it
// in buf.
func DecodeFrames(buf []byte) (msgs []Message, consumed int, err error) {
	for {
		headerEnd := bytes.Index(buf[consumed:], []byte("\r\n\r\n"))
		if headerEnd < 0 {
			return msgs, consumed, nil
		}
		headerEnd += consumed

		length, herr := parseContentLength(buf[consumed:headerEnd])
		if herr != nil {
			return msgs, consumed, herr
		}
		bodyStart := headerEnd + 4
		bodyEnd := bodyStart + length
		if bodyEnd > len(buf) {
			// not enough body bytes yet; wait for more
			return msgs, consumed, nil
		}
		body := buf[bodyStart:bodyEnd]
		if _, _, uerr := transform.Bytes(utf8Validator, body); uerr != nil {
			return msgs, consumed, errors.Errorf("%w: body is not valid UTF-8: %v", ErrFraming, uerr)
		}

		msg, derr := Decode(body)
		consumed = bodyEnd
		if derr != nil {
			return msgs, consumed, errors.Errorf("%w: %v", ErrFraming, derr)
		}
		msgs = append(msgs, msg)
	}
}

func parseContentLength(header []byte) (int, error) {
	length := -1
	for _, line := range bytes.Split(header, []byte("\r\n")) {
		line := strings.TrimSpace(string(line))
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return 0, errors.Errorf("%w: invalid header line %q", ErrFraming, line)
		}
		name := strings.TrimSpace(line[:colon])
		value := strings.TrimSpace(line[colon+1:])
		if !strings.EqualFold(name, "Content-Length") {
			continue // other headers (e.g. Content-Type) are tolerated and ignored
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return 0, errors.Errorf("%w: invalid Content-Length %q", ErrFraming, value)
		}
		length = n
	}
	if length < 0 {
		return 0, errors.Errorf("%w: missing Content-Length header", ErrFraming)
	}
	return length, nil
}
