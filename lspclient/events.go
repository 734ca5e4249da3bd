package lspclient

import (
	"encoding/json"

	"github.com/lspsansio/lspclient/jsonrpc2"
	"github.com/lspsansio/lspclient/protocol"
)

// Event is the closed set of values Session.Feed yields. Per spec.md §9,
// event values are pure data: a server-originated *request* never carries a
// reply method on itself (as the original implementation's ServerRequest
// subclasses do); instead it is wrapped in an Answerable, which carries the
// session back-reference and enforces "reply at most once" dynamically.
type Event interface {
	isEvent()
}

type baseEvent struct{}

func (baseEvent) isEvent() {}

// InitializedEvent fires once, when the initialize response is
// successfully decoded (spec.md §4.2).
type InitializedEvent struct {
	baseEvent
	Capabilities any
	ServerInfo   *protocol.ServerInfo
}

// ShutdownEvent fires once, when the shutdown response is received.
type ShutdownEvent struct{ baseEvent }

// ResponseErrorEvent reports a JSON-RPC error object returned for one of
// this session's outbound requests (spec.md §7).
type ResponseErrorEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Method    string
	Code      int64
	Message   string
	Data      json.RawMessage
}

// RawResponseEvent is the result of a request sent through Session.Call,
// the escape hatch for methods this package's facade does not name. There
// is no registered decoder to run, so the raw result is handed back
// unparsed for the embedder to decode itself.
type RawResponseEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Method    string
	Result    json.RawMessage
}

// DecodeErrorEvent reports a payload that framed correctly but failed
// structural decoding with no salvage rule available (spec.md §7): either
// the result of one of this session's requests (the request is considered
// resolved; no retry is offered by the core), or the params of a
// server-originated request or notification (MessageID is the zero ID for
// a notification).
type DecodeErrorEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Method    string
	Err       error
}

// HoverEvent is the result of textDocument/hover. A null response decodes
// to an event with empty Contents, per spec.md §8 scenario S3.
type HoverEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Hover     protocol.Hover
}

// CompletionEvent is the result of textDocument/completion. List is nil
// only when the server returned a null result; a result that fails to
// decode is reported as a DecodeErrorEvent instead.
type CompletionEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	List      *protocol.CompletionList
}

// WillSaveWaitUntilEvent is the result of textDocument/willSaveWaitUntil.
type WillSaveWaitUntilEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Edits     []protocol.TextEdit
}

// SignatureHelpEvent is the result of textDocument/signatureHelp.
type SignatureHelpEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Help      protocol.SignatureHelp
}

// DefinitionEvent is the result of textDocument/definition.
type DefinitionEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Result    protocol.DefinitionResult
}

// DeclarationEvent is the result of textDocument/declaration.
type DeclarationEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Result    protocol.DefinitionResult
}

// TypeDefinitionEvent is the result of textDocument/typeDefinition.
type TypeDefinitionEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Result    protocol.DefinitionResult
}

// ImplementationEvent is the result of textDocument/implementation.
type ImplementationEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Result    protocol.DefinitionResult
}

// ReferencesEvent is the result of textDocument/references.
type ReferencesEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Locations []protocol.Location
}

// CallHierarchyEvent is the result of textDocument/prepareCallHierarchy.
type CallHierarchyEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Items     []protocol.CallHierarchyItem
}

// RenameEvent is the result of textDocument/rename.
type RenameEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Edit      *protocol.WorkspaceEdit
}

// DocumentSymbolEvent is the result of textDocument/documentSymbol, which
// may come back either hierarchical or flat; at most one of Hierarchical,
// Flat is non-nil, and both are nil for a null result.
type DocumentSymbolEvent struct {
	baseEvent
	MessageID    jsonrpc2.ID
	Hierarchical []protocol.DocumentSymbol
	Flat         []protocol.SymbolInformation
}

// WorkspaceSymbolEvent is the result of workspace/symbol.
type WorkspaceSymbolEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Symbols   []protocol.SymbolInformation
}

// FoldingRangeEvent is the result of textDocument/foldingRange.
type FoldingRangeEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Ranges    []protocol.FoldingRange
}

// InlayHintEvent is the result of textDocument/inlayHint.
type InlayHintEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Hints     []protocol.InlayHint
}

// FormattingEvent is the result of textDocument/formatting or
// textDocument/rangeFormatting.
type FormattingEvent struct {
	baseEvent
	MessageID jsonrpc2.ID
	Edits     []protocol.TextEdit
}

// --- server-originated notifications (no reply expected) ---

// ShowMessageEvent is window/showMessage.
type ShowMessageEvent struct {
	baseEvent
	protocol.ShowMessageParams
}

// LogMessageEvent is window/logMessage.
type LogMessageEvent struct {
	baseEvent
	protocol.LogMessageParams
}

// PublishDiagnosticsEvent is textDocument/publishDiagnostics.
type PublishDiagnosticsEvent struct {
	baseEvent
	protocol.PublishDiagnosticsParams
}

// WorkDoneProgressBeginEvent is a $/progress notification whose value.kind
// is "begin".
type WorkDoneProgressBeginEvent struct {
	baseEvent
	Token protocol.ProgressToken
	Value protocol.WorkDoneProgressBeginValue
}

// WorkDoneProgressReportEvent is a $/progress notification whose value.kind
// is "report".
type WorkDoneProgressReportEvent struct {
	baseEvent
	Token protocol.ProgressToken
	Value protocol.WorkDoneProgressReportValue
}

// WorkDoneProgressEndEvent is a $/progress notification whose value.kind is
// "end".
type WorkDoneProgressEndEvent struct {
	baseEvent
	Token protocol.ProgressToken
	Value protocol.WorkDoneProgressEndValue
}

// --- server-originated requests (reply expected, via Answerable) ---

// Answerable wraps a server-originated request's decoded payload together
// with a back-reference to the session and the request's id, so the
// embedder can reply. Reply/ReplyError may be called at most once; a
// second call panics, since a doubly-answered request is a programmer
// error the core cannot recover from gracefully (spec.md §4.5).
type Answerable[T any] struct {
	Payload T

	session *Session
	id      jsonrpc2.ID
	replied bool
}

func newAnswerable[T any](s *Session, id jsonrpc2.ID, payload T) Answerable[T] {
	return Answerable[T]{Payload: payload, session: s, id: id}
}

func (a *Answerable[T]) isEvent() {}

// Reply sends a successful response echoing this request's id.
func (a *Answerable[T]) Reply(result any) error {
	if a.replied {
		panic("lspclient: Answerable.Reply called more than once")
	}
	a.replied = true
	return a.session.sendResponse(a.id, result, nil)
}

// ReplyError sends an error response echoing this request's id.
func (a *Answerable[T]) ReplyError(wireErr *jsonrpc2.WireError) error {
	if a.replied {
		panic("lspclient: Answerable.ReplyError called more than once")
	}
	a.replied = true
	return a.session.sendResponse(a.id, nil, wireErr)
}

// WorkspaceFoldersRequest is workspace/workspaceFolders.
type WorkspaceFoldersRequest = Answerable[struct{}]

// ConfigurationRequest is workspace/configuration.
type ConfigurationRequest = Answerable[protocol.ConfigurationParams]

// ShowMessageRequestEvent is window/showMessageRequest.
type ShowMessageRequestEvent = Answerable[protocol.ShowMessageRequestParams]

// WorkDoneProgressCreateRequest is window/workDoneProgress/create.
type WorkDoneProgressCreateRequest = Answerable[struct {
	Token protocol.ProgressToken `json:"token"`
}]

// RegisterCapabilityRequest is client/registerCapability.
type RegisterCapabilityRequest = Answerable[protocol.RegistrationParams]

// UnrecognizedRequest is any server-originated request whose method is not
// in this core's catalog (spec.md §4.2). The embedder can reply with a
// JSON-RPC MethodNotFound error through the same Answerable capability
// every catalog request uses.
type UnrecognizedRequest = Answerable[UnrecognizedRequestPayload]

// UnrecognizedRequestPayload carries the method name and raw params of a
// server request this catalog does not recognize.
type UnrecognizedRequestPayload struct {
	Method string
	Params json.RawMessage
}
