package lspclient

import (
	"github.com/lspsansio/lspclient/jsonrpc2"
	"github.com/lspsansio/lspclient/protocol"
)

// Initialize sends the initialize request. Only legal in NOT_INITIALIZED;
// on success the session moves to WAITING_FOR_INITIALIZED until the
// response is dispatched (spec.md §4.4).
func (s *Session) Initialize(params protocol.InitializeParams) (jsonrpc2.ID, error) {
	if err := s.requireState("Initialize", NotInitialized); err != nil {
		return jsonrpc2.ID{}, err
	}
	id, err := s.sendCall(protocol.MethodInitialize, params)
	if err != nil {
		return jsonrpc2.ID{}, err
	}
	s.state = WaitingForInitialized
	return id, nil
}

// DidOpen sends textDocument/didOpen.
func (s *Session) DidOpen(doc protocol.TextDocumentItem) error {
	if err := s.requireState("DidOpen", Normal); err != nil {
		return err
	}
	return s.sendNotify(protocol.MethodDidOpen, struct {
		TextDocument protocol.TextDocumentItem `json:"textDocument"`
	}{doc})
}

// DidChange sends textDocument/didChange.
func (s *Session) DidChange(doc protocol.VersionedTextDocumentIdentifier, changes []protocol.TextDocumentContentChangeEvent) error {
	if err := s.requireState("DidChange", Normal); err != nil {
		return err
	}
	return s.sendNotify(protocol.MethodDidChange, struct {
		TextDocument   protocol.VersionedTextDocumentIdentifier   `json:"textDocument"`
		ContentChanges []protocol.TextDocumentContentChangeEvent `json:"contentChanges"`
	}{doc, changes})
}

// WillSave sends textDocument/willSave.
func (s *Session) WillSave(doc protocol.TextDocumentIdentifier, reason protocol.TextDocumentSaveReason) error {
	if err := s.requireState("WillSave", Normal); err != nil {
		return err
	}
	return s.sendNotify(protocol.MethodWillSave, struct {
		TextDocument protocol.TextDocumentIdentifier       `json:"textDocument"`
		Reason       protocol.TextDocumentSaveReason `json:"reason"`
	}{doc, reason})
}

// WillSaveWaitUntil sends textDocument/willSaveWaitUntil, a request (not a
// notification) so that edits computed before the save can be applied; its
// response surfaces as a WillSaveWaitUntilEvent (see SPEC_FULL.md §6).
func (s *Session) WillSaveWaitUntil(doc protocol.TextDocumentIdentifier, reason protocol.TextDocumentSaveReason) (jsonrpc2.ID, error) {
	if err := s.requireState("WillSaveWaitUntil", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodWillSaveWaitUntil, struct {
		TextDocument protocol.TextDocumentIdentifier       `json:"textDocument"`
		Reason       protocol.TextDocumentSaveReason `json:"reason"`
	}{doc, reason})
}

// DidSave sends textDocument/didSave.
func (s *Session) DidSave(doc protocol.TextDocumentIdentifier, text *string) error {
	if err := s.requireState("DidSave", Normal); err != nil {
		return err
	}
	return s.sendNotify(protocol.MethodDidSave, struct {
		TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
		Text         *string                   `json:"text,omitempty"`
	}{doc, text})
}

// DidClose sends textDocument/didClose.
func (s *Session) DidClose(doc protocol.TextDocumentIdentifier) error {
	if err := s.requireState("DidClose", Normal); err != nil {
		return err
	}
	return s.sendNotify(protocol.MethodDidClose, struct {
		TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	}{doc})
}

// Hover sends textDocument/hover.
func (s *Session) Hover(pos protocol.TextDocumentPositionParams) (jsonrpc2.ID, error) {
	if err := s.requireState("Hover", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodHover, pos)
}

// Completion sends textDocument/completion.
func (s *Session) Completion(params protocol.CompletionParams) (jsonrpc2.ID, error) {
	if err := s.requireState("Completion", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodCompletion, params)
}

// SignatureHelp sends textDocument/signatureHelp.
func (s *Session) SignatureHelp(pos protocol.TextDocumentPositionParams) (jsonrpc2.ID, error) {
	if err := s.requireState("SignatureHelp", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodSignatureHelp, pos)
}

// Definition sends textDocument/definition.
func (s *Session) Definition(pos protocol.TextDocumentPositionParams) (jsonrpc2.ID, error) {
	if err := s.requireState("Definition", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodDefinition, pos)
}

// Declaration sends textDocument/declaration.
func (s *Session) Declaration(pos protocol.TextDocumentPositionParams) (jsonrpc2.ID, error) {
	if err := s.requireState("Declaration", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodDeclaration, pos)
}

// TypeDefinition sends textDocument/typeDefinition.
func (s *Session) TypeDefinition(pos protocol.TextDocumentPositionParams) (jsonrpc2.ID, error) {
	if err := s.requireState("TypeDefinition", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodTypeDefinition, pos)
}

// Implementation sends textDocument/implementation.
func (s *Session) Implementation(pos protocol.TextDocumentPositionParams) (jsonrpc2.ID, error) {
	if err := s.requireState("Implementation", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodImplementation, pos)
}

// References sends textDocument/references.
func (s *Session) References(params protocol.ReferenceParams) (jsonrpc2.ID, error) {
	if err := s.requireState("References", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodReferences, params)
}

// DocumentSymbol sends textDocument/documentSymbol.
func (s *Session) DocumentSymbol(doc protocol.TextDocumentIdentifier) (jsonrpc2.ID, error) {
	if err := s.requireState("DocumentSymbol", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodDocumentSymbol, struct {
		TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	}{doc})
}

// WorkspaceSymbol sends workspace/symbol.
func (s *Session) WorkspaceSymbol(query string) (jsonrpc2.ID, error) {
	if err := s.requireState("WorkspaceSymbol", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodWorkspaceSymbol, struct {
		Query string `json:"query"`
	}{query})
}

// Rename sends textDocument/rename.
func (s *Session) Rename(params protocol.RenameParams) (jsonrpc2.ID, error) {
	if err := s.requireState("Rename", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodRename, params)
}

// Formatting sends textDocument/formatting.
func (s *Session) Formatting(doc protocol.TextDocumentIdentifier, opts protocol.FormattingOptions) (jsonrpc2.ID, error) {
	if err := s.requireState("Formatting", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodFormatting, struct {
		TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
		Options      protocol.FormattingOptions      `json:"options"`
	}{doc, opts})
}

// RangeFormatting sends textDocument/rangeFormatting.
func (s *Session) RangeFormatting(doc protocol.TextDocumentIdentifier, r protocol.Range, opts protocol.FormattingOptions) (jsonrpc2.ID, error) {
	if err := s.requireState("RangeFormatting", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodRangeFormatting, struct {
		TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
		Range        protocol.Range                  `json:"range"`
		Options      protocol.FormattingOptions      `json:"options"`
	}{doc, r, opts})
}

// FoldingRange sends textDocument/foldingRange.
func (s *Session) FoldingRange(doc protocol.TextDocumentIdentifier) (jsonrpc2.ID, error) {
	if err := s.requireState("FoldingRange", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodFoldingRange, struct {
		TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	}{doc})
}

// InlayHint sends textDocument/inlayHint.
func (s *Session) InlayHint(doc protocol.TextDocumentIdentifier, r protocol.Range) (jsonrpc2.ID, error) {
	if err := s.requireState("InlayHint", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodInlayHint, struct {
		TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
		Range        protocol.Range                  `json:"range"`
	}{doc, r})
}

// PrepareCallHierarchy sends textDocument/prepareCallHierarchy.
func (s *Session) PrepareCallHierarchy(pos protocol.TextDocumentPositionParams) (jsonrpc2.ID, error) {
	if err := s.requireState("PrepareCallHierarchy", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	return s.sendCall(protocol.MethodPrepareCallHierarchy, pos)
}

// DidChangeConfiguration sends workspace/didChangeConfiguration.
func (s *Session) DidChangeConfiguration(settings any) error {
	if err := s.requireState("DidChangeConfiguration", Normal); err != nil {
		return err
	}
	return s.sendNotify(protocol.MethodDidChangeConfiguration, struct {
		Settings any `json:"settings"`
	}{settings})
}

// DidChangeWorkspaceFolders sends workspace/didChangeWorkspaceFolders.
func (s *Session) DidChangeWorkspaceFolders(event protocol.WorkspaceFoldersChangeEvent) error {
	if err := s.requireState("DidChangeWorkspaceFolders", Normal); err != nil {
		return err
	}
	return s.sendNotify(protocol.MethodDidChangeWorkspaceFolders, struct {
		Event protocol.WorkspaceFoldersChangeEvent `json:"event"`
	}{event})
}

// Shutdown sends the shutdown request. Legal only in NORMAL; on success the
// session moves to WAITING_FOR_SHUTDOWN until the response is dispatched
// (spec.md §4.4).
func (s *Session) Shutdown() (jsonrpc2.ID, error) {
	if err := s.requireState("Shutdown", Normal); err != nil {
		return jsonrpc2.ID{}, err
	}
	id, err := s.sendCall(protocol.MethodShutdown, nil)
	if err != nil {
		return jsonrpc2.ID{}, err
	}
	s.state = WaitingForShutdown
	return id, nil
}

// Exit sends the exit notification. Legal only in SHUTDOWN; moves the
// session to EXITED, its terminal state.
func (s *Session) Exit() error {
	if err := s.requireState("Exit", Shutdown); err != nil {
		return err
	}
	if err := s.sendNotify(protocol.MethodExit, nil); err != nil {
		return err
	}
	s.state = Exited
	return nil
}

// Call is the escape hatch for sending a request whose method this facade
// does not name, e.g. a server-specific extension. Its response surfaces
// as a RawResponseEvent, which the caller decodes itself.
func (s *Session) Call(method string, params any) (jsonrpc2.ID, error) {
	return s.sendCall(method, params)
}

// Notify is the escape hatch for sending a notification whose method this
// facade does not name.
func (s *Session) Notify(method string, params any) error {
	return s.sendNotify(method, params)
}
