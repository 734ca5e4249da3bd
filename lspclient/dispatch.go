package lspclient

import (
	"bytes"
	"encoding/json"

	"github.com/lspsansio/lspclient/jsonrpc2"
	"github.com/lspsansio/lspclient/protocol"
	errors "golang.org/x/xerrors"
)

// dispatchResponse resolves an inbound Response against the correlation
// table and decodes its result (or error) into the Event catalog entry for
// pending.Method. The correlation entry is always removed, even when
// decoding later fails, per spec.md §4.3: a response is consumed exactly
// once regardless of outcome.
func (s *Session) dispatchResponse(resp *jsonrpc2.Response) (Event, error) {
	pending, ok := s.pending[resp.ID]
	if !ok {
		return nil, &UnknownResponseIDError{ID: resp.ID}
	}
	delete(s.pending, resp.ID)

	if resp.Error != nil {
		return &ResponseErrorEvent{
			MessageID: resp.ID,
			Method:    pending.Method,
			Code:      resp.Error.Code,
			Message:   resp.Error.Message,
			Data:      resp.Error.Data,
		}, nil
	}

	decode, ok := responseDecoders[pending.Method]
	if !ok {
		// Reached only for requests sent through Session.Call, whose method
		// has no registered decoder (spec.md's facade covers the full LSP
		// catalog; Call is the deliberate escape hatch for anything else).
		return &RawResponseEvent{MessageID: resp.ID, Method: pending.Method, Result: resp.Result}, nil
	}
	ev, err := decode(resp.ID, resp.Result)
	if err != nil {
		return &DecodeErrorEvent{MessageID: resp.ID, Method: pending.Method, Err: err}, nil
	}

	switch pending.Method {
	case protocol.MethodInitialize:
		s.onInitializeSuccess(ev.(*InitializedEvent))
	case protocol.MethodShutdown:
		s.state = Shutdown
	}
	return ev, nil
}

// onInitializeSuccess performs the initialize-success side effects of
// spec.md §4.2: queue the `initialized` notification and move to the
// state that permits normal operation.
func (s *Session) onInitializeSuccess(ev *InitializedEvent) {
	s.state = Normal
	_ = s.sendNotify(protocol.MethodInitialized, struct{}{})
}

// responseDecoders maps a request method to the function that turns its
// raw JSON result into the matching Event. Registered once at package
// init; never mutated afterward, so concurrent Feed calls on distinct
// sessions share it safely.
var responseDecoders = map[string]func(id jsonrpc2.ID, raw json.RawMessage) (Event, error){
	protocol.MethodInitialize: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		var res protocol.InitializeResult
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, err
		}
		return &InitializedEvent{Capabilities: res.Capabilities, ServerInfo: res.ServerInfo}, nil
	},
	protocol.MethodShutdown: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		return &ShutdownEvent{}, nil
	},
	protocol.MethodHover: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		if len(raw) == 0 || string(raw) == "null" {
			return &HoverEvent{MessageID: id}, nil
		}
		var wire struct {
			Contents json.RawMessage `json:"contents"`
			Range    *protocol.Range `json:"range,omitempty"`
		}
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, err
		}
		contents, err := protocol.DecodeHoverContents(wire.Contents)
		if err != nil {
			return nil, err
		}
		return &HoverEvent{MessageID: id, Hover: protocol.Hover{Contents: contents, Range: wire.Range}}, nil
	},
	protocol.MethodCompletion: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		list, err := decodeCompletionResult(raw)
		if err != nil {
			return nil, err
		}
		return &CompletionEvent{MessageID: id, List: list}, nil
	},
	protocol.MethodWillSaveWaitUntil: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		edits, err := decodeTextEditList(raw)
		if err != nil {
			return nil, err
		}
		return &WillSaveWaitUntilEvent{MessageID: id, Edits: edits}, nil
	},
	protocol.MethodSignatureHelp: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		var help protocol.SignatureHelp
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &help); err != nil {
				return nil, err
			}
		}
		return &SignatureHelpEvent{MessageID: id, Help: help}, nil
	},
	protocol.MethodDefinition: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		res, err := protocol.DecodeDefinitionResult(raw)
		if err != nil {
			return nil, err
		}
		return &DefinitionEvent{MessageID: id, Result: res}, nil
	},
	protocol.MethodDeclaration: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		res, err := protocol.DecodeDefinitionResult(raw)
		if err != nil {
			return nil, err
		}
		return &DeclarationEvent{MessageID: id, Result: res}, nil
	},
	protocol.MethodTypeDefinition: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		res, err := protocol.DecodeDefinitionResult(raw)
		if err != nil {
			return nil, err
		}
		return &TypeDefinitionEvent{MessageID: id, Result: res}, nil
	},
	protocol.MethodImplementation: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		res, err := protocol.DecodeDefinitionResult(raw)
		if err != nil {
			return nil, err
		}
		return &ImplementationEvent{MessageID: id, Result: res}, nil
	},
	protocol.MethodReferences: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		var locs []protocol.Location
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &locs); err != nil {
				return nil, err
			}
		}
		return &ReferencesEvent{MessageID: id, Locations: locs}, nil
	},
	protocol.MethodPrepareCallHierarchy: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		var items []protocol.CallHierarchyItem
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, err
			}
		}
		return &CallHierarchyEvent{MessageID: id, Items: items}, nil
	},
	protocol.MethodRename: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		edit, err := protocol.DecodeWorkspaceEdit(raw)
		if err != nil {
			return nil, err
		}
		return &RenameEvent{MessageID: id, Edit: edit}, nil
	},
	protocol.MethodDocumentSymbol: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		return decodeDocumentSymbolResult(id, raw)
	},
	protocol.MethodWorkspaceSymbol: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		var syms []protocol.SymbolInformation
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &syms); err != nil {
				return nil, err
			}
		}
		return &WorkspaceSymbolEvent{MessageID: id, Symbols: syms}, nil
	},
	protocol.MethodFoldingRange: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		var ranges []protocol.FoldingRange
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &ranges); err != nil {
				return nil, err
			}
		}
		return &FoldingRangeEvent{MessageID: id, Ranges: ranges}, nil
	},
	protocol.MethodInlayHint: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		var hints []protocol.InlayHint
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &hints); err != nil {
				return nil, err
			}
		}
		return &InlayHintEvent{MessageID: id, Hints: hints}, nil
	},
	protocol.MethodFormatting: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		edits, err := decodeTextEditList(raw)
		if err != nil {
			return nil, err
		}
		return &FormattingEvent{MessageID: id, Edits: edits}, nil
	},
	protocol.MethodRangeFormatting: func(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
		edits, err := decodeTextEditList(raw)
		if err != nil {
			return nil, err
		}
		return &FormattingEvent{MessageID: id, Edits: edits}, nil
	},
}

func decodeTextEditList(raw json.RawMessage) ([]protocol.TextEdit, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var edits []protocol.TextEdit
	if err := json.Unmarshal(raw, &edits); err != nil {
		return nil, err
	}
	return edits, nil
}

// decodeCompletionResult implements the Open Question decision recorded in
// DESIGN.md: a completion result may arrive as a bare CompletionItem array
// (servers that skip the isIncomplete wrapper) rather than a CompletionList
// object. A bare array salvages to a CompletionList with IsIncomplete:false;
// so does an object carrying only items. A null result yields a nil list.
func decodeCompletionResult(raw json.RawMessage) (*protocol.CompletionList, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []protocol.CompletionItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
	}
	var list protocol.CompletionList
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func decodeDocumentSymbolResult(id jsonrpc2.ID, raw json.RawMessage) (Event, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return &DocumentSymbolEvent{MessageID: id}, nil
	}
	// Both shapes are JSON arrays; the only reliable discriminator is a
	// field that exists on one and not the other. DocumentSymbol always
	// carries selectionRange, which SymbolInformation never does.
	var probe []struct {
		SelectionRange *protocol.Range `json:"selectionRange"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, err
	}
	if len(probe) > 0 && probe[0].SelectionRange != nil {
		var hier []protocol.DocumentSymbol
		if err := json.Unmarshal(trimmed, &hier); err != nil {
			return nil, err
		}
		return &DocumentSymbolEvent{MessageID: id, Hierarchical: hier}, nil
	}
	var flat []protocol.SymbolInformation
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return nil, err
	}
	return &DocumentSymbolEvent{MessageID: id, Flat: flat}, nil
}

// dispatchServerRequest handles a Request inbound from the server: either a
// notification (no reply expected) or a call (wrapped in an Answerable so
// the embedder can reply). A malformed params payload is, per spec.md §7,
// a per-event decode failure, not a fatal one: it is reported as a
// DecodeErrorEvent value rather than a function error, so Feed keeps
// processing whatever else was framed out of the same buffer.
func (s *Session) dispatchServerRequest(req *jsonrpc2.Request) (Event, error) {
	if !req.IsCall() {
		return s.dispatchServerNotification(req)
	}
	switch req.Method {
	case protocol.MethodWorkspaceFolders:
		a := newAnswerable(s, req.ID, struct{}{})
		return &a, nil
	case protocol.MethodConfiguration:
		var params protocol.ConfigurationParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &DecodeErrorEvent{MessageID: req.ID, Method: req.Method, Err: err}, nil
		}
		a := newAnswerable(s, req.ID, params)
		return &a, nil
	case protocol.MethodShowMessageRequest:
		var params protocol.ShowMessageRequestParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &DecodeErrorEvent{MessageID: req.ID, Method: req.Method, Err: err}, nil
		}
		a := newAnswerable(s, req.ID, params)
		return &a, nil
	case protocol.MethodWorkDoneProgressCreate:
		var params struct {
			Token protocol.ProgressToken `json:"token"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &DecodeErrorEvent{MessageID: req.ID, Method: req.Method, Err: err}, nil
		}
		a := newAnswerable(s, req.ID, params)
		return &a, nil
	case protocol.MethodRegisterCapability:
		var params protocol.RegistrationParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &DecodeErrorEvent{MessageID: req.ID, Method: req.Method, Err: err}, nil
		}
		a := newAnswerable(s, req.ID, params)
		return &a, nil
	default:
		a := newAnswerable(s, req.ID, UnrecognizedRequestPayload{Method: req.Method, Params: req.Params})
		return &a, nil
	}
}

func (s *Session) dispatchServerNotification(req *jsonrpc2.Request) (Event, error) {
	switch req.Method {
	case protocol.MethodShowMessage:
		var params protocol.ShowMessageParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &DecodeErrorEvent{Method: req.Method, Err: err}, nil
		}
		return &ShowMessageEvent{ShowMessageParams: params}, nil
	case protocol.MethodLogMessage:
		var params protocol.LogMessageParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &DecodeErrorEvent{Method: req.Method, Err: err}, nil
		}
		return &LogMessageEvent{LogMessageParams: params}, nil
	case protocol.MethodPublishDiagnostics:
		var params protocol.PublishDiagnosticsParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &DecodeErrorEvent{Method: req.Method, Err: err}, nil
		}
		return &PublishDiagnosticsEvent{PublishDiagnosticsParams: params}, nil
	case protocol.MethodProgress:
		return s.dispatchProgress(req.Params)
	default:
		// A server notification this catalog does not recognize carries no
		// id to reply to; there is nothing useful to hand the embedder
		// beyond a log-worthy event, so it is dropped. Unrecognized *calls*
		// are surfaced via UnrecognizedRequest above, where a reply is
		// possible and required.
		return nil, nil
	}
}

// dispatchProgress decodes a $/progress notification. Every failure here —
// a malformed envelope, an unrecognized value.kind, or a malformed
// begin/report/end payload — is a per-event decode failure (spec.md §7), so
// all of them return a DecodeErrorEvent value rather than a function error.
func (s *Session) dispatchProgress(raw json.RawMessage) (Event, error) {
	var params protocol.ProgressParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return &DecodeErrorEvent{Method: protocol.MethodProgress, Err: err}, nil
	}
	kind, err := protocol.ProgressValueKind(params.Value)
	if err != nil {
		return &DecodeErrorEvent{Method: protocol.MethodProgress, Err: err}, nil
	}
	switch kind {
	case protocol.ProgressBegin:
		var v protocol.WorkDoneProgressBeginValue
		if err := json.Unmarshal(params.Value, &v); err != nil {
			return &DecodeErrorEvent{Method: protocol.MethodProgress, Err: err}, nil
		}
		return &WorkDoneProgressBeginEvent{Token: params.Token, Value: v}, nil
	case protocol.ProgressReport:
		var v protocol.WorkDoneProgressReportValue
		if err := json.Unmarshal(params.Value, &v); err != nil {
			return &DecodeErrorEvent{Method: protocol.MethodProgress, Err: err}, nil
		}
		return &WorkDoneProgressReportEvent{Token: params.Token, Value: v}, nil
	case protocol.ProgressEnd:
		var v protocol.WorkDoneProgressEndValue
		if err := json.Unmarshal(params.Value, &v); err != nil {
			return &DecodeErrorEvent{Method: protocol.MethodProgress, Err: err}, nil
		}
		return &WorkDoneProgressEndEvent{Token: params.Token, Value: v}, nil
	default:
		return &DecodeErrorEvent{
			Method: protocol.MethodProgress,
			Err:    errors.Errorf("lspclient: $/progress value with unknown kind %q", kind),
		}, nil
	}
}
