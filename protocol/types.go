package protocol

import "encoding/json"

// DocumentURI is a URI identifying a text document, always a string on the
// wire (file://, untitled:, etc).
type DocumentURI = string

// Position is a zero-based line/character offset, UTF-16 code units per the
// LSP spec (this core does not re-encode; it passes positions through as
// given by the embedder).
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a half-open [Start, End) span within a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location identifies a range within a specific document.
type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

// LocationLink is Location's richer sibling, used where linkSupport was
// advertised (definition, declaration, typeDefinition, implementation).
type LocationLink struct {
	OriginSelectionRange *Range      `json:"originSelectionRange,omitempty"`
	TargetURI            DocumentURI `json:"targetUri"`
	TargetRange          Range       `json:"targetRange"`
	TargetSelectionRange Range       `json:"targetSelectionRange"`
}

// TextDocumentIdentifier names a document by URI alone.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// OptionalVersionedTextDocumentIdentifier carries a version that may be nil
// (used inside TextDocumentEdit, where a null version means "don't care").
type OptionalVersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version *int32 `json:"version"`
}

// VersionedTextDocumentIdentifier is used by didChange, where the version is
// always known.
type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int32 `json:"version"`
}

// TextDocumentItem is the full content of a document as sent by didOpen.
type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int32       `json:"version"`
	Text       string      `json:"text"`
}

// TextDocumentPositionParams is embedded by every request shaped "a position
// within a document" (hover, definition, completion, ...).
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// WorkspaceFolder is one root of a (possibly multi-root) workspace.
type WorkspaceFolder struct {
	URI  DocumentURI `json:"uri"`
	Name string      `json:"name"`
}

// InitializeParams is sent with the initialize request. Capabilities is left
// as an untyped `any` so an embedder can supply an arbitrary document
// without this package needing to model the full (enormous)
// ClientCapabilities shape; DefaultCapabilities returns a ready-made value
// for the common case.
//
// ExtensionFields carries whatever top-level keys the embedder wants beyond
// the fixed set below — initializationOptions among them, but not limited
// to it. MarshalJSON flatly merges these into the encoded object rather
// than nesting them under one fixed key, matching
// original_source/tarts/client.py's `d.update(initialize_options)`, which
// splats the embedder's extra keys directly into the request dict. A key
// in ExtensionFields that collides with a fixed field overrides it, same as
// the dict update it is grounded on.
type InitializeParams struct {
	ProcessID        *int32            `json:"processId"`
	RootURI          *DocumentURI      `json:"rootUri"`
	WorkspaceFolders []WorkspaceFolder `json:"workspaceFolders,omitempty"`
	Trace            string            `json:"trace,omitempty"`
	Capabilities     any               `json:"capabilities"`
	ExtensionFields  map[string]any    `json:"-"`
}

// MarshalJSON encodes the fixed fields, then overlays ExtensionFields on
// top of the resulting object.
func (p InitializeParams) MarshalJSON() ([]byte, error) {
	type alias InitializeParams
	base, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	if len(p.ExtensionFields) == 0 {
		return base, nil
	}
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range p.ExtensionFields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// ServerInfo is the optional name/version a server reports at initialize
// time.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult is the successful result of initialize. Capabilities is
// left untyped: this core does not validate server capability reports
// (spec.md §1 non-goal), it only needs to carry the value through to the
// embedder.
type InitializeResult struct {
	Capabilities any         `json:"capabilities"`
	ServerInfo   *ServerInfo `json:"serverInfo,omitempty"`
}

// MarkupKind selects how a MarkupContent's Value should be interpreted.
type MarkupKind string

const (
	Markdown MarkupKind = "markdown"
	PlainText MarkupKind = "plaintext"
)

// MarkupContent is rich documentation text, e.g. hover contents or
// completion-item documentation.
type MarkupContent struct {
	Kind  MarkupKind `json:"kind"`
	Value string     `json:"value"`
}

// MarkedString is the legacy (pre-3.0) hover content shape: either a plain
// string or a {language, value} pair.
type MarkedString struct {
	Language string `json:"language,omitempty"`
	Value    string `json:"value"`
	isPlain  bool
}

// UnmarshalJSON accepts either a bare JSON string or a {language,value}
// object, since LSP hover contents overload this field both ways.
func (m *MarkedString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Value, m.isPlain = s, true
		return nil
	}
	type alias MarkedString
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = MarkedString(a)
	return nil
}

func (m MarkedString) MarshalJSON() ([]byte, error) {
	if m.isPlain || m.Language == "" {
		return json.Marshal(m.Value)
	}
	type alias MarkedString
	return json.Marshal(alias(m))
}

// HoverContents is the tagged union hover.contents may take on the wire:
// a bare string, a MarkedString, a list of (MarkedString|string), or a
// MarkupContent. DecodeHoverContents tries MarkupContent first (an object
// with a kind), then a list, then a single string or MarkedString, per
// spec.md §9's guidance for shape-polymorphic payloads.
type HoverContents struct {
	Markup *MarkupContent
	Marked []MarkedString
}

func DecodeHoverContents(raw json.RawMessage) (HoverContents, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return HoverContents{}, nil
	}
	var markup MarkupContent
	if err := json.Unmarshal(raw, &markup); err == nil && markup.Kind != "" {
		return HoverContents{Markup: &markup}, nil
	}
	var list []MarkedString
	if err := json.Unmarshal(raw, &list); err == nil {
		return HoverContents{Marked: list}, nil
	}
	var one MarkedString
	if err := json.Unmarshal(raw, &one); err == nil {
		return HoverContents{Marked: []MarkedString{one}}, nil
	}
	return HoverContents{}, errDecodef("hover contents", raw)
}

// Hover is the result of textDocument/hover.
type Hover struct {
	Contents HoverContents `json:"-"`
	Range    *Range        `json:"range,omitempty"`
}

// CompletionTriggerKind says what caused a completion request.
type CompletionTriggerKind int

const (
	CompletionTriggerInvoked                  CompletionTriggerKind = 1
	CompletionTriggerCharacter                CompletionTriggerKind = 2
	CompletionTriggerForIncompleteCompletions CompletionTriggerKind = 3
)

// CompletionContext accompanies a completion request when the client knows
// what triggered it.
type CompletionContext struct {
	TriggerKind      CompletionTriggerKind `json:"triggerKind"`
	TriggerCharacter string                `json:"triggerCharacter,omitempty"`
}

// CompletionParams is the params object for textDocument/completion.
type CompletionParams struct {
	TextDocumentPositionParams
	Context *CompletionContext `json:"context,omitempty"`
}

// CompletionItemKind enumerates the icon/category of a completion item.
// Values 1-25 are the full LSP 3.17 set; DefaultCapabilities advertises all
// of them.
type CompletionItemKind int

// InsertTextFormat distinguishes plain-text completions from ones carrying
// tab-stop snippet syntax.
type InsertTextFormat int

const (
	InsertTextFormatPlainText InsertTextFormat = 1
	InsertTextFormatSnippet   InsertTextFormat = 2
)

// CompletionItem is one entry of a completion list.
type CompletionItem struct {
	Label               string             `json:"label"`
	Kind                CompletionItemKind `json:"kind,omitempty"`
	Detail              string             `json:"detail,omitempty"`
	Documentation       json.RawMessage    `json:"documentation,omitempty"`
	Deprecated          bool               `json:"deprecated,omitempty"`
	Preselect           bool               `json:"preselect,omitempty"`
	SortText            string             `json:"sortText,omitempty"`
	FilterText          string             `json:"filterText,omitempty"`
	InsertText          string             `json:"insertText,omitempty"`
	InsertTextFormat    InsertTextFormat   `json:"insertTextFormat,omitempty"`
	TextEdit            *TextEdit          `json:"textEdit,omitempty"`
	AdditionalTextEdits []TextEdit         `json:"additionalTextEdits,omitempty"`
	CommitCharacters    []string           `json:"commitCharacters,omitempty"`
	Data                json.RawMessage    `json:"data,omitempty"`
}

// CompletionList is the successful result of textDocument/completion.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// TextEdit replaces the text within Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// TextDocumentEdit is a sequence of edits to apply to one versioned
// document, used inside WorkspaceEdit.DocumentChanges.
type TextDocumentEdit struct {
	TextDocument OptionalVersionedTextDocumentIdentifier `json:"textDocument"`
	Edits        []TextEdit                              `json:"edits"`
}

// WorkspaceEdit describes a set of changes across one or more documents,
// returned by rename and some code actions.
//
// Per SPEC_FULL.md §6, Changes and DocumentChanges are mutually-preferred
// alternatives: DecodeWorkspaceEdit checks DocumentChanges first.
type WorkspaceEdit struct {
	Changes         map[DocumentURI][]TextEdit `json:"changes,omitempty"`
	DocumentChanges []TextDocumentEdit         `json:"documentChanges,omitempty"`
}

// ParameterInformation documents a single parameter of a SignatureInformation.
type ParameterInformation struct {
	Label         json.RawMessage `json:"label"`
	Documentation json.RawMessage `json:"documentation,omitempty"`
}

// SignatureInformation documents one overload of a callable.
type SignatureInformation struct {
	Label           string                  `json:"label"`
	Documentation   json.RawMessage         `json:"documentation,omitempty"`
	Parameters      []ParameterInformation  `json:"parameters,omitempty"`
	ActiveParameter *uint32                 `json:"activeParameter,omitempty"`
}

// SignatureHelp is the result of textDocument/signatureHelp.
type SignatureHelp struct {
	Signatures      []SignatureInformation `json:"signatures"`
	ActiveSignature *uint32                `json:"activeSignature,omitempty"`
	ActiveParameter *uint32                `json:"activeParameter,omitempty"`
}

// DiagnosticSeverity ranks a Diagnostic's importance.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// DiagnosticRelatedInformation points at a secondary location relevant to a
// Diagnostic (e.g. "first defined here").
type DiagnosticRelatedInformation struct {
	Location Location `json:"location"`
	Message  string   `json:"message"`
}

// Diagnostic is one issue reported against a range of a document.
type Diagnostic struct {
	Range              Range                          `json:"range"`
	Severity           DiagnosticSeverity             `json:"severity,omitempty"`
	Code               json.RawMessage                `json:"code,omitempty"`
	Source             string                         `json:"source,omitempty"`
	Message            string                         `json:"message"`
	RelatedInformation []DiagnosticRelatedInformation `json:"relatedInformation,omitempty"`
	Data               json.RawMessage                `json:"data,omitempty"`
}

// PublishDiagnosticsParams is the server notification reporting the current
// diagnostics for a document.
type PublishDiagnosticsParams struct {
	URI         DocumentURI  `json:"uri"`
	Version     *int32       `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// SymbolKind enumerates the icon/category of a symbol. Values 1-26 are the
// full LSP 3.17 set; DefaultCapabilities advertises all of them.
type SymbolKind int

// DocumentSymbol is a hierarchical symbol (when hierarchicalDocumentSymbolSupport
// was advertised, which DefaultCapabilities does).
type DocumentSymbol struct {
	Name           string            `json:"name"`
	Detail         string            `json:"detail,omitempty"`
	Kind           SymbolKind        `json:"kind"`
	Range          Range             `json:"range"`
	SelectionRange Range             `json:"selectionRange"`
	Children       []DocumentSymbol  `json:"children,omitempty"`
}

// SymbolInformation is the flat (non-hierarchical) symbol shape, used by
// workspace/symbol and as documentSymbol's fallback.
type SymbolInformation struct {
	Name          string     `json:"name"`
	Kind          SymbolKind `json:"kind"`
	Location      Location   `json:"location"`
	ContainerName string     `json:"containerName,omitempty"`
}

// FoldingRangeKind hints at the UI treatment of a FoldingRange (comment,
// imports, region); empty means "unspecified".
type FoldingRangeKind string

// FoldingRange names a collapsible span of lines in a document.
type FoldingRange struct {
	StartLine      uint32           `json:"startLine"`
	StartCharacter *uint32          `json:"startCharacter,omitempty"`
	EndLine        uint32           `json:"endLine"`
	EndCharacter   *uint32          `json:"endCharacter,omitempty"`
	Kind           FoldingRangeKind `json:"kind,omitempty"`
}

// InlayHintKind distinguishes a type hint from a parameter-name hint.
type InlayHintKind int

const (
	InlayHintKindType      InlayHintKind = 1
	InlayHintKindParameter InlayHintKind = 2
)

// InlayHintLabelPart is one piece of an InlayHint's label when it is a rich
// (clickable) label rather than a bare string.
type InlayHintLabelPart struct {
	Value    string    `json:"value"`
	Location *Location `json:"location,omitempty"`
}

// InlayHint is an inline annotation rendered at a position in a document.
type InlayHint struct {
	Position     Position             `json:"position"`
	Label        json.RawMessage      `json:"label"`
	Kind         InlayHintKind        `json:"kind,omitempty"`
	TextEdits    []TextEdit           `json:"textEdits,omitempty"`
	PaddingLeft  bool                 `json:"paddingLeft,omitempty"`
	PaddingRight bool                 `json:"paddingRight,omitempty"`
}

// CallHierarchyItem identifies a call-hierarchy-eligible symbol.
type CallHierarchyItem struct {
	Name           string     `json:"name"`
	Kind           SymbolKind `json:"kind"`
	Detail         string     `json:"detail,omitempty"`
	URI            DocumentURI `json:"uri"`
	Range          Range      `json:"range"`
	SelectionRange Range      `json:"selectionRange"`
	Data           json.RawMessage `json:"data,omitempty"`
}

// FormattingOptions configures textDocument/formatting and rangeFormatting.
type FormattingOptions struct {
	TabSize      uint32 `json:"tabSize"`
	InsertSpaces bool   `json:"insertSpaces"`
}

// TextDocumentSaveReason says why willSave/willSaveWaitUntil fired.
type TextDocumentSaveReason int

const (
	SaveManual      TextDocumentSaveReason = 1
	SaveAfterDelay  TextDocumentSaveReason = 2
	SaveFocusOut    TextDocumentSaveReason = 3
)

// TextDocumentContentChangeEvent is one incremental (or full) edit sent by
// didChange.
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

// MessageType ranks a log/show-message notification's severity.
type MessageType int

const (
	MessageError   MessageType = 1
	MessageWarning MessageType = 2
	MessageInfo    MessageType = 3
	MessageLog     MessageType = 4
)

// MessageActionItem is one button offered by a ShowMessageRequest.
type MessageActionItem struct {
	Title string `json:"title"`
}

// ShowMessageParams is window/showMessage's payload.
type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// ShowMessageRequestParams is window/showMessageRequest's payload.
type ShowMessageRequestParams struct {
	Type    MessageType          `json:"type"`
	Message string               `json:"message"`
	Actions []MessageActionItem  `json:"actions,omitempty"`
}

// LogMessageParams is window/logMessage's payload.
type LogMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// ProgressToken identifies one $/progress series; either an integer or a
// string, like jsonrpc2.ID.
type ProgressToken struct {
	Value any `json:"-"`
}

func (t ProgressToken) MarshalJSON() ([]byte, error)     { return json.Marshal(t.Value) }
func (t *ProgressToken) UnmarshalJSON(b []byte) error      { return json.Unmarshal(b, &t.Value) }

// WorkDoneProgressBeginValue starts a progress series.
type WorkDoneProgressBeginValue struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Cancellable bool   `json:"cancellable,omitempty"`
	Message     string `json:"message,omitempty"`
	Percentage  uint32 `json:"percentage,omitempty"`
}

// WorkDoneProgressReportValue reports an update within a progress series.
type WorkDoneProgressReportValue struct {
	Kind        string `json:"kind"`
	Cancellable bool   `json:"cancellable,omitempty"`
	Message     string `json:"message,omitempty"`
	Percentage  uint32 `json:"percentage,omitempty"`
}

// WorkDoneProgressEndValue closes a progress series.
type WorkDoneProgressEndValue struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// ProgressParams is $/progress's payload, generic over which of the three
// value shapes it carries (see ProgressValueKind).
type ProgressParams struct {
	Token ProgressToken   `json:"token"`
	Value json.RawMessage `json:"value"`
}

// progressValueKind peeks at value.kind without fully decoding it, so the
// dispatcher can select the right concrete type.
type progressValueKind struct {
	Kind ProgressKind `json:"kind"`
}

func ProgressValueKind(value json.RawMessage) (ProgressKind, error) {
	var k progressValueKind
	if err := json.Unmarshal(value, &k); err != nil {
		return "", err
	}
	return k.Kind, nil
}

// Registration is one dynamic capability registration requested by the
// server via client/registerCapability.
type Registration struct {
	ID              string          `json:"id"`
	Method          string          `json:"method"`
	RegisterOptions json.RawMessage `json:"registerOptions,omitempty"`
}

// RegistrationParams is client/registerCapability's payload.
type RegistrationParams struct {
	Registrations []Registration `json:"registrations"`
}

// ConfigurationItem names one setting the server wants resolved via
// workspace/configuration.
type ConfigurationItem struct {
	ScopeURI DocumentURI `json:"scopeUri,omitempty"`
	Section  string      `json:"section,omitempty"`
}

// ConfigurationParams is workspace/configuration's payload.
type ConfigurationParams struct {
	Items []ConfigurationItem `json:"items"`
}

// WorkspaceFoldersChangeEvent is workspace/didChangeWorkspaceFolders's
// payload's inner event.
type WorkspaceFoldersChangeEvent struct {
	Added   []WorkspaceFolder `json:"added"`
	Removed []WorkspaceFolder `json:"removed"`
}

// CancelParams is $/cancelRequest's payload.
type CancelParams struct {
	ID any `json:"id"`
}

// RenameParams is the params object for textDocument/rename.
type RenameParams struct {
	TextDocumentPositionParams
	NewName string `json:"newName"`
}

// ReferenceContext configures textDocument/references.
type ReferenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

// ReferenceParams is the params object for textDocument/references.
type ReferenceParams struct {
	TextDocumentPositionParams
	Context ReferenceContext `json:"context"`
}

func errDecodef(what string, raw json.RawMessage) error {
	return &decodeShapeError{what: what, raw: raw}
}

type decodeShapeError struct {
	what string
	raw  json.RawMessage
}

func (e *decodeShapeError) Error() string {
	return "protocol: " + e.what + ": no known shape matched " + string(e.raw)
}
