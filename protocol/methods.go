// Package protocol defines the closed catalog of LSP method names and
// payload records this client core recognizes, plus helpers (the default
// capability document, markdown rendering, server version negotiation) that
// sit alongside the catalog but are not needed for dispatch itself.
package protocol

// Client-to-server method names: requests.
const (
	MethodInitialize           = "initialize"
	MethodShutdown             = "shutdown"
	MethodCompletion           = "textDocument/completion"
	MethodHover                = "textDocument/hover"
	MethodSignatureHelp        = "textDocument/signatureHelp"
	MethodDefinition           = "textDocument/definition"
	MethodDeclaration          = "textDocument/declaration"
	MethodTypeDefinition       = "textDocument/typeDefinition"
	MethodImplementation       = "textDocument/implementation"
	MethodReferences           = "textDocument/references"
	MethodDocumentSymbol       = "textDocument/documentSymbol"
	MethodWorkspaceSymbol      = "workspace/symbol"
	MethodRename               = "textDocument/rename"
	MethodFormatting           = "textDocument/formatting"
	MethodRangeFormatting      = "textDocument/rangeFormatting"
	MethodFoldingRange         = "textDocument/foldingRange"
	MethodInlayHint            = "textDocument/inlayHint"
	MethodPrepareCallHierarchy = "textDocument/prepareCallHierarchy"
	MethodWillSaveWaitUntil    = "textDocument/willSaveWaitUntil"
)

// Client-to-server method names: notifications.
const (
	MethodInitialized               = "initialized"
	MethodExit                      = "exit"
	MethodDidOpen                   = "textDocument/didOpen"
	MethodDidChange                 = "textDocument/didChange"
	MethodDidSave                   = "textDocument/didSave"
	MethodDidClose                  = "textDocument/didClose"
	MethodWillSave                  = "textDocument/willSave"
	MethodDidChangeConfiguration    = "workspace/didChangeConfiguration"
	MethodDidChangeWorkspaceFolders = "workspace/didChangeWorkspaceFolders"
	MethodCancelRequest             = "$/cancelRequest"
)

// Server-to-client method names: notifications.
const (
	MethodShowMessage        = "window/showMessage"
	MethodLogMessage         = "window/logMessage"
	MethodPublishDiagnostics = "textDocument/publishDiagnostics"
	MethodProgress           = "$/progress"
)

// Server-to-client method names: requests.
const (
	MethodWorkspaceFolders       = "workspace/workspaceFolders"
	MethodConfiguration          = "workspace/configuration"
	MethodShowMessageRequest     = "window/showMessageRequest"
	MethodWorkDoneProgressCreate = "window/workDoneProgress/create"
	MethodRegisterCapability     = "client/registerCapability"
)

// ProgressKind discriminates the three $/progress value shapes.
type ProgressKind string

const (
	ProgressBegin  ProgressKind = "begin"
	ProgressReport ProgressKind = "report"
	ProgressEnd    ProgressKind = "end"
)
