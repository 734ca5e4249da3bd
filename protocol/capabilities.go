package protocol

// DefaultCapabilities returns the capability document this core advertises
// at initialize time when the embedder does not supply its own (spec.md
// §6). Field-for-field this mirrors tarts.client.CAPABILITIES exactly,
// including the literal value-set ranges (completionItemKind 1-25,
// symbolKind 1-26) spec.md's prose only summarizes; see SPEC_FULL.md §6.
//
// The return type is a plain nested map rather than a generated
// ClientCapabilities struct: spec.md §1 scopes payload-record modeling to
// only as much as dispatch needs, and this document is never decoded by the
// core, only encoded, so there is nothing for a struct to buy here.
func DefaultCapabilities() map[string]any {
	return map[string]any{
		"textDocument": map[string]any{
			"synchronization": map[string]any{
				"didSave":           true,
				"dynamicRegistration": true,
			},
			"publishDiagnostics": map[string]any{
				"relatedInformation": true,
			},
			"completion": map[string]any{
				"dynamicRegistration": true,
				"completionItem": map[string]any{
					"snippetSupport": false,
				},
				"completionItemKind": map[string]any{
					"valueSet": completionItemKindValueSet(),
				},
			},
			"hover": map[string]any{
				"dynamicRegistration": true,
				"contentFormat":       []string{"markdown", "plaintext"},
			},
			"foldingRange": map[string]any{
				"dynamicRegistration": true,
			},
			"inlayHint": map[string]any{
				"dynamicRegistration": true,
			},
			"definition": map[string]any{
				"dynamicRegistration": true,
				"linkSupport":         true,
			},
			"signatureHelp": map[string]any{
				"dynamicRegistration": true,
				"signatureInformation": map[string]any{
					"parameterInformation": map[string]any{
						"labelOffsetSupport": false,
					},
					"documentationFormat": []string{"markdown", "plaintext"},
				},
			},
			"implementation": map[string]any{
				"linkSupport":         true,
				"dynamicRegistration": true,
			},
			"references": map[string]any{
				"dynamicRegistration": true,
			},
			"callHierarchy": map[string]any{
				"dynamicRegistration": true,
			},
			"declaration": map[string]any{
				"linkSupport":         true,
				"dynamicRegistration": true,
			},
			"typeDefinition": map[string]any{
				"linkSupport":         true,
				"dynamicRegistration": true,
			},
			"formatting": map[string]any{
				"dynamicRegistration": true,
			},
			"rangeFormatting": map[string]any{
				"dynamicRegistration": true,
			},
			"rename": map[string]any{
				"dynamicRegistration": true,
			},
			"documentSymbol": map[string]any{
				"hierarchicalDocumentSymbolSupport": true,
				"dynamicRegistration":               true,
				"symbolKind": map[string]any{
					"valueSet": symbolKindValueSet(),
				},
			},
		},
		"window": map[string]any{
			"showMessage":      map[string]any{},
			"workDoneProgress": true,
		},
		"workspace": map[string]any{
			"symbol": map[string]any{
				"dynamicRegistration": true,
				"symbolKind": map[string]any{
					"valueSet": symbolKindValueSet(),
				},
			},
			"workspaceFolders":       true,
			"configuration":          true,
			"didChangeConfiguration": map[string]any{"dynamicRegistration": true},
		},
	}
}

// completionItemKindValueSet is 1..25, the full LSP 3.17 CompletionItemKind
// enumeration.
func completionItemKindValueSet() []int {
	set := make([]int, 25)
	for i := range set {
		set[i] = i + 1
	}
	return set
}

// symbolKindValueSet is 1..26, the full LSP 3.17 SymbolKind enumeration.
func symbolKindValueSet() []int {
	set := make([]int, 26)
	for i := range set {
		set[i] = i + 1
	}
	return set
}
