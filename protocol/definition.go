package protocol

import "encoding/json"

// DefinitionResult is the tagged sum textDocument/definition (and
// declaration, typeDefinition, implementation) may return: a single
// Location, a list of Location or LocationLink values, or nothing at all.
// Per spec.md §9, DecodeDefinitionResult tries each alternative in a fixed
// order rather than branching on the LSP version that supposedly produced
// it.
type DefinitionResult struct {
	Location      *Location
	Locations     []Location
	LocationLinks []LocationLink
}

// IsEmpty reports whether the server returned no definition at all (an LSP
// null result).
func (d DefinitionResult) IsEmpty() bool {
	return d.Location == nil && len(d.Locations) == 0 && len(d.LocationLinks) == 0
}

// DecodeDefinitionResult decodes one of textDocument/definition's three
// legal result shapes, in the order: null, single Location, []Location,
// []LocationLink.
func DecodeDefinitionResult(raw json.RawMessage) (DefinitionResult, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefinitionResult{}, nil
	}
	var loc Location
	if err := json.Unmarshal(raw, &loc); err == nil && loc.URI != "" {
		return DefinitionResult{Location: &loc}, nil
	}
	var locs []Location
	if err := json.Unmarshal(raw, &locs); err == nil {
		if len(locs) == 0 || locs[0].URI != "" {
			return DefinitionResult{Locations: locs}, nil
		}
	}
	var links []LocationLink
	if err := json.Unmarshal(raw, &links); err == nil {
		return DefinitionResult{LocationLinks: links}, nil
	}
	return DefinitionResult{}, errDecodef("definition result", raw)
}

// DecodeWorkspaceEdit decodes a rename/code-action result. Per
// SPEC_FULL.md §6, DocumentChanges is preferred over Changes when both
// happen to be present (servers should send only one, but the LSP spec
// does not forbid both).
func DecodeWorkspaceEdit(raw json.RawMessage) (*WorkspaceEdit, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var edit WorkspaceEdit
	if err := json.Unmarshal(raw, &edit); err != nil {
		return nil, errDecodef("workspace edit", raw)
	}
	if edit.DocumentChanges != nil {
		edit.Changes = nil
	}
	return &edit, nil
}
