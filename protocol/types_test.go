package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHoverContentsShapes(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantMarkup bool
		wantMarked int
	}{
		{"markup", `{"kind":"markdown","value":"**hi**"}`, true, 0},
		{"bare string", `"hi"`, false, 1},
		{"marked string object", `{"language":"go","value":"func()"}`, false, 1},
		{"list", `["a", {"language":"go","value":"b"}]`, false, 2},
		{"null", `null`, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHoverContents(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.wantMarkup, got.Markup != nil)
			assert.Len(t, got.Marked, tt.wantMarked)
		})
	}
}

func TestDecodeDefinitionResultShapes(t *testing.T) {
	loc := `{"uri":"file:///a.go","range":{"start":{"line":1,"character":0},"end":{"line":1,"character":4}}}`
	got, err := DecodeDefinitionResult(json.RawMessage(loc))
	require.NoError(t, err)
	require.NotNil(t, got.Location)
	assert.Equal(t, "file:///a.go", got.Location.URI)

	list := `[` + loc + `]`
	got, err = DecodeDefinitionResult(json.RawMessage(list))
	require.NoError(t, err)
	assert.Len(t, got.Locations, 1)

	links := `[{"targetUri":"file:///b.go","targetRange":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}},"targetSelectionRange":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}}}]`
	got, err = DecodeDefinitionResult(json.RawMessage(links))
	require.NoError(t, err)
	assert.Len(t, got.LocationLinks, 1)

	got, err = DecodeDefinitionResult(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestDecodeWorkspaceEditPrefersDocumentChanges(t *testing.T) {
	raw := `{
		"changes": {"file:///a.go": [{"range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}},"newText":"x"}]},
		"documentChanges": [{"textDocument":{"uri":"file:///a.go","version":1},"edits":[{"range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}},"newText":"y"}]}]
	}`
	edit, err := DecodeWorkspaceEdit(json.RawMessage(raw))
	require.NoError(t, err)
	require.NotNil(t, edit)
	assert.Nil(t, edit.Changes)
	require.Len(t, edit.DocumentChanges, 1)
	assert.Equal(t, "y", edit.DocumentChanges[0].Edits[0].NewText)
}

func TestInitializeParamsMergesExtensionFieldsFlat(t *testing.T) {
	pid := int32(99)
	params := InitializeParams{
		ProcessID:    &pid,
		Capabilities: map[string]any{},
		ExtensionFields: map[string]any{
			"initializationOptions": map[string]any{"foo": "bar"},
			"clientInfo":            map[string]any{"name": "lspsh"},
		},
	}
	raw, err := json.Marshal(params)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "processId")
	assert.Contains(t, decoded, "capabilities")
	assert.JSONEq(t, `{"foo":"bar"}`, string(decoded["initializationOptions"]))
	assert.JSONEq(t, `{"name":"lspsh"}`, string(decoded["clientInfo"]))
}

func TestDefaultCapabilitiesAdvertisesFullValueSets(t *testing.T) {
	caps := DefaultCapabilities()
	textDocument := caps["textDocument"].(map[string]any)
	completion := textDocument["completion"].(map[string]any)
	kind := completion["completionItemKind"].(map[string]any)
	assert.Len(t, kind["valueSet"], 25)

	docSym := textDocument["documentSymbol"].(map[string]any)
	symKind := docSym["symbolKind"].(map[string]any)
	assert.Len(t, symKind["valueSet"], 26)
}
