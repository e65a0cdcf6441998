package lsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/internal/testutil"
)

// frame encodes a request (id > 0) or notification (id == 0).
func frame(t *testing.T, id int, method string, params any) string {
	t.Helper()

	msg := map[string]any{"jsonrpc": "2.0", "method": method}
	if id > 0 {
		msg["id"] = id
	}
	if params != nil {
		msg["params"] = params
	}
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

// runSession feeds the framed messages to a new server and returns every
// message the server wrote and the error of Run.
func runSession(t *testing.T, frames ...string) ([]*JSONRPCMessage, error) {
	t.Helper()

	out := new(bytes.Buffer)
	s := NewServerWithLogger(strings.NewReader(strings.Join(frames, "")), out, testutil.NewTestLogger(t))
	err := s.Run()
	return readMessages(t, out), err
}

// response returns the response to the request with the given id.
func response(t *testing.T, msgs []*JSONRPCMessage, id int) *JSONRPCMessage {
	t.Helper()

	want := fmt.Sprint(id)
	for _, msg := range msgs {
		if msg.ID != nil && string(*msg.ID) == want && msg.Method == "" {
			return msg
		}
	}
	t.Fatalf("no response to request %d", id)
	return nil
}

func TestServer_Session(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "primerlint.yaml"), []byte(defaultConfig), 0o644))
	uri := PathToURI(filepath.Join(dir, "src", "Save.tsx"))

	msgs, err := runSession(t,
		frame(t, 1, "initialize", InitializeParams{RootURI: PathToURI(dir)}),
		frame(t, 0, "initialized", map[string]any{}),
		frame(t, 0, "textDocument/didOpen", DidOpenTextDocumentParams{
			TextDocument: TextDocumentItem{URI: uri, LanguageID: "typescriptreact", Version: 1, Text: systemPropsSource},
		}),
		frame(t, 2, "textDocument/hover", HoverParams{TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: uri},
			Position:     Position{Line: 2, Character: 30},
		}}),
		frame(t, 3, "textDocument/codeAction", CodeActionParams{
			TextDocument: TextDocumentIdentifier{URI: uri},
			Context:      CodeActionContext{Only: []CodeActionKind{CodeActionKindSourceFixAll}},
		}),
		frame(t, 0, "textDocument/didChange", DidChangeTextDocumentParams{
			TextDocument:   VersionedTextDocumentIdentifier{TextDocumentIdentifier: TextDocumentIdentifier{URI: uri}, Version: 2},
			ContentChanges: []TextDocumentContentChangeEvent{{Text: systemPropsFixed}},
		}),
		frame(t, 4, "textDocument/definition", map[string]any{}),
		frame(t, 0, "textDocument/didClose", DidCloseTextDocumentParams{TextDocument: TextDocumentIdentifier{URI: uri}}),
		frame(t, 5, "shutdown", nil),
		frame(t, 6, "textDocument/hover", map[string]any{}),
		frame(t, 0, "exit", nil),
	)
	require.NoError(t, err)

	t.Run("initialize", func(t *testing.T) {
		var result InitializeResult
		require.NoError(t, json.Unmarshal(response(t, msgs, 1).Result, &result))
		assert.True(t, result.Capabilities.HoverProvider)
		require.NotNil(t, result.Capabilities.TextDocumentSync)
		assert.Equal(t, TextDocumentSyncKindFull, result.Capabilities.TextDocumentSync.Change)
		require.NotNil(t, result.Capabilities.CodeActionProvider)
		assert.Contains(t, result.Capabilities.CodeActionProvider.CodeActionKinds, CodeActionKindFixAllPrimer)
		require.NotNil(t, result.ServerInfo)
		assert.Equal(t, "primerlint", result.ServerInfo.Name)
	})

	t.Run("diagnostics", func(t *testing.T) {
		published := notifications[PublishDiagnosticsParams](t, msgs, "textDocument/publishDiagnostics")
		require.Len(t, published, 3, "open, change and close")
		assert.Len(t, published[0].Diagnostics, 1)
		assert.Equal(t, "no-system-props", published[0].Diagnostics[0].Code)
		assert.Empty(t, published[1].Diagnostics, "the fixed source is clean")
		assert.Empty(t, published[2].Diagnostics, "closing clears diagnostics")

		assert.Empty(t, notifications[ShowMessageParams](t, msgs, "window/showMessage"))
	})

	t.Run("hover", func(t *testing.T) {
		var hover Hover
		require.NoError(t, json.Unmarshal(response(t, msgs, 2).Result, &hover))
		assert.Contains(t, hover.Contents.Value, "no-system-props")
	})

	t.Run("code action", func(t *testing.T) {
		var actions []CodeAction
		require.NoError(t, json.Unmarshal(response(t, msgs, 3).Result, &actions))
		require.Len(t, actions, 1)
		assert.Equal(t, CodeActionKindFixAllPrimer, actions[0].Kind)
		assert.Equal(t, systemPropsFixed, actions[0].Edit.Changes[uri][0].NewText)
	})

	t.Run("errors", func(t *testing.T) {
		unknown := response(t, msgs, 4)
		require.NotNil(t, unknown.Error)
		assert.Equal(t, codeMethodNotFound, unknown.Error.Code)

		shutdown := response(t, msgs, 5)
		assert.Nil(t, shutdown.Error)
		assert.Equal(t, "null", string(shutdown.Result))

		late := response(t, msgs, 6)
		require.NotNil(t, late.Error)
		assert.Equal(t, codeInvalidRequest, late.Error.Code)
	})
}

func TestServer_Run(t *testing.T) {
	tests := []struct {
		name    string
		frames  []string
		wantErr error
	}{
		{
			name: "end of input",
		},
		{
			name:   "exit after shutdown",
			frames: []string{frame(t, 1, "shutdown", nil), frame(t, 0, "exit", nil)},
		},
		{
			name:    "exit without shutdown",
			frames:  []string{frame(t, 0, "exit", nil)},
			wantErr: ErrExitWithoutShutdown,
		},
		{
			name:   "malformed message is skipped",
			frames: []string{"Content-Length: 5\r\n\r\n{nope", frame(t, 1, "shutdown", nil), frame(t, 0, "exit", nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runSession(t, tt.frames...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestServer_InvalidParams(t *testing.T) {
	msgs, err := runSession(t, frame(t, 2, "textDocument/hover", []int{1}))
	require.NoError(t, err)

	resp := response(t, msgs, 2)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeInvalidParams, resp.Error.Code)
}

func TestServer_ConfigReload(t *testing.T) {
	s, out, dir := newTestServer(t, "lint:\n  only: [no-such-rule]\n")
	cfgPath := filepath.Join(dir, "primerlint.yaml")

	s.lintMu.RLock()
	require.Error(t, s.configErr)
	s.lintMu.RUnlock()

	// The defaults still lint the document
	doc := openDocument(s, dir, "src/Save.tsx", systemPropsSource)
	s.publishDiagnostics(doc.URI)

	s.reportConfigError()
	warnings := notifications[ShowMessageParams](t, readMessages(t, out), "window/showMessage")
	require.Len(t, warnings, 1)
	assert.Equal(t, MessageTypeWarning, warnings[0].Type)
	assert.Contains(t, warnings[0].Message, "no-such-rule")

	// Saving a fixed config disables the rule and relints open documents
	require.NoError(t, os.WriteFile(cfgPath, []byte("lint:\n  disabled: [no-system-props]\n"), 0o644))
	out.Reset()

	params, err := json.Marshal(DidSaveTextDocumentParams{TextDocument: TextDocumentIdentifier{URI: PathToURI(cfgPath)}})
	require.NoError(t, err)
	require.NoError(t, s.handleMessage(&JSONRPCMessage{JSONRPC: "2.0", Method: "textDocument/didSave", Params: params}))

	s.lintMu.RLock()
	assert.NoError(t, s.configErr)
	s.lintMu.RUnlock()

	msgs := readMessages(t, out)
	assert.Empty(t, notifications[ShowMessageParams](t, msgs, "window/showMessage"))
	published := notifications[PublishDiagnosticsParams](t, msgs, "textDocument/publishDiagnostics")
	require.Len(t, published, 1)
	assert.Empty(t, published[0].Diagnostics)
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, isConfigFile(filepath.Join("project", "primerlint.yaml")))
	assert.True(t, isConfigFile(".primerlint.yml"))
	assert.False(t, isConfigFile(filepath.Join("src", "primerlint.tsx")))
}
