package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/internal/testutil"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

const (
	defaultConfig = "lint:\n  min_severity: hint\n"

	cleanSource = `import {Button} from '@primer/react'

export const Save = () => <Button variant="primary">Save</Button>
`
	systemPropsSource = `import {Button} from '@primer/react'

export const Save = () => <Button mr={2}>Save</Button>
`
	systemPropsFixed = `import {Button} from '@primer/react'

export const Save = () => <Button sx={{mr: 2}}>Save</Button>
`
)

// newTestServer returns a server configured for a temporary project with
// the given config file content.
func newTestServer(t *testing.T, configYAML string) (*Server, *bytes.Buffer, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "primerlint.yaml"), []byte(configYAML), 0o644))

	out := new(bytes.Buffer)
	s := NewServerWithLogger(strings.NewReader(""), out, testutil.NewTestLogger(t))
	s.configure(dir)
	return s, out, dir
}

// openDocument opens content as the file rel of the project.
func openDocument(s *Server, dir, rel, content string) *Document {
	uri := PathToURI(filepath.Join(dir, filepath.FromSlash(rel)))
	s.documents.Open(uri, content, 1)
	return s.documents.Get(uri)
}

// readMessages decodes every framed message written to out.
func readMessages(t *testing.T, out *bytes.Buffer) []*JSONRPCMessage {
	t.Helper()

	r := &Server{reader: bufio.NewReader(bytes.NewReader(out.Bytes()))}
	var msgs []*JSONRPCMessage
	for {
		msg, err := r.readMessage()
		if err != nil {
			break
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// notifications returns the params of every notification of method.
func notifications[T any](t *testing.T, msgs []*JSONRPCMessage, method string) []T {
	t.Helper()

	var out []T
	for _, msg := range msgs {
		if msg.Method != method || msg.ID != nil {
			continue
		}
		var params T
		require.NoError(t, json.Unmarshal(msg.Params, &params))
		out = append(out, params)
	}
	return out
}

func TestLintDocument(t *testing.T) {
	tests := []struct {
		name     string
		rel      string
		content  string
		wantCode []string
	}{
		{
			name:     "system props",
			rel:      "src/Save.tsx",
			content:  systemPropsSource,
			wantCode: []string{"no-system-props"},
		},
		{
			name:    "clean",
			rel:     "src/Clean.tsx",
			content: cleanSource,
		},
		{
			name:    "unsupported extension",
			rel:     "README.md",
			content: systemPropsSource,
		},
		{
			name:    "excluded by default patterns",
			rel:     "node_modules/@primer/react/index.js",
			content: systemPropsSource,
		},
		{
			name:    "hidden directory",
			rel:     ".storybook/preview.tsx",
			content: systemPropsSource,
		},
		{
			name:     "parse error",
			rel:      "src/Broken.tsx",
			content:  "const x = <div",
			wantCode: []string{parseErrorCode},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, dir := newTestServer(t, defaultConfig)
			doc := openDocument(s, dir, tt.rel, tt.content)

			diags := s.lintDocument(doc)
			require.NotNil(t, diags, "diagnostics are never null")

			codes := make([]string, 0, len(diags))
			for _, d := range diags {
				codes = append(codes, d.Code)
				assert.Equal(t, diagnosticSource, d.Source)
			}
			if len(tt.wantCode) == 0 {
				assert.Empty(t, codes)
			} else {
				assert.Equal(t, tt.wantCode, codes)
			}
		})
	}
}

func TestLintDocument_SystemProps(t *testing.T) {
	s, _, dir := newTestServer(t, defaultConfig)
	doc := openDocument(s, dir, "src/Save.tsx", systemPropsSource)

	diags := s.lintDocument(doc)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "no-system-props", d.Code)
	assert.Equal(t, DiagnosticSeverityWarning, d.Severity)
	assert.Equal(t, Position{Line: 2, Character: 26}, d.Range.Start)
	assert.Equal(t, "<Button mr={2}>", doc.GetTextInRange(d.Range))
	require.NotNil(t, d.CodeDescription)
	assert.Equal(t, lint.BuildDocURL("no-system-props"), d.CodeDescription.Href)

	res := s.lintResult(doc)
	require.NotNil(t, res, "diagnostics are cached for code actions")
	assert.Len(t, res.diags, 1)
}

func TestLintDocument_ParseError(t *testing.T) {
	s, _, dir := newTestServer(t, defaultConfig)
	doc := openDocument(s, dir, "src/Broken.tsx", "const x = <div")

	diags := s.lintDocument(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagnosticSeverityError, diags[0].Severity)
	assert.NotEmpty(t, diags[0].Message)
	assert.Nil(t, s.lintResult(doc), "nothing to fix in a broken document")
}

func TestLintDocument_Config(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   int
	}{
		{name: "defaults", config: defaultConfig, want: 1},
		{name: "threshold above warning", config: "lint:\n  min_severity: error\n", want: 0},
		{name: "rule disabled", config: "lint:\n  disabled: [no-system-props]\n", want: 0},
		{name: "severity raised", config: "lint:\n  severity:\n    no-system-props: error\n  min_severity: error\n", want: 1},
		{name: "excluded directory", config: "lint:\n  exclude: [\"src/**\"]\n", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, dir := newTestServer(t, tt.config)
			doc := openDocument(s, dir, "src/Save.tsx", systemPropsSource)
			assert.Len(t, s.lintDocument(doc), tt.want)
		})
	}
}

func TestLintDocument_OutsideProject(t *testing.T) {
	s, _, _ := newTestServer(t, defaultConfig)
	other := t.TempDir()
	doc := openDocument(s, other, "node_modules/pkg/Save.tsx", systemPropsSource)

	assert.Len(t, s.lintDocument(doc), 1, "project patterns do not apply outside the project")
}

func TestLintResult_Stale(t *testing.T) {
	s, _, dir := newTestServer(t, defaultConfig)
	doc := openDocument(s, dir, "src/Save.tsx", systemPropsSource)
	s.lintDocument(doc)
	require.NotNil(t, s.lintResult(doc))

	s.documents.Update(doc.URI, cleanSource, 2)
	assert.Nil(t, s.lintResult(s.documents.Get(doc.URI)), "results of older versions are not used")
}

func TestPublishDiagnostics(t *testing.T) {
	s, out, dir := newTestServer(t, defaultConfig)
	doc := openDocument(s, dir, "src/Save.tsx", systemPropsSource)

	s.publishDiagnostics(doc.URI)
	s.publishDiagnostics("file:///not/open.tsx")

	published := notifications[PublishDiagnosticsParams](t, readMessages(t, out), "textDocument/publishDiagnostics")
	require.Len(t, published, 1, "closed documents are not published")
	assert.Equal(t, doc.URI, published[0].URI)
	require.NotNil(t, published[0].Version)
	assert.Equal(t, 1, *published[0].Version)
	assert.Len(t, published[0].Diagnostics, 1)
}

func TestToLSPSeverity(t *testing.T) {
	tests := []struct {
		in   lint.Severity
		want DiagnosticSeverity
	}{
		{lint.SeverityError, DiagnosticSeverityError},
		{lint.SeverityWarning, DiagnosticSeverityWarning},
		{lint.SeverityInfo, DiagnosticSeverityInformation},
		{lint.SeverityHint, DiagnosticSeverityHint},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, toLSPSeverity(tt.in))
		})
	}
}
