package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidParams(msg, err)
	}

	actions := s.getCodeActions(params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions returns a quick fix for every requested diagnostic that
// carries one, and a fix-all action when the document has any fix.
func (s *Server) getCodeActions(params CodeActionParams) []CodeAction {
	actions := []CodeAction{}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return actions
	}
	res := s.lintResult(doc)
	if res == nil {
		return actions
	}

	if wantsKind(params.Context.Only, CodeActionKindQuickFix) {
		for _, diag := range params.Context.Diagnostics {
			if d, ok := findLintDiagnostic(doc, res.diags, diag); ok {
				actions = append(actions, quickFix(doc, d, diag))
			}
		}
	}

	if wantsKind(params.Context.Only, CodeActionKindFixAllPrimer) && len(lint.Fixes(res.diags)) > 0 {
		if action, ok := s.fixAllAction(doc); ok {
			actions = append(actions, action)
		}
	}

	return actions
}

// wantsKind reports whether a request restricted to only accepts kind.
// An empty restriction accepts every kind.
func wantsKind(only []CodeActionKind, kind CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, k := range only {
		if k.Includes(kind) {
			return true
		}
	}
	return false
}

// findLintDiagnostic returns the fixable lint diagnostic the client's
// diagnostic was published for.
func findLintDiagnostic(doc *Document, diags []lint.Diagnostic, diag Diagnostic) (lint.Diagnostic, bool) {
	if diag.Source != diagnosticSource {
		return lint.Diagnostic{}, false
	}
	for _, d := range diags {
		if d.Fix == nil || d.RuleID != diag.Code {
			continue
		}
		if doc.RangeOf(d.Span.Start, d.Span.End) == diag.Range {
			return d, true
		}
	}
	return lint.Diagnostic{}, false
}

func quickFix(doc *Document, d lint.Diagnostic, diag Diagnostic) CodeAction {
	title := d.Fix.Description
	if title == "" {
		title = "Fix " + d.RuleID
	}
	return CodeAction{
		Title:       title,
		Kind:        CodeActionKindQuickFix,
		Diagnostics: []Diagnostic{diag},
		IsPreferred: true,
		Edit: &WorkspaceEdit{
			Changes: map[string][]TextEdit{
				doc.URI: convertTextEdits(doc, d.Fix.Edits),
			},
		},
	}
}

// fixAllAction applies every fix of the document until the fixes settle
// and replaces the whole document with the result.
func (s *Server) fixAllAction(doc *Document) (CodeAction, bool) {
	s.lintMu.RLock()
	fixer := s.fixer
	s.lintMu.RUnlock()

	res, err := fixer.LintSource(context.Background(), URIToPath(doc.URI), []byte(doc.Content))
	if err != nil {
		s.logger.Warn("Fix all failed", "uri", doc.URI, "error", err)
		return CodeAction{}, false
	}
	if !res.Changed() {
		return CodeAction{}, false
	}

	return CodeAction{
		Title: fmt.Sprintf("Fix all %s problems (%d %s)", diagnosticSource, res.Applied, plural(res.Applied, "fix", "fixes")),
		Kind:  CodeActionKindFixAllPrimer,
		Edit: &WorkspaceEdit{
			Changes: map[string][]TextEdit{
				doc.URI: {{
					Range:   doc.RangeOf(0, len(doc.Content)),
					NewText: string(res.Output),
				}},
			},
		},
	}, true
}

// convertTextEdits converts fix edits to LSP text edits.
func convertTextEdits(doc *Document, edits []fix.TextEdit) []TextEdit {
	result := make([]TextEdit, len(edits))
	for i, edit := range edits {
		result[i] = TextEdit{
			Range:   doc.RangeOf(edit.Span.Start, edit.Span.End),
			NewText: edit.NewText,
		}
	}
	return result
}

// getHover describes the diagnostics under the cursor.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}
	res := s.lintResult(doc)
	if res == nil {
		return nil
	}

	var (
		sections []string
		first    *Range
	)
	for _, d := range res.diags {
		r := doc.RangeOf(d.Span.Start, d.Span.End)
		if !r.Contains(params.Position) {
			continue
		}
		if first == nil {
			first = &r
		}
		sections = append(sections, describeDiagnostic(d))
	}
	if len(sections) == 0 {
		return nil
	}

	return &Hover{
		Contents: MarkupContent{
			Kind:  MarkupKindMarkdown,
			Value: strings.Join(sections, "\n\n---\n\n"),
		},
		Range: first,
	}
}

func describeDiagnostic(d lint.Diagnostic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** (%s)\n\n%s", d.RuleID, d.Severity, d.Message)
	if rule, ok := lint.GetByID(d.RuleID); ok && rule.Description != "" {
		fmt.Fprintf(&sb, "\n\n%s", rule.Description)
	}
	if d.Fixable() {
		sb.WriteString("\n\nA quick fix is available.")
	}
	url := d.DocumentationURL
	if url == "" {
		url = lint.BuildDocURL(d.RuleID)
	}
	fmt.Fprintf(&sb, "\n\n[Documentation](%s)", url)
	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
