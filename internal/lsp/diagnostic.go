package lsp

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/jsx/parser"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

const (
	// diagnosticSource is the source shown next to every diagnostic.
	diagnosticSource = "primerlint"

	// parseErrorCode is the code of the diagnostic reported for
	// documents that do not parse.
	parseErrorCode = "parse-error"
)

// documentLint holds the lint diagnostics of one document version.
type documentLint struct {
	version int
	diags   []lint.Diagnostic
}

// publishDiagnostics lints the document and publishes the result.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: s.lintDocument(doc),
	})
}

// lintDocument parses and lints doc. Documents the project does not
// select get no diagnostics; a parse failure yields a single error.
func (s *Server) lintDocument(doc *Document) []Diagnostic {
	s.forget(doc.URI)

	path := URIToPath(doc.URI)
	if !s.selects(path) {
		return []Diagnostic{}
	}

	s.lintMu.RLock()
	analyzer, threshold := s.analyzer, s.threshold
	s.lintMu.RUnlock()

	file, err := parser.Parse(context.Background(), path, []byte(doc.Content))
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			return []Diagnostic{parseErrorDiagnostic(doc, perr)}
		}
		s.logger.Warn("Failed to parse document", "uri", doc.URI, "error", err)
		return []Diagnostic{}
	}

	diags, err := analyzer.Analyze(file)
	if err != nil {
		s.logger.Error("Lint failed", "uri", doc.URI, "error", err)
		return []Diagnostic{}
	}

	kept := diags[:0]
	for _, d := range diags {
		if d.Severity.AtLeast(threshold) {
			kept = append(kept, d)
		}
	}
	lint.SortDiagnostics(kept)

	// Cache the lint diagnostics for code actions and hover
	s.remember(doc.URI, doc.Version, kept)

	result := make([]Diagnostic, 0, len(kept))
	for _, d := range kept {
		result = append(result, toLSPDiagnostic(doc, d))
	}
	return result
}

// selects reports whether path is linted. Files inside the project follow
// its include and exclude patterns; files outside it only need a
// supported extension.
func (s *Server) selects(path string) bool {
	if !parser.Supports(path) {
		return false
	}

	s.lintMu.RLock()
	root, discovery := s.projectRoot, s.discovery
	s.lintMu.RUnlock()

	if root == "" {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	return discovery.Selects(filepath.ToSlash(rel))
}

// toLSPDiagnostic converts a lint diagnostic to an LSP diagnostic.
func toLSPDiagnostic(doc *Document, d lint.Diagnostic) Diagnostic {
	diag := Diagnostic{
		Range:    doc.RangeOf(d.Span.Start, d.Span.End),
		Severity: toLSPSeverity(d.Severity),
		Code:     d.RuleID,
		Source:   diagnosticSource,
		Message:  d.Message,
	}

	// Add documentation URL if available
	if d.DocumentationURL != "" {
		diag.CodeDescription = &CodeDescription{Href: d.DocumentationURL}
	} else {
		diag.CodeDescription = &CodeDescription{Href: lint.BuildDocURL(d.RuleID)}
	}
	return diag
}

func parseErrorDiagnostic(doc *Document, perr *parser.ParseError) Diagnostic {
	start := perr.Pos.Offset
	end := start
	if end < len(doc.Content) {
		end++
	}
	return Diagnostic{
		Range:    doc.RangeOf(start, end),
		Severity: DiagnosticSeverityError,
		Code:     parseErrorCode,
		Source:   diagnosticSource,
		Message:  perr.Message,
	}
}

// toLSPSeverity converts lint.Severity to LSP DiagnosticSeverity.
func toLSPSeverity(s lint.Severity) DiagnosticSeverity {
	switch s {
	case lint.SeverityError:
		return DiagnosticSeverityError
	case lint.SeverityWarning:
		return DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return DiagnosticSeverityInformation
	case lint.SeverityHint:
		return DiagnosticSeverityHint
	default:
		return DiagnosticSeverityWarning
	}
}

func (s *Server) remember(uri string, version int, diags []lint.Diagnostic) {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	s.results[uri] = &documentLint{version: version, diags: diags}
}

func (s *Server) forget(uri string) {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	delete(s.results, uri)
}

// lintResult returns the cached diagnostics of doc, or nil when they are
// missing or belong to another version.
func (s *Server) lintResult(doc *Document) *documentLint {
	s.resultsMu.RLock()
	defer s.resultsMu.RUnlock()

	res := s.results[doc.URI]
	if res == nil || res.version != doc.Version {
		return nil
	}
	return res
}
