package lint

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/leapstack-labs/primerlint/pkg/catalog"
	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// ErrUnknownMessage reports a Report call naming a message the rule does
// not declare.
var ErrUnknownMessage = errors.New("unknown message id")

// Descriptor is what a rule passes to Report.
type Descriptor struct {
	// Node anchors the diagnostic. When nil, Span is used.
	Node jsx.Node
	Span jsx.Span

	// MessageID selects a template from RuleDef.Messages. Message is used
	// verbatim when MessageID is empty.
	MessageID string
	Message   string
	Data      map[string]string

	// Fix returns the edits for this diagnostic. Returning nil abstains;
	// the diagnostic is still reported.
	Fix func() []fix.TextEdit
}

// sink collects diagnostics of every rule in visit order.
type sink struct {
	diags []Diagnostic
	err   error
}

// Context is a rule's view of the file being linted.
type Context struct {
	file     *jsx.File
	rule     *RuleDef
	severity Severity
	options  Options
	catalog  *catalog.Catalog
	out      *sink
}

// File returns the file being linted.
func (c *Context) File() *jsx.File { return c.file }

// RuleID returns the ID of the running rule.
func (c *Context) RuleID() string { return c.rule.ID }

// Catalog returns the data tables.
func (c *Context) Catalog() *catalog.Catalog { return c.catalog }

// Scope returns the innermost scope in which n is evaluated.
func (c *Context) Scope(n jsx.Node) *jsx.Scope { return c.file.ScopeOf(n) }

// Source returns the file's source text.
func (c *Context) Source() []byte { return c.file.Source }

// Text returns the source text of n.
func (c *Context) Text(n jsx.Node) string {
	if jsx.IsNil(n) {
		return ""
	}
	return c.file.Text(n.Span())
}

// TextSpan returns the source text in sp.
func (c *Context) TextSpan(sp jsx.Span) string { return c.file.Text(sp) }

// Options returns the resolved options of the running rule.
func (c *Context) Options() Options { return c.options }

// GetBoolOption returns a bool option, falling back to its declared default.
func (c *Context) GetBoolOption(key string) bool {
	return c.options.Bool(key, false)
}

// GetStringOption returns a string option, falling back to its declared default.
func (c *Context) GetStringOption(key string) string {
	return c.options.String(key, "")
}

// Report records a diagnostic. Once the file has failed, further reports
// are ignored.
func (c *Context) Report(d Descriptor) {
	if c.out.err != nil {
		return
	}

	msg := d.Message
	if d.MessageID != "" {
		tmpl, ok := c.rule.Messages[d.MessageID]
		if !ok {
			c.fail(fmt.Errorf("%w: rule %s: %q", ErrUnknownMessage, c.rule.ID, d.MessageID))
			return
		}
		msg = Interpolate(tmpl, d.Data)
	}

	sp := d.Span
	if !jsx.IsNil(d.Node) {
		sp = d.Node.Span()
	}

	diag := Diagnostic{
		RuleID:           c.rule.ID,
		Severity:         c.severity,
		MessageID:        d.MessageID,
		Message:          msg,
		Data:             d.Data,
		Span:             sp,
		Pos:              c.file.Position(sp.Start),
		EndPos:           c.file.Position(sp.End),
		DocumentationURL: BuildDocURL(c.rule.ID),
	}

	if d.Fix != nil {
		f, err := fix.Compute(len(c.file.Source), d.Fix()...)
		if err != nil {
			c.fail(fmt.Errorf("rule %s at %s: %w", c.rule.ID, diag.Pos, err))
			return
		}
		if f != nil {
			f.Description = msg
		}
		diag.Fix = f
	}

	c.out.diags = append(c.out.diags, diag)
}

func (c *Context) fail(err error) {
	if c.out.err == nil {
		c.out.err = err
	}
}

var placeholder = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)

// Interpolate replaces {{ key }} placeholders with values from data.
// Unknown keys are left as written.
func Interpolate(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := data[key]; ok {
			return v
		}
		return m
	})
}
