package lint

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// RuleType classifies what a rule reports.
type RuleType string

// Rule types.
const (
	// TypeProblem marks code that is wrong or inaccessible.
	TypeProblem RuleType = "problem"
	// TypeSuggestion marks code that works but should be migrated.
	TypeSuggestion RuleType = "suggestion"
)

// OptionType is the value type of a rule option.
type OptionType string

// Option types.
const (
	OptionBool   OptionType = "bool"
	OptionString OptionType = "string"
	OptionInt    OptionType = "int"
	OptionList   OptionType = "list"
)

// OptionDef declares one configuration option a rule accepts.
type OptionDef struct {
	Name        string     `json:"name"`
	Type        OptionType `json:"type"`
	Default     any        `json:"default"`
	Enum        []string   `json:"enum,omitempty"` // allowed values for string options
	Description string     `json:"description"`
}

// Visitor maps node kinds to callbacks. Enter runs before a node's
// children are visited, Exit after.
type Visitor struct {
	Enter map[jsx.Kind]func(jsx.Node)
	Exit  map[jsx.Kind]func(jsx.Node)
}

// RuleDef is a data-driven rule definition.
// Create is called once per file and returns the visitor for that file;
// per-file state lives in its closure.
type RuleDef struct {
	ID          string            // Unique identifier, e.g., "no-system-props"
	Group       string            // Category, e.g., "a11y", "migration"
	Description string            // Human-readable description
	Type        RuleType          // problem or suggestion
	Fixable     bool              // whether the rule may attach fixes
	Severity    Severity          // Default severity
	Messages    map[string]string // message templates keyed by message ID
	Options     []OptionDef       // Options this rule accepts
	Create      func(ctx *Context) Visitor

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
}

// ErrInvalidRule reports a rule definition that cannot be registered.
var ErrInvalidRule = errors.New("invalid rule definition")

// Validate checks the definition is usable.
func (r RuleDef) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRule)
	}
	if r.Create == nil {
		return fmt.Errorf("%w: %s: missing Create", ErrInvalidRule, r.ID)
	}
	for _, o := range r.Options {
		if o.Name == "" {
			return fmt.Errorf("%w: %s: option without name", ErrInvalidRule, r.ID)
		}
	}
	return nil
}

// Option returns the option definition with the given name.
func (r RuleDef) Option(name string) (OptionDef, bool) {
	for _, o := range r.Options {
		if o.Name == name {
			return o, true
		}
	}
	return OptionDef{}, false
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID              string      `json:"id"`
	Group           string      `json:"group"`
	Description     string      `json:"description"`
	Type            RuleType    `json:"type"`
	Fixable         bool        `json:"fixable"`
	DefaultSeverity Severity    `json:"default_severity"`
	Options         []OptionDef `json:"options,omitempty"`
	Messages        []string    `json:"messages,omitempty"`
	DocURL          string      `json:"doc_url"`

	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
}

// Info extracts documentation metadata from the rule.
func (r RuleDef) Info() RuleInfo {
	msgs := make([]string, 0, len(r.Messages))
	for id := range r.Messages {
		msgs = append(msgs, id)
	}
	sort.Strings(msgs)

	return RuleInfo{
		ID:              r.ID,
		Group:           r.Group,
		Description:     r.Description,
		Type:            r.Type,
		Fixable:         r.Fixable,
		DefaultSeverity: r.Severity,
		Options:         r.Options,
		Messages:        msgs,
		DocURL:          BuildDocURL(r.ID),
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
	}
}
