// Package catalog holds the static data tables rules consult: deprecated
// color tokens, CSS variable renames, slot parent maps, styled-system
// props, deprecated component props, promoted components and deep import
// paths.
//
// The tables ship as YAML embedded in the binary and are validated when
// loaded. A Catalog is immutable once built and safe for concurrent use.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrMalformedEntry reports a catalog entry with no valid replacement shape.
var ErrMalformedEntry = errors.New("malformed catalog entry")

// File names inside a catalog directory.
const (
	ColorsFile      = "colors.yaml"
	CSSVarsFile     = "css_vars.yaml"
	SlotsFile       = "slots.yaml"
	SystemPropsFile = "system_props.yaml"
	PromotionsFile  = "promotions.yaml"
	DeepImportsFile = "deep_imports.yaml"
	PropsFile       = "deprecated_props.yaml"
)

// PropChange is what happened to a deprecated component prop: renamed to
// Rename, or removed without replacement.
type PropChange struct {
	Rename string `yaml:"rename"`
	Remove bool   `yaml:"remove"`
}

// Promotion lists components that moved from one entrypoint to another.
type Promotion struct {
	From  string   `yaml:"from"`
	To    string   `yaml:"to"`
	Names []string `yaml:"names"`
}

// Export describes where a binding of a deep import path is published now.
type Export struct {
	Name     string `yaml:"name"`     // binding at the deep path, "default" for default imports
	From     string `yaml:"from"`     // new module
	Imported string `yaml:"imported"` // exported name at the new module when it differs
	Type     bool   `yaml:"type"`     // type-only export
}

// ExportedName returns the name to import from the new module.
func (e Export) ExportedName() string {
	if e.Imported != "" {
		return e.Imported
	}
	return e.Name
}

type systemPropsFile struct {
	Props             []string            `yaml:"props"`
	UtilityComponents []string            `yaml:"utility_components"`
	Excluded          map[string][]string `yaml:"excluded"`
}

// Catalog is the set of loaded tables.
type Catalog struct {
	colors      map[string][]string
	cssVars     map[string]string
	slots       map[string][]string
	systemProps map[string]bool
	utility     map[string]bool
	excluded    map[string]map[string]bool
	promotions  []Promotion
	deepImports map[string][]Export
	props       map[string]map[string]PropChange
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. The embedded tables are trusted;
// a malformed entry is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(dataFS, "data")
		if err != nil {
			panic(err)
		}
		c, err := Load(sub)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load reads and validates every table file from fsys. Missing files
// yield empty tables.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		colors:      make(map[string][]string),
		cssVars:     make(map[string]string),
		slots:       make(map[string][]string),
		systemProps: make(map[string]bool),
		utility:     make(map[string]bool),
		excluded:    make(map[string]map[string]bool),
		deepImports: make(map[string][]Export),
		props:       make(map[string]map[string]PropChange),
	}

	var colors map[string]Replacements
	if err := decodeFile(fsys, ColorsFile, &colors); err != nil {
		return nil, err
	}
	for token, repl := range colors {
		if token == "" || len(repl) == 0 || hasEmpty(repl) {
			return nil, malformed(ColorsFile, token, "expected a token or a list of tokens")
		}
		c.colors[token] = repl
	}

	var cssVars map[string]string
	if err := decodeFile(fsys, CSSVarsFile, &cssVars); err != nil {
		return nil, err
	}
	for from, to := range cssVars {
		if !strings.HasPrefix(from, "--") || !strings.HasPrefix(to, "--") {
			return nil, malformed(CSSVarsFile, from, "variables must start with --")
		}
		c.cssVars[from] = to
	}

	var slots map[string][]string
	if err := decodeFile(fsys, SlotsFile, &slots); err != nil {
		return nil, err
	}
	for child, parents := range slots {
		if len(parents) == 0 || hasEmpty(parents) {
			return nil, malformed(SlotsFile, child, "expected at least one parent")
		}
		c.slots[child] = parents
	}

	var sp systemPropsFile
	if err := decodeFile(fsys, SystemPropsFile, &sp); err != nil {
		return nil, err
	}
	for _, p := range sp.Props {
		if p == "" {
			return nil, malformed(SystemPropsFile, "props", "empty prop name")
		}
		c.systemProps[p] = true
	}
	for _, u := range sp.UtilityComponents {
		c.utility[u] = true
	}
	for comp, props := range sp.Excluded {
		set := make(map[string]bool, len(props))
		for _, p := range props {
			set[p] = true
		}
		c.excluded[comp] = set
	}

	if err := decodeFile(fsys, PromotionsFile, &c.promotions); err != nil {
		return nil, err
	}
	for i, p := range c.promotions {
		if p.From == "" || p.To == "" || len(p.Names) == 0 || p.From == p.To {
			return nil, malformed(PromotionsFile, fmt.Sprintf("#%d", i), "expected from, to and names")
		}
	}

	var deep map[string][]Export
	if err := decodeFile(fsys, DeepImportsFile, &deep); err != nil {
		return nil, err
	}
	for path, exports := range deep {
		if len(exports) == 0 {
			return nil, malformed(DeepImportsFile, path, "expected at least one export")
		}
		for _, e := range exports {
			if e.Name == "" || e.From == "" {
				return nil, malformed(DeepImportsFile, path, "export needs name and from")
			}
			if e.Name == "default" && e.Imported == "" {
				return nil, malformed(DeepImportsFile, path, "default export needs an imported name")
			}
		}
		c.deepImports[path] = exports
	}

	var props map[string]map[string]PropChange
	if err := decodeFile(fsys, PropsFile, &props); err != nil {
		return nil, err
	}
	for comp, changes := range props {
		if comp == "" || len(changes) == 0 {
			return nil, malformed(PropsFile, comp, "expected at least one prop")
		}
		for prop, ch := range changes {
			key := comp + "." + prop
			switch {
			case prop == "":
				return nil, malformed(PropsFile, key, "empty prop name")
			case ch.Remove == (ch.Rename != ""):
				return nil, malformed(PropsFile, key, "expected exactly one of rename or remove")
			case ch.Rename == prop:
				return nil, malformed(PropsFile, key, "renamed to itself")
			}
		}
		c.props[comp] = changes
	}

	return c, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, ErrMalformedEntry) {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%w: %s: %v", ErrMalformedEntry, name, err)
	}
	return nil
}

func malformed(file, key, msg string) error {
	return fmt.Errorf("%w: %s: %q: %s", ErrMalformedEntry, file, key, msg)
}

func hasEmpty(ss []string) bool {
	for _, s := range ss {
		if strings.TrimSpace(s) == "" {
			return true
		}
	}
	return false
}

// Replacements is one token or a list of candidate tokens.
type Replacements []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (r *Replacements) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*r = Replacements{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*r = list
		return nil
	default:
		return fmt.Errorf("%w: line %d: expected a string or a list", ErrMalformedEntry, value.Line)
	}
}

// ---------- Lookups ----------

// Color returns the replacements for a deprecated color token.
func (c *Catalog) Color(token string) ([]string, bool) {
	r, ok := c.colors[token]
	return r, ok
}

// CSSVar returns the replacement for a deprecated CSS variable name,
// including its leading dashes.
func (c *Catalog) CSSVar(name string) (string, bool) {
	r, ok := c.cssVars[name]
	return r, ok
}

// SlotParents returns the parents a slot component must be placed under.
func (c *Catalog) SlotParents(child string) ([]string, bool) {
	p, ok := c.slots[child]
	return p, ok
}

// IsSystemProp reports whether prop is a styled-system prop.
func (c *Catalog) IsSystemProp(prop string) bool {
	return c.systemProps[prop]
}

// IsUtilityComponent reports whether component only exists for styling.
func (c *Catalog) IsUtilityComponent(component string) bool {
	return c.utility[component]
}

// IsExcludedProp reports whether prop belongs to component's own API.
func (c *Catalog) IsExcludedProp(component, prop string) bool {
	return c.excluded[component][prop]
}

// Promotion returns the stable module for name imported from module.
func (c *Catalog) Promotion(module, name string) (string, bool) {
	for _, p := range c.promotions {
		if p.From != module {
			continue
		}
		for _, n := range p.Names {
			if n == name {
				return p.To, true
			}
		}
	}
	return "", false
}

// IsStagingModule reports whether any promotion starts at module.
func (c *Catalog) IsStagingModule(module string) bool {
	for _, p := range c.promotions {
		if p.From == module {
			return true
		}
	}
	return false
}

// DeepImport returns the export entry for name imported from path.
func (c *Catalog) DeepImport(path, name string) (Export, bool) {
	for _, e := range c.deepImports[path] {
		if e.Name == name {
			return e, true
		}
	}
	return Export{}, false
}

// IsDeepImportPath reports whether path is a known deep import path.
func (c *Catalog) IsDeepImportPath(path string) bool {
	_, ok := c.deepImports[path]
	return ok
}

// DeprecatedProp returns the change recorded for prop on component.
func (c *Catalog) DeprecatedProp(component, prop string) (PropChange, bool) {
	ch, ok := c.props[component][prop]
	return ch, ok
}

// Stats returns the number of entries per table, keyed by file name.
func (c *Catalog) Stats() map[string]int {
	return map[string]int{
		ColorsFile:      len(c.colors),
		CSSVarsFile:     len(c.cssVars),
		SlotsFile:       len(c.slots),
		SystemPropsFile: len(c.systemProps),
		PromotionsFile:  len(c.promotions),
		DeepImportsFile: len(c.deepImports),
		PropsFile:       len(c.props),
	}
}

// SlotChildren returns the slot component names in sorted order.
func (c *Catalog) SlotChildren() []string {
	out := make([]string, 0, len(c.slots))
	for k := range c.slots {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
