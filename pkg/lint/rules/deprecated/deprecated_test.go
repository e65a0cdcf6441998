package deprecated_test

import (
	"testing"

	"github.com/leapstack-labs/primerlint/pkg/lint/linttest"
	"github.com/leapstack-labs/primerlint/pkg/lint/rules/deprecated"
)

const imports = "import {Box, Text, themeGet} from '@primer/react'\n"

func TestNoDeprecatedColors(t *testing.T) {
	linttest.Run(t, deprecated.NoDeprecatedColors, linttest.Cases{
		Valid: []linttest.Valid{
			{Name: "functional color", Code: imports + `const x = <Text color="fg.default" />`},
			{Name: "non color prop", Code: imports + `const x = <Text title="text.primary" />`},
			{Name: "not imported", Code: `const x = <Text color="text.primary" />`},
			{Name: "sx non color key", Code: imports + `const x = <Box sx={{content: 'text.primary'}} />`},
			{Name: "local themeGet", Code: `const themeGet = (p) => p; const c = themeGet('colors.text.primary')`},
		},
		Invalid: []linttest.Invalid{
			{
				Name: "color prop",
				Code: imports + `const x = <Text color="text.primary" />`,
				Errors: []linttest.Error{{
					MessageID: "deprecatedColor",
					Message:   "'text.primary' is deprecated. Use 'fg.default' instead.",
					Fixable:   linttest.Bool(true),
				}},
				Output: imports + `const x = <Text color="fg.default" />`,
			},
			{
				Name:   "expression value keeps single quotes",
				Code:   imports + `const x = <Box bg={'bg.canvas'} />`,
				Errors: []linttest.Error{{Data: map[string]string{"replacement": "canvas.default"}}},
				Output: imports + `const x = <Box bg={'canvas.default'} />`,
			},
			{
				Name:   "sx values",
				Code:   imports + `const x = <Box sx={{color: 'text.secondary', ':hover': {borderColor: "border.primary"}}} />`,
				Errors: []linttest.Error{{MessageID: "deprecatedColor"}, {MessageID: "deprecatedColor"}},
				Output: imports + `const x = <Box sx={{color: 'fg.muted', ':hover': {borderColor: "border.default"}}} />`,
			},
			{
				Name:   "themeGet path",
				Code:   imports + `const c = themeGet('colors.text.link')`,
				Errors: []linttest.Error{{Data: map[string]string{"name": "text.link"}}},
				Output: imports + `const c = themeGet('colors.accent.fg')`,
			},
			{
				Name: "several replacements",
				Code: imports + `const x = <Box borderColor="fade.fg10" />`,
				Errors: []linttest.Error{{
					MessageID: "deprecatedColorChoice",
					Data:      map[string]string{"replacements": "neutral.subtle, border.subtle"},
					Fixable:   linttest.Bool(false),
				}},
				Remaining: 1,
			},
			{
				Name:    "all strings",
				Code:    imports + `const x = <Box title="text.primary" />`,
				Options: map[string]any{"checkAllStrings": true},
				Errors:  []linttest.Error{{MessageID: "deprecatedColor"}},
				Output:  imports + `const x = <Box title="fg.default" />`,
			},
			{
				Name:    "skip import check",
				Code:    `const x = <Text color="text.primary" />`,
				Options: map[string]any{"skipImportCheck": true},
				Errors:  []linttest.Error{{MessageID: "deprecatedColor"}},
				Output:  `const x = <Text color="fg.default" />`,
			},
		},
	})
}

func TestNewCSSColorVars(t *testing.T) {
	linttest.Run(t, deprecated.NewCSSColorVars, linttest.Cases{
		Valid: []linttest.Valid{
			{Name: "new variable", Code: `const x = <Box sx={{color: 'var(--fgColor-muted)'}} />`},
			{Name: "already has fallback", Code: `const x = <Box sx={{color: 'var(--fgColor-muted, var(--color-fg-muted))'}} />`},
			{Name: "outside jsx", Code: `const c = 'var(--color-fg-muted)'`},
			{Name: "unknown variable", Code: `const x = <Box sx={{color: 'var(--color-made-up)'}} />`},
		},
		Invalid: []linttest.Invalid{
			{
				Name: "string literal",
				Code: `const x = <Box sx={{color: 'var(--color-fg-muted)'}} />`,
				Errors: []linttest.Error{{
					MessageID: "cssVarDeprecated",
					Message:   "Replace var(--color-fg-muted) with var(--fgColor-muted, var(--color-fg-muted))",
					Fixable:   linttest.Bool(true),
				}},
				Output: `const x = <Box sx={{color: 'var(--fgColor-muted, var(--color-fg-muted))'}} />`,
			},
			{
				Name:   "attribute string",
				Code:   `const x = <div style="color: var(--color-fg-default)" />`,
				Errors: []linttest.Error{{Data: map[string]string{"replacement": "--fgColor-default"}}},
				Output: `const x = <div style="color: var(--fgColor-default, var(--color-fg-default))" />`,
			},
			{
				Name:   "several in one literal",
				Code:   `const x = <Box sx={{border: '1px solid var(--color-fg-muted)', boxShadow: '0 0 var(--color-accent-fg), 0 1px var(--color-danger-fg)'}} />`,
				Errors: []linttest.Error{{}, {Data: map[string]string{"deprecated": "--color-accent-fg"}}, {Data: map[string]string{"deprecated": "--color-danger-fg"}}},
				Output: `const x = <Box sx={{border: '1px solid var(--fgColor-muted, var(--color-fg-muted))', boxShadow: '0 0 var(--fgColor-accent, var(--color-accent-fg)), 0 1px var(--fgColor-danger, var(--color-danger-fg))'}} />`,
			},
			{
				Name:   "template literal",
				Code:   "const x = <Box sx={{color: `var(--color-fg-muted)`}} />",
				Errors: []linttest.Error{{Fixable: linttest.Bool(true)}},
				Output: "const x = <Box sx={{color: `var(--fgColor-muted, var(--color-fg-muted))`}} />",
			},
			{
				Name:      "dynamic value is diagnosed only",
				Code:      `const x = <Box sx={{color: active ? 'var(--color-fg-muted)' : 'inherit'}} />`,
				Errors:    []linttest.Error{{Fixable: linttest.Bool(false)}},
				Remaining: 1,
			},
		},
	})
}

func TestNoDeprecatedProps(t *testing.T) {
	const primer = "import {Button, Tooltip, ActionMenu, Text} from '@primer/react'\n"

	linttest.Run(t, deprecated.NoDeprecatedProps, linttest.Cases{
		Valid: []linttest.Valid{
			{Name: "current prop", Code: primer + `const x = <Button leadingVisual={SearchIcon}>Search</Button>`},
			{Name: "prop of another component", Code: primer + `const x = <Text wrap>t</Text>`},
			{Name: "not imported", Code: `const x = <Button leadingIcon={SearchIcon}>Search</Button>`},
			{Name: "host element", Code: primer + `const x = <input contrast />`},
		},
		Invalid: []linttest.Invalid{
			{
				Name: "renamed prop",
				Code: primer + `const x = <Button leadingIcon={SearchIcon}>Search</Button>`,
				Errors: []linttest.Error{{
					MessageID: "propRenamed",
					Message:   "The leadingIcon prop of Button is deprecated. Use leadingVisual instead.",
					Line:      2,
					Fixable:   linttest.Bool(true),
				}},
				Output: primer + `const x = <Button leadingVisual={SearchIcon}>Search</Button>`,
			},
			{
				Name: "removed props",
				Code: primer + `const x = <Tooltip text="t" noDelay wrap={true}><button /></Tooltip>`,
				Errors: []linttest.Error{
					{MessageID: "propRemoved", Data: map[string]string{"prop": "noDelay"}, Fixable: linttest.Bool(true)},
					{MessageID: "propRemoved", Data: map[string]string{"prop": "wrap"}, Fixable: linttest.Bool(true)},
				},
				Output: primer + `const x = <Tooltip text="t"><button /></Tooltip>`,
			},
			{
				Name:   "aliased import",
				Code:   "import {Button as B} from '@primer/react'\n" + `const x = <B trailingIcon={X} />`,
				Errors: []linttest.Error{{Data: map[string]string{"componentName": "Button", "replacement": "trailingVisual"}}},
				Output: "import {Button as B} from '@primer/react'\n" + `const x = <B trailingVisual={X} />`,
			},
			{
				Name:   "member component",
				Code:   primer + `const x = <ActionMenu.Button leadingIcon={X}>Open</ActionMenu.Button>`,
				Errors: []linttest.Error{{MessageID: "propRenamed"}},
				Output: primer + `const x = <ActionMenu.Button leadingVisual={X}>Open</ActionMenu.Button>`,
			},
			{
				Name:      "spread follows",
				Code:      primer + `const x = <Button leadingIcon={X} {...props} />`,
				Errors:    []linttest.Error{{MessageID: "propRenamed", Fixable: linttest.Bool(false)}},
				Remaining: 1,
			},
			{
				Name:   "spread before is fine",
				Code:   primer + `const x = <Button {...props} leadingIcon={X} />`,
				Errors: []linttest.Error{{Fixable: linttest.Bool(true)}},
				Output: primer + `const x = <Button {...props} leadingVisual={X} />`,
			},
			{
				Name:      "replacement already present",
				Code:      primer + `const x = <Button leadingIcon={X} leadingVisual={Y} />`,
				Errors:    []linttest.Error{{Fixable: linttest.Bool(false)}},
				Remaining: 1,
			},
			{
				Name:    "skip import check",
				Code:    `const x = <TextInput icon={SearchIcon} contrast />`,
				Options: map[string]any{"skipImportCheck": true},
				Errors: []linttest.Error{
					{MessageID: "propRenamed", Data: map[string]string{"replacement": "leadingVisual"}},
					{MessageID: "propRemoved"},
				},
				Output: `const x = <TextInput leadingVisual={SearchIcon} />`,
			},
		},
	})
}
