package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/primerlint/pkg/lint/linttest"
	"github.com/leapstack-labs/primerlint/pkg/lint/rules/style"
)

const stylesImport = "import classes from './Button.module.css'\n"

func TestCSSModuleIdentifierCasing(t *testing.T) {
	linttest.Run(t, style.CSSModuleIdentifierCasing, linttest.Cases{
		Valid: []linttest.Valid{
			{Name: "pascal identifier", Code: stylesImport + `const x = <div className={classes.PrimaryButton} />`},
			{Name: "camel when configured", Code: stylesImport + `const x = <div className={classes.primaryButton} />`, Options: map[string]any{"casing": "camel"}},
			{Name: "not a css module", Code: "import classes from './classes'\n" + `const x = <div className={classes['primary-button']} />`},
			{Name: "plain css import", Code: "import classes from './Button.css'\n" + `const x = classes.primary_button`},
			{Name: "shadowed binding", Code: stylesImport + `function A(classes) { return classes.foo }`},
		},
		Invalid: []linttest.Invalid{
			{
				Name: "wrong case",
				Code: stylesImport + `const x = <div className={classes.primaryButton} />`,
				Errors: []linttest.Error{{
					MessageID: "bad",
					Message:   "Class names should be in pascal case. Use 'PrimaryButton' instead of 'primaryButton'.",
					Line:      2,
					Fixable:   linttest.Bool(false),
				}},
				Remaining: 1,
			},
			{
				Name: "string key",
				Code: stylesImport + `const x = <div className={classes['primary-button']} />`,
				Errors: []linttest.Error{{
					MessageID: "noneIdentifier",
					Message:   "Class names should be read as identifiers. Use classes.PrimaryButton instead of classes['primary-button'].",
				}},
				Remaining: 1,
			},
			{
				Name:      "dynamic key",
				Code:      stylesImport + `const x = <div className={classes[variant]} />`,
				Errors:    []linttest.Error{{MessageID: "dynamic", Data: map[string]string{"object": "classes"}}},
				Remaining: 1,
			},
			{
				Name:      "namespace import with camel casing",
				Code:      "import * as styles from './Box.module.css'\n" + `const x = styles.Box_inner`,
				Options:   map[string]any{"casing": "camel"},
				Errors:    []linttest.Error{{Data: map[string]string{"suggestion": "boxInner"}}},
				Remaining: 1,
			},
		},
	})
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		casing string
		want   string
	}{
		{"primary-button", "pascal", "PrimaryButton"},
		{"fooBar", "pascal", "FooBar"},
		{"FooBar", "camel", "fooBar"},
		{"foo_bar2", "camel", "fooBar2"},
		{"Box_inner", "camel", "boxInner"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.casing, func(t *testing.T) {
			assert.Equal(t, tt.want, style.Suggest(tt.name, tt.casing))
		})
	}
}
