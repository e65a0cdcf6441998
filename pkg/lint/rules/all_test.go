package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/pkg/lint"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules"
)

func TestAllRulesRegistered(t *testing.T) {
	want := []string{
		"a11y-explicit-heading",
		"a11y-link-in-text-block",
		"a11y-tooltip-interactive-trigger",
		"css-module-identifier-casing",
		"direct-slot-children",
		"new-css-color-vars",
		"no-deprecated-colors",
		"no-deprecated-props",
		"no-experimental-imports",
		"no-system-props",
		"no-unmerged-classname",
		"no-wildcard-imports",
	}

	all := lint.GetAll()
	ids := make([]string, len(all))
	for i, r := range all {
		ids[i] = r.ID
	}
	assert.Equal(t, want, ids)

	for _, r := range all {
		t.Run(r.ID, func(t *testing.T) {
			require.NoError(t, r.Validate())
			assert.NotEmpty(t, r.Messages)
			assert.NotEmpty(t, r.Description)
			assert.NotEmpty(t, r.BadExample)
		})
	}
}

func TestGroups(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"a11y", "deprecated", "imports", "migration", "structure", "style"},
		lint.Groups())
}
