package structure_test

import (
	"testing"

	"github.com/leapstack-labs/primerlint/pkg/lint/linttest"
	"github.com/leapstack-labs/primerlint/pkg/lint/rules/structure"
)

const imports = "import {ActionList, PageLayout, FormControl} from '@primer/react'\n"

func TestDirectSlotChildren(t *testing.T) {
	linttest.Run(t, structure.DirectSlotChildren, linttest.Cases{
		Valid: []linttest.Valid{
			{
				Name: "direct child",
				Code: imports + `const x = <PageLayout><PageLayout.Header>h</PageLayout.Header></PageLayout>`,
			},
			{
				Name: "any of several parents",
				Code: imports + `const x = <ActionList><ActionList.LinkItem><ActionList.LeadingVisual /></ActionList.LinkItem></ActionList>`,
			},
			{
				Name: "conditional rendering keeps the parent",
				Code: imports + `const x = <ActionList.Item>{show && <ActionList.LeadingVisual />}</ActionList.Item>`,
			},
			{
				Name: "siblings after a self-closing slot",
				Code: imports + `const x = <FormControl><FormControl.Label /><FormControl.Caption>c</FormControl.Caption></FormControl>`,
			},
			{
				Name: "not imported from primer",
				Code: `const x = <div><PageLayout.Header /></div>`,
			},
		},
		Invalid: []linttest.Invalid{
			{
				Name: "wrapped in a div",
				Code: imports + `const x = <PageLayout><div><PageLayout.Header>h</PageLayout.Header></div></PageLayout>`,
				Errors: []linttest.Error{{
					MessageID: "directSlotChildren",
					Message:   "PageLayout.Header must be a direct child of PageLayout.",
				}},
			},
			{
				Name: "parents joined",
				Code: imports + `const x = <ActionList><ActionList.LeadingVisual /></ActionList>`,
				Errors: []linttest.Error{{
					Data: map[string]string{"parentName": "ActionList.Item or ActionList.LinkItem"},
				}},
			},
			{
				Name: "top level slot",
				Code: imports + `const x = <FormControl.Label>l</FormControl.Label>`,
				Errors: []linttest.Error{{
					Data: map[string]string{"childName": "FormControl.Label", "parentName": "FormControl"},
				}},
			},
			{
				Name:    "skip import check",
				Code:    `const x = <div><PageLayout.Header /></div>`,
				Options: map[string]any{"skipImportCheck": true},
				Errors:  []linttest.Error{{MessageID: "directSlotChildren"}},
			},
			{
				Name:   "aliased parent import",
				Code:   "import {PageLayout as Layout} from '@primer/react'\n" + `const x = <section><Layout.Pane /></section>`,
				Errors: []linttest.Error{{Data: map[string]string{"childName": "PageLayout.Pane"}}},
			},
		},
	})
}
