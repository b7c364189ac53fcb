package completion

import (
	"typesift/pkg/core"
	"typesift/pkg/match"
)

// newTestResolver wraps a table with the default fuzzy matcher and
// snippet-capable client options.
func newTestResolver(t *core.Table) *Resolver {
	return NewResolver(t, match.Default{}, Options{
		SnippetSupport: true,
		MarkupKind:     "markdown",
	})
}

// fixture is the shared hierarchy most tests query:
//
//	module Helpers            #=> helper_log
//	class Base                #=> foo_bar, to_str
//	class Child < Base        #=> foo_baz   (includes Helpers)
type fixture struct {
	table   *core.Table
	helpers *core.Symbol
	base    *core.Symbol
	child   *core.Symbol
}

func newFixture() *fixture {
	table := core.NewTable()
	root := table.Root()

	helpers := table.NewModule(root, "Helpers")
	table.NewMethod(helpers, "helper_log", nil, nil)

	base := table.NewClass(root, "Base", nil)
	table.NewMethod(base, "foo_bar", nil, nil)
	table.NewMethod(base, "to_str", nil, nil)

	child := table.NewClass(root, "Child", base)
	child.Mixins = append(child.Mixins, helpers)
	table.NewMethod(child, "foo_baz", nil, nil)

	table.Finalize()
	return &fixture{table: table, helpers: helpers, base: base, child: child}
}

func classType(sym *core.Symbol) core.Type { return core.ClassType{Sym: sym} }

func dispatchOver(types ...core.Type) *core.DispatchResult {
	var head *core.DispatchResult
	for i := len(types) - 1; i >= 0; i-- {
		head = &core.DispatchResult{
			Main:      core.DispatchComponent{Receiver: types[i]},
			Secondary: head,
		}
	}
	return head
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
