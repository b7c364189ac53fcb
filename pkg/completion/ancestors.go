package completion

import "typesift/pkg/core"

// Ancestors flattens a class or module's supertype graph into a single
// precedence sequence, most specific first: the symbol itself, its
// mixins in declaration order, then its superclass's full chain. This
// approximates the runtime's method resolution order; mixin ties keep
// declaration order and no C3-style global consistency is attempted.
//
// The hierarchy must be linearization-finalized; asking earlier is an
// invariant fault.
func Ancestors(sym *core.Symbol) ([]*core.Symbol, error) {
	return ancestorsImpl(sym, make([]*core.Symbol, 0, 8))
}

func ancestorsImpl(sym *core.Symbol, acc []*core.Symbol) ([]*core.Symbol, error) {
	if !sym.Linearized() {
		return nil, internalf("ancestors of %q queried before linearization was finalized", sym.Name)
	}
	acc = append(acc, sym)
	acc = append(acc, sym.Mixins...)
	if sym.Super != nil {
		return ancestorsImpl(sym.Super, acc)
	}
	return acc, nil
}
