package completion

import (
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"typesift/pkg/core"
)

// SimilarConstants handles bare identifier and constant completion.
// It only applies when the receiver resolved to exactly one class
// symbol; every other type shape returns no items rather than walking
// the full algebra. Starting at that class's lexical owner it collects
// similarly named classes, modules and constants, moving owner by
// owner until the root namespace has been processed (inclusive).
//
// An empty prefix falls back to the resolved class's own name, which
// is the unresolved constant the query site originally named.
func (r *Resolver) SimilarConstants(receiver core.Type, prefix string) []Item {
	ct, ok := receiver.(core.ClassType)
	if !ok {
		return nil
	}
	if prefix == "" {
		prefix = ct.Sym.Name
	}
	log.Debug("looking for constants", "similarTo", prefix)

	root := r.table.Root()
	var items []Item
	owner := ct.Sym
	for owner != nil {
		owner = owner.Owner
		if owner == nil {
			break
		}
		for _, member := range owner.MembersSorted() {
			if !member.IsClassOrModule() && !member.IsStaticField() {
				continue
			}
			if !isConstantName(member.Name) {
				continue
			}
			if !r.matcher.Similar(member.Name, prefix) {
				continue
			}
			items = append(items, r.buildItem(member, receiver, nil, len(items)))
		}
		if owner == root {
			break
		}
	}
	return items
}

// isConstantName applies the constant lexical rule: constants start
// with an uppercase letter.
func isConstantName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
