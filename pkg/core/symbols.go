// Package core holds the read-only symbol table and type algebra the
// resolver queries. Symbols and types are produced by a type checker
// (or loaded from one of its snapshots) and are never mutated during a
// completion query.
package core

import "sort"

func sortSymbolsByName(syms []*Symbol) {
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Name != syms[j].Name {
			return syms[i].Name < syms[j].Name
		}
		return syms[i].id < syms[j].id
	})
}

// SymbolID identifies a symbol within one Table. IDs are dense and
// allocated in creation order, which makes them usable as a stable
// tie-break when ranking candidates.
type SymbolID uint32

// NoSymbol is the sentinel for "no reference" in serialized form.
const NoSymbol = ^SymbolID(0)

// Flags describe what kind of declaration a symbol is.
type Flags uint8

const (
	// FlagMethod marks instance methods.
	FlagMethod Flags = 1 << iota
	// FlagClassOrModule marks classes and modules.
	FlagClassOrModule
	// FlagStaticField marks constants and other static fields.
	FlagStaticField
	// FlagMangled marks compiler-generated rename-mangled members.
	// These are bookkeeping artifacts and never reach completion output.
	FlagMangled
)

// Arg is a single method argument as declared.
type Arg struct {
	Name    string
	Keyword bool
	Block   bool
	Type    Type // nil when the argument carries no declared type
}

// Loc points at a declaration inside a source file known to the Table.
type Loc struct {
	File   string
	Offset int
}

// Symbol is one entry in the symbol table: a class, module, method or
// static field. Members preserve declaration order; the by-name index
// is maintained alongside by Table.Enter.
type Symbol struct {
	Name   string
	Super  *Symbol
	Mixins []*Symbol
	Owner  *Symbol
	Args   []Arg
	Result Type
	Loc    *Loc

	id         SymbolID
	flags      Flags
	members    []*Symbol
	byName     map[string]*Symbol
	linearized bool
}

// ID returns the dense table-local identifier.
func (s *Symbol) ID() SymbolID { return s.id }

// Flags returns the raw declaration flags.
func (s *Symbol) Flags() Flags { return s.flags }

func (s *Symbol) IsMethod() bool        { return s.flags&FlagMethod != 0 }
func (s *Symbol) IsClassOrModule() bool { return s.flags&FlagClassOrModule != 0 }
func (s *Symbol) IsStaticField() bool   { return s.flags&FlagStaticField != 0 }
func (s *Symbol) IsMangled() bool       { return s.flags&FlagMangled != 0 }

// Linearized reports whether the hierarchy linearization for this
// symbol has been finalized. Querying ancestors before that is a
// programming error on the caller's side.
func (s *Symbol) Linearized() bool { return s.linearized }

// Members returns direct members in declaration order. The returned
// slice is owned by the symbol and must not be modified.
func (s *Symbol) Members() []*Symbol { return s.members }

// MembersSorted returns direct members ordered by name. Slower than
// Members, but the order is stable across snapshots regardless of
// declaration order, which matters for presentation-ordered walks.
func (s *Symbol) MembersSorted() []*Symbol {
	out := make([]*Symbol, len(s.members))
	copy(out, s.members)
	sortSymbolsByName(out)
	return out
}

// Member looks a direct member up by name.
func (s *Symbol) Member(name string) *Symbol {
	if s.byName == nil {
		return nil
	}
	return s.byName[name]
}

// QualifiedName renders the full `A::B::C` path, walking lexical
// owners up to the root namespace. The root itself renders as "".
func (s *Symbol) QualifiedName() string {
	if s.Owner == nil || s.Owner == s {
		return ""
	}
	prefix := s.Owner.QualifiedName()
	if prefix == "" {
		return s.Name
	}
	return prefix + "::" + s.Name
}
