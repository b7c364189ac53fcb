package core

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Table owns every symbol of one checker snapshot, plus the source
// texts documentation is mined from. A patricia trie over fully
// qualified names backs prefix enumeration for workspace-style
// symbol queries.
type Table struct {
	root    *Symbol
	symbols []*Symbol
	names   *patricia.Trie
	sources map[string]string
}

// NewTable creates a table holding only the root namespace symbol.
// The root is its own lexical owner.
func NewTable() *Table {
	t := &Table{
		names:   patricia.NewTrie(),
		sources: make(map[string]string),
	}
	root := t.NewSymbol("<root>", FlagClassOrModule)
	root.Owner = root
	t.root = root
	return t
}

// Root returns the root namespace symbol.
func (t *Table) Root() *Symbol { return t.root }

// Len returns the number of symbols, the root included.
func (t *Table) Len() int { return len(t.symbols) }

// ByID returns the symbol with the given ID, or nil.
func (t *Table) ByID(id SymbolID) *Symbol {
	if int(id) >= len(t.symbols) {
		return nil
	}
	return t.symbols[id]
}

// NewSymbol allocates a detached symbol with the next dense ID.
// Callers attach it to an owner with Enter.
func (t *Table) NewSymbol(name string, flags Flags) *Symbol {
	sym := &Symbol{
		Name:  name,
		id:    SymbolID(len(t.symbols)),
		flags: flags,
	}
	t.symbols = append(t.symbols, sym)
	return sym
}

// Enter appends sym to owner's members (declaration order preserved),
// sets the lexical owner and registers the qualified name for prefix
// lookup. Class and module names shadow nothing: re-entering a name
// replaces the by-name index entry but keeps both member slots, which
// matches how the checker records redefinitions.
func (t *Table) Enter(owner, sym *Symbol) *Symbol {
	sym.Owner = owner
	owner.members = append(owner.members, sym)
	if owner.byName == nil {
		owner.byName = make(map[string]*Symbol)
	}
	owner.byName[sym.Name] = sym
	if qn := sym.QualifiedName(); qn != "" {
		t.names.Set(patricia.Prefix(qn), sym)
	}
	return sym
}

// NewClass creates a class under owner with an optional superclass.
func (t *Table) NewClass(owner *Symbol, name string, super *Symbol) *Symbol {
	sym := t.NewSymbol(name, FlagClassOrModule)
	sym.Super = super
	return t.Enter(owner, sym)
}

// NewModule creates a module under owner.
func (t *Table) NewModule(owner *Symbol, name string) *Symbol {
	return t.Enter(owner, t.NewSymbol(name, FlagClassOrModule))
}

// NewMethod creates a method member of owner.
func (t *Table) NewMethod(owner *Symbol, name string, args []Arg, result Type) *Symbol {
	sym := t.NewSymbol(name, FlagMethod)
	sym.Args = args
	sym.Result = result
	return t.Enter(owner, sym)
}

// NewStaticField creates a constant-style static field member of owner.
func (t *Table) NewStaticField(owner *Symbol, name string, typ Type) *Symbol {
	sym := t.NewSymbol(name, FlagStaticField)
	sym.Result = typ
	return t.Enter(owner, sym)
}

// Lookup resolves a fully qualified `A::B::C` name. Empty input and
// unknown names resolve to nil; "" is not the root on purpose, callers
// address the root through Root.
func (t *Table) Lookup(qualified string) *Symbol {
	if qualified == "" {
		return nil
	}
	v := t.names.Get(patricia.Prefix(qualified))
	if v == nil {
		return nil
	}
	return v.(*Symbol)
}

// VisitNames enumerates qualified names starting with prefix, in trie
// order. The visitor may return an error to stop early.
func (t *Table) VisitNames(prefix string, visit func(name string, sym *Symbol) error) error {
	return t.names.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		return visit(string(p), item.(*Symbol))
	})
}

// AddSource registers the text of a source file for documentation
// extraction.
func (t *Table) AddSource(file, text string) { t.sources[file] = text }

// Source returns the registered text for file, or "".
func (t *Table) Source(file string) string { return t.sources[file] }

// SourceFiles returns registered file paths in sorted order.
func (t *Table) SourceFiles() []string {
	files := make([]string, 0, len(t.sources))
	for f := range t.sources {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Reindex rebuilds the qualified-name trie from scratch by walking
// the member tree from the root. Needed after bulk loads where
// members were entered before their own owners had owners.
func (t *Table) Reindex() {
	t.names = patricia.NewTrie()
	var walk func(sym *Symbol)
	walk = func(sym *Symbol) {
		for _, member := range sym.members {
			if qn := member.QualifiedName(); qn != "" {
				t.names.Set(patricia.Prefix(qn), member)
			}
			walk(member)
		}
	}
	walk(t.root)
}

// Finalize marks hierarchy linearization as computed for every class
// and module. The checker calls this once its resolver passes are
// done; ancestor queries fault before that.
func (t *Table) Finalize() {
	for _, sym := range t.symbols {
		if sym.IsClassOrModule() {
			sym.linearized = true
		}
	}
}

// Finalized reports whether Finalize has run (the root is as good a
// witness as any).
func (t *Table) Finalized() bool { return t.root.linearized }
