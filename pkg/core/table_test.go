package core

import (
	"errors"
	"testing"
)

func TestQualifiedNames(t *testing.T) {
	table := NewTable()
	root := table.Root()
	outer := table.NewModule(root, "Outer")
	inner := table.NewClass(outer, "Inner", nil)
	method := table.NewMethod(inner, "run", nil, nil)

	tests := []struct {
		sym  *Symbol
		want string
	}{
		{root, ""},
		{outer, "Outer"},
		{inner, "Outer::Inner"},
		{method, "Outer::Inner::run"},
	}
	for _, tc := range tests {
		if got := tc.sym.QualifiedName(); got != tc.want {
			t.Errorf("QualifiedName(%s) = %q, want %q", tc.sym.Name, got, tc.want)
		}
	}
}

func TestLookup(t *testing.T) {
	table := NewTable()
	root := table.Root()
	outer := table.NewModule(root, "Outer")
	inner := table.NewClass(outer, "Inner", nil)

	if got := table.Lookup("Outer::Inner"); got != inner {
		t.Errorf("Lookup(Outer::Inner) = %v", got)
	}
	if got := table.Lookup("Outer"); got != outer {
		t.Errorf("Lookup(Outer) = %v", got)
	}
	if got := table.Lookup("Missing"); got != nil {
		t.Errorf("Lookup(Missing) = %v, want nil", got)
	}
	// "" addresses nothing; the root has its own accessor.
	if got := table.Lookup(""); got != nil {
		t.Errorf("Lookup(\"\") = %v, want nil", got)
	}
}

func TestVisitNamesPrefixEnumeration(t *testing.T) {
	table := NewTable()
	root := table.Root()
	net := table.NewModule(root, "Net")
	table.NewClass(net, "HTTP", nil)
	table.NewClass(net, "SMTP", nil)
	table.NewModule(root, "Kernel")

	var got []string
	err := table.VisitNames("Net", func(name string, sym *Symbol) error {
		got = append(got, name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{"Net": true, "Net::HTTP": true, "Net::SMTP": true}
	if len(got) != len(want) {
		t.Fatalf("VisitNames(Net) = %v, want the Net subtree only", got)
	}
	for _, name := range got {
		if !want[name] {
			t.Errorf("unexpected name %q in Net subtree", name)
		}
	}
}

func TestVisitNamesEarlyStop(t *testing.T) {
	table := NewTable()
	root := table.Root()
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		table.NewModule(root, name)
	}

	stop := errors.New("stop")
	count := 0
	err := table.VisitNames("", func(string, *Symbol) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("visitor error not propagated: %v", err)
	}
	if count != 2 {
		t.Errorf("visited %d names after stop, want 2", count)
	}
}

func TestMembersOrdering(t *testing.T) {
	table := NewTable()
	klass := table.NewClass(table.Root(), "C", nil)
	zeta := table.NewMethod(klass, "zeta", nil, nil)
	alpha := table.NewMethod(klass, "alpha", nil, nil)

	members := klass.Members()
	if len(members) != 2 || members[0] != zeta || members[1] != alpha {
		t.Errorf("Members should preserve declaration order, got %v", names(members))
	}

	sorted := klass.MembersSorted()
	if len(sorted) != 2 || sorted[0] != alpha || sorted[1] != zeta {
		t.Errorf("MembersSorted should order by name, got %v", names(sorted))
	}
	// Sorting is on a copy.
	if klass.Members()[0] != zeta {
		t.Error("MembersSorted mutated the declaration-order slice")
	}
}

func TestMemberByName(t *testing.T) {
	table := NewTable()
	klass := table.NewClass(table.Root(), "C", nil)
	run := table.NewMethod(klass, "run", nil, nil)

	if got := klass.Member("run"); got != run {
		t.Errorf("Member(run) = %v", got)
	}
	if got := klass.Member("walk"); got != nil {
		t.Errorf("Member(walk) = %v, want nil", got)
	}
	if got := run.Member("anything"); got != nil {
		t.Errorf("leaf Member lookup = %v, want nil", got)
	}
}

func TestDenseIDs(t *testing.T) {
	table := NewTable()
	if table.Root().ID() != 0 {
		t.Fatalf("root ID = %d, want 0", table.Root().ID())
	}
	a := table.NewModule(table.Root(), "A")
	b := table.NewModule(table.Root(), "B")
	if a.ID() != 1 || b.ID() != 2 {
		t.Errorf("IDs not dense in creation order: %d, %d", a.ID(), b.ID())
	}
	if table.ByID(a.ID()) != a {
		t.Error("ByID does not round-trip")
	}
	if table.ByID(99) != nil {
		t.Error("ByID out of range should be nil")
	}
	if table.Len() != 3 {
		t.Errorf("Len = %d, want 3", table.Len())
	}
}

func TestFinalize(t *testing.T) {
	table := NewTable()
	klass := table.NewClass(table.Root(), "C", nil)
	method := table.NewMethod(klass, "run", nil, nil)

	if table.Finalized() || klass.Linearized() {
		t.Fatal("fresh table must not be finalized")
	}
	table.Finalize()
	if !table.Finalized() || !klass.Linearized() {
		t.Error("Finalize should mark classes and modules")
	}
	if method.Linearized() {
		t.Error("methods have no linearization")
	}
}

func TestReindexAfterLateOwnership(t *testing.T) {
	table := NewTable()
	root := table.Root()

	// Simulate a bulk load: the member is entered while its owner is
	// still detached, so its qualified name is wrong at Enter time.
	outer := table.NewSymbol("Outer", FlagClassOrModule)
	inner := table.NewSymbol("Inner", FlagClassOrModule)
	table.Enter(outer, inner)
	table.Enter(root, outer)

	table.Reindex()
	if got := table.Lookup("Outer::Inner"); got != inner {
		t.Errorf("Lookup after Reindex = %v, want Inner", got)
	}
}

func TestSources(t *testing.T) {
	table := NewTable()
	table.AddSource("b.rb", "class B\nend\n")
	table.AddSource("a.rb", "class A\nend\n")

	if got := table.Source("a.rb"); got == "" {
		t.Error("registered source not found")
	}
	if got := table.Source("missing.rb"); got != "" {
		t.Errorf("unknown source = %q, want empty", got)
	}
	files := table.SourceFiles()
	if len(files) != 2 || files[0] != "a.rb" || files[1] != "b.rb" {
		t.Errorf("SourceFiles = %v, want sorted [a.rb b.rb]", files)
	}
}

func names(syms []*Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.Name
	}
	return out
}
