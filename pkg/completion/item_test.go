package completion

import (
	"testing"

	"typesift/pkg/core"
	"typesift/pkg/match"
)

func TestMethodSnippetPlaceholders(t *testing.T) {
	table := core.NewTable()
	klass := table.NewClass(table.Root(), "Widget", nil)
	str := table.NewClass(table.Root(), "String", nil)

	tests := []struct {
		name string
		args []core.Arg
		want string
	}{
		{
			name: "no_args",
			args: nil,
			want: "m()${0}",
		},
		{
			name: "two_untyped_positional",
			args: []core.Arg{{Name: "a"}, {Name: "b"}},
			want: "m(${1}, ${2})${0}",
		},
		{
			name: "typed_positional",
			args: []core.Arg{{Name: "a", Type: core.ClassType{Sym: str}}},
			want: "m(${1:String})${0}",
		},
		{
			name: "keyword_arg",
			args: []core.Arg{{Name: "key", Keyword: true, Type: core.ClassType{Sym: str}}},
			want: "m(key: ${1:String})${0}",
		},
		{
			name: "block_skipped",
			args: []core.Arg{{Name: "a"}, {Name: "blk", Block: true}},
			want: "m(${1})${0}",
		},
		{
			name: "block_between_positionals",
			args: []core.Arg{{Name: "a"}, {Name: "blk", Block: true}, {Name: "b"}},
			want: "m(${1}, ${2})${0}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			method := table.NewMethod(klass, "m", tc.args, nil)
			if got := methodSnippet(method); got != tc.want {
				t.Errorf("methodSnippet = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSortTextPaddingAndSaturation(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{0, "000000"},
		{7, "000007"},
		{123456, "123456"},
		{999999, "999999"},
		{1000000, "999999"}, // saturates, never wraps or widens
	}
	for _, tc := range tests {
		if got := sortText(tc.rank); got != tc.want {
			t.Errorf("sortText(%d) = %q, want %q", tc.rank, got, tc.want)
		}
	}
}

func TestBuildItemKinds(t *testing.T) {
	table := core.NewTable()
	root := table.Root()
	klass := table.NewClass(root, "Widget", nil)
	str := table.NewClass(root, "String", nil)
	method := table.NewMethod(klass, "render", nil, core.ClassType{Sym: str})
	constant := table.NewStaticField(klass, "MAX_DEPTH", core.ClassType{Sym: str})
	table.Finalize()

	r := newTestResolver(table)

	item := r.buildItem(method, classType(klass), nil, 0)
	if item.Kind != KindMethod {
		t.Errorf("method kind = %v", item.Kind)
	}
	if item.InsertFormat != Snippet || item.InsertText != "render()${0}" {
		t.Errorf("snippet-capable method insert = %q (%v)", item.InsertText, item.InsertFormat)
	}
	if item.Detail != "() -> String" {
		t.Errorf("method detail = %q", item.Detail)
	}

	item = r.buildItem(constant, classType(klass), nil, 1)
	if item.Kind != KindConstant {
		t.Errorf("static field kind = %v", item.Kind)
	}
	if item.Detail != "String" {
		t.Errorf("constant detail should render the result type, got %q", item.Detail)
	}

	item = r.buildItem(klass, nil, nil, 2)
	if item.Kind != KindClass {
		t.Errorf("class kind = %v", item.Kind)
	}
}

func TestBuildItemPlainTextClient(t *testing.T) {
	table := core.NewTable()
	klass := table.NewClass(table.Root(), "Widget", nil)
	method := table.NewMethod(klass, "render", []core.Arg{{Name: "depth"}}, nil)
	table.Finalize()

	r := NewResolver(table, match.Default{}, Options{SnippetSupport: false, MarkupKind: "plaintext"})
	item := r.buildItem(method, classType(klass), nil, 0)
	if item.InsertFormat != PlainText {
		t.Errorf("insert format = %v, want PlainText", item.InsertFormat)
	}
	if item.InsertText != "render" {
		t.Errorf("plain client insert = %q, want bare label", item.InsertText)
	}
}

func TestBuildItemDocumentation(t *testing.T) {
	source := "class Widget\n" +
		"  # Renders the widget.\n" +
		"  # @deprecated use draw instead\n" +
		"  def render\n" +
		"  end\n" +
		"end\n"
	offset := len("class Widget\n  # Renders the widget.\n  # @deprecated use draw instead\n  ")

	table := core.NewTable()
	table.AddSource("widget.rb", source)
	klass := table.NewClass(table.Root(), "Widget", nil)
	method := table.NewMethod(klass, "render", nil, nil)
	method.Loc = &core.Loc{File: "widget.rb", Offset: offset}
	table.Finalize()

	r := newTestResolver(table)
	item := r.buildItem(method, classType(klass), nil, 0)

	if item.Documentation == "" {
		t.Fatal("expected mined documentation")
	}
	if !item.Deprecated {
		t.Error("deprecation marker in docs should set Deprecated")
	}
	if item.MarkupKind != "markdown" {
		t.Errorf("markup kind = %q, want configured markdown", item.MarkupKind)
	}
}
