package completion

import (
	"fmt"
	"strings"

	"typesift/pkg/core"
	"typesift/pkg/docs"
)

// Kind classifies an item for the client.
type Kind uint8

const (
	KindMethod Kind = iota + 1
	KindConstant
	KindClass
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindConstant:
		return "constant"
	case KindClass:
		return "class"
	}
	return "unknown"
}

// InsertFormat says how InsertText is to be interpreted.
type InsertFormat uint8

const (
	PlainText InsertFormat = iota + 1
	Snippet
)

// Item is one presentation-ready completion record. Immutable once
// built; ownership passes to the transport layer.
type Item struct {
	Label         string
	Kind          Kind
	SortText      string
	Detail        string
	InsertText    string
	InsertFormat  InsertFormat
	Documentation string
	MarkupKind    string
	Deprecated    bool
}

// Items sort by SortText on the client side. We unconditionally
// encode the rank index; past the cap the key saturates rather than
// wrapping, result sets never get anywhere near that size.
const maxSortIndex = 999999

func sortText(rank int) string {
	if rank > maxSortIndex {
		rank = maxSortIndex
	}
	return fmt.Sprintf("%06d", rank)
}

// buildItem converts a ranked symbol into its display record.
func (r *Resolver) buildItem(sym *core.Symbol, receiverType core.Type, constr *core.TypeConstraint, rank int) Item {
	item := Item{
		Label:    sym.Name,
		SortText: sortText(rank),
	}

	result := sym.Result
	if result == nil {
		result = core.Untyped{}
	}

	switch {
	case sym.IsMethod():
		item.Kind = KindMethod
		item.Detail = methodDetail(sym, result, constr)
		if r.opts.SnippetSupport {
			item.InsertFormat = Snippet
			item.InsertText = methodSnippet(sym)
		} else {
			item.InsertFormat = PlainText
			item.InsertText = sym.Name
		}
		r.attachDocumentation(&item, sym)
	case sym.IsStaticField():
		item.Kind = KindConstant
		item.Detail = result.String()
		item.InsertFormat = PlainText
		item.InsertText = sym.Name
	case sym.IsClassOrModule():
		item.Kind = KindClass
		item.InsertFormat = PlainText
		item.InsertText = sym.Name
	}
	return item
}

func (r *Resolver) attachDocumentation(item *Item, sym *core.Symbol) {
	if sym.Loc == nil {
		return
	}
	src := r.table.Source(sym.Loc.File)
	if src == "" {
		return
	}
	doc, ok := docs.Extract(src, sym.Loc.Offset)
	if !ok {
		return
	}
	item.Documentation = doc
	item.MarkupKind = r.opts.MarkupKind
	if docs.Deprecated(doc) {
		item.Deprecated = true
	}
}

// methodDetail renders `(arg: Type, ...) -> Result`, appending the
// constraint bindings when the dispatch bound any type variables.
func methodDetail(sym *core.Symbol, result core.Type, constr *core.TypeConstraint) string {
	parts := make([]string, 0, len(sym.Args))
	for _, arg := range sym.Args {
		var b strings.Builder
		if arg.Block {
			b.WriteString("&")
		}
		b.WriteString(arg.Name)
		if arg.Keyword {
			b.WriteString(":")
		}
		if arg.Type != nil {
			b.WriteString(" ")
			b.WriteString(arg.Type.String())
		}
		parts = append(parts, b.String())
	}

	detail := "(" + strings.Join(parts, ", ") + ") -> " + result.String()
	if bound := constr.String(); bound != "" {
		detail += " " + bound
	}
	return detail
}
