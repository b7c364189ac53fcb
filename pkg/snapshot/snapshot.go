// Package snapshot reads and writes msgpack-encoded symbol table
// snapshots. The type checker exports one after its resolver passes
// finish; the server loads it and answers completion queries against
// it without ever touching the checker again.
//
// A snapshot is a small header plus flat symbol records with numeric
// references (superclass, mixins, member lists, encoded type trees)
// and the per-file source text documentation is mined from. Loading
// links the references back into a core.Table and refuses snapshots
// whose hierarchy linearization was not finalized.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"typesift/pkg/core"
)

const (
	// Magic identifies a typesift snapshot stream.
	Magic = "TSIFT"
	// Version is bumped on any incompatible record change.
	Version = 1
)

const (
	typeClass uint8 = iota + 1
	typeApplied
	typeAnd
	typeOr
	typeProxy
	typeUntyped
)

type typeRec struct {
	Kind  uint8     `msgpack:"k"`
	Sym   uint32    `msgpack:"s,omitempty"`
	Args  []typeRec `msgpack:"a,omitempty"`
	Left  *typeRec  `msgpack:"l,omitempty"`
	Right *typeRec  `msgpack:"r,omitempty"`
}

type argRec struct {
	Name    string   `msgpack:"n"`
	Keyword bool     `msgpack:"kw,omitempty"`
	Block   bool     `msgpack:"b,omitempty"`
	Type    *typeRec `msgpack:"t,omitempty"`
}

type locRec struct {
	File   string `msgpack:"f"`
	Offset int    `msgpack:"o"`
}

type symbolRec struct {
	ID      uint32    `msgpack:"i"`
	Name    string    `msgpack:"n"`
	Flags   uint8     `msgpack:"f"`
	Super   uint32    `msgpack:"s"`
	Mixins  []uint32  `msgpack:"x,omitempty"`
	Members []uint32  `msgpack:"m,omitempty"`
	Args    []argRec  `msgpack:"a,omitempty"`
	Result  *typeRec  `msgpack:"r,omitempty"`
	Loc     *locRec   `msgpack:"loc,omitempty"`
}

type fileRec struct {
	Path string `msgpack:"p"`
	Text string `msgpack:"t"`
}

type snapshotFile struct {
	Magic     string      `msgpack:"magic"`
	Version   int         `msgpack:"v"`
	Finalized bool        `msgpack:"fin"`
	Root      uint32      `msgpack:"root"`
	Symbols   []symbolRec `msgpack:"syms"`
	Files     []fileRec   `msgpack:"files"`
}

// Write encodes the table to w.
func Write(t *core.Table, w io.Writer) error {
	snap := snapshotFile{
		Magic:     Magic,
		Version:   Version,
		Finalized: t.Finalized(),
		Root:      uint32(t.Root().ID()),
		Symbols:   make([]symbolRec, 0, t.Len()),
	}

	for id := 0; id < t.Len(); id++ {
		sym := t.ByID(core.SymbolID(id))
		rec := symbolRec{
			ID:    uint32(sym.ID()),
			Name:  sym.Name,
			Flags: uint8(sym.Flags()),
			Super: uint32(core.NoSymbol),
		}
		if sym.Super != nil {
			rec.Super = uint32(sym.Super.ID())
		}
		for _, mixin := range sym.Mixins {
			rec.Mixins = append(rec.Mixins, uint32(mixin.ID()))
		}
		for _, member := range sym.Members() {
			rec.Members = append(rec.Members, uint32(member.ID()))
		}
		for _, arg := range sym.Args {
			rec.Args = append(rec.Args, argRec{
				Name:    arg.Name,
				Keyword: arg.Keyword,
				Block:   arg.Block,
				Type:    encodeType(arg.Type),
			})
		}
		rec.Result = encodeType(sym.Result)
		if sym.Loc != nil {
			rec.Loc = &locRec{File: sym.Loc.File, Offset: sym.Loc.Offset}
		}
		snap.Symbols = append(snap.Symbols, rec)
	}

	for _, path := range t.SourceFiles() {
		snap.Files = append(snap.Files, fileRec{Path: path, Text: t.Source(path)})
	}

	return msgpack.NewEncoder(w).Encode(&snap)
}

// WriteFile encodes the table to the named file.
func WriteFile(t *core.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()
	if err := Write(t, f); err != nil {
		return err
	}
	log.Debugf("Wrote snapshot with %d symbols to %s", t.Len(), path)
	return nil
}

// Load decodes a snapshot stream into a fresh, finalized table.
func Load(r io.Reader) (*core.Table, error) {
	var snap snapshotFile
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	if snap.Magic != Magic {
		return nil, fmt.Errorf("not a typesift snapshot (magic %q)", snap.Magic)
	}
	if snap.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, Version)
	}
	if !snap.Finalized {
		return nil, fmt.Errorf("snapshot hierarchy linearization is not finalized")
	}
	if len(snap.Symbols) == 0 || snap.Root != 0 {
		return nil, fmt.Errorf("malformed snapshot: missing root symbol")
	}

	t := core.NewTable()

	// Pass 1: allocate. NewTable already created the root at ID 0;
	// records must arrive in dense ID order for the rest.
	for i, rec := range snap.Symbols {
		if int(rec.ID) != i {
			return nil, fmt.Errorf("malformed snapshot: symbol %q out of ID order", rec.Name)
		}
		if i == 0 {
			continue
		}
		t.NewSymbol(rec.Name, core.Flags(rec.Flags))
	}

	deref := func(id uint32) (*core.Symbol, error) {
		sym := t.ByID(core.SymbolID(id))
		if sym == nil {
			return nil, fmt.Errorf("malformed snapshot: dangling symbol ref %d", id)
		}
		return sym, nil
	}

	// Pass 2: link references and decode types.
	for _, rec := range snap.Symbols {
		sym := t.ByID(core.SymbolID(rec.ID))
		if rec.Super != uint32(core.NoSymbol) {
			super, err := deref(rec.Super)
			if err != nil {
				return nil, err
			}
			sym.Super = super
		}
		for _, id := range rec.Mixins {
			mixin, err := deref(id)
			if err != nil {
				return nil, err
			}
			sym.Mixins = append(sym.Mixins, mixin)
		}
		for _, ar := range rec.Args {
			argType, err := decodeType(t, ar.Type)
			if err != nil {
				return nil, err
			}
			sym.Args = append(sym.Args, core.Arg{
				Name:    ar.Name,
				Keyword: ar.Keyword,
				Block:   ar.Block,
				Type:    argType,
			})
		}
		result, err := decodeType(t, rec.Result)
		if err != nil {
			return nil, err
		}
		sym.Result = result
		if rec.Loc != nil {
			sym.Loc = &core.Loc{File: rec.Loc.File, Offset: rec.Loc.Offset}
		}
	}

	// Pass 3: membership, preserving declaration order.
	for _, rec := range snap.Symbols {
		owner := t.ByID(core.SymbolID(rec.ID))
		for _, id := range rec.Members {
			member, err := deref(id)
			if err != nil {
				return nil, err
			}
			t.Enter(owner, member)
		}
	}

	for _, file := range snap.Files {
		t.AddSource(file.Path, file.Text)
	}

	// Membership above may have entered members before their owners
	// were themselves owned, leaving stale qualified names behind.
	t.Reindex()

	t.Finalize()
	log.Debugf("Loaded snapshot: %d symbols, %d source files", t.Len(), len(snap.Files))
	return t, nil
}

// LoadFile decodes the named snapshot file.
func LoadFile(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func encodeType(t core.Type) *typeRec {
	switch t := t.(type) {
	case nil:
		return nil
	case core.ClassType:
		return &typeRec{Kind: typeClass, Sym: uint32(t.Sym.ID())}
	case core.AppliedType:
		rec := &typeRec{Kind: typeApplied, Sym: uint32(t.Sym.ID())}
		for _, arg := range t.Args {
			rec.Args = append(rec.Args, *encodeType(arg))
		}
		return rec
	case core.AndType:
		return &typeRec{Kind: typeAnd, Left: encodeType(t.Left), Right: encodeType(t.Right)}
	case core.OrType:
		return &typeRec{Kind: typeOr, Left: encodeType(t.Left), Right: encodeType(t.Right)}
	case core.ProxyType:
		return &typeRec{Kind: typeProxy, Left: encodeType(t.Underlying)}
	default:
		return &typeRec{Kind: typeUntyped}
	}
}

func decodeType(t *core.Table, rec *typeRec) (core.Type, error) {
	if rec == nil {
		return nil, nil
	}
	switch rec.Kind {
	case typeClass:
		sym := t.ByID(core.SymbolID(rec.Sym))
		if sym == nil {
			return nil, fmt.Errorf("malformed snapshot: type refers to unknown symbol %d", rec.Sym)
		}
		return core.ClassType{Sym: sym}, nil
	case typeApplied:
		sym := t.ByID(core.SymbolID(rec.Sym))
		if sym == nil {
			return nil, fmt.Errorf("malformed snapshot: type refers to unknown symbol %d", rec.Sym)
		}
		applied := core.AppliedType{Sym: sym}
		for i := range rec.Args {
			arg, err := decodeType(t, &rec.Args[i])
			if err != nil {
				return nil, err
			}
			applied.Args = append(applied.Args, arg)
		}
		return applied, nil
	case typeAnd, typeOr:
		left, err := decodeType(t, rec.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeType(t, rec.Right)
		if err != nil {
			return nil, err
		}
		if left == nil || right == nil {
			return nil, fmt.Errorf("malformed snapshot: composite type with missing side")
		}
		if rec.Kind == typeAnd {
			return core.AndType{Left: left, Right: right}, nil
		}
		return core.OrType{Left: left, Right: right}, nil
	case typeProxy:
		under, err := decodeType(t, rec.Left)
		if err != nil {
			return nil, err
		}
		if under == nil {
			return nil, fmt.Errorf("malformed snapshot: proxy type with no underlying type")
		}
		return core.ProxyType{Underlying: under}, nil
	case typeUntyped:
		return core.Untyped{}, nil
	default:
		return nil, fmt.Errorf("malformed snapshot: unknown type kind %d", rec.Kind)
	}
}
