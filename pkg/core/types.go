package core

import "strings"

// Type is the algebraic type a receiver can have. The set of variants
// is closed: consumers dispatch with a type switch and treat anything
// unknown as untyped, so adding a variant here shows up as a silent
// empty result in exactly one place (the walker's default arm).
type Type interface {
	String() string
	isType()
}

// ClassType is a plain reference to a class or module.
type ClassType struct {
	Sym *Symbol
}

// AppliedType is a generic class applied to type arguments.
type AppliedType struct {
	Sym  *Symbol
	Args []Type
}

// AndType is an intersection: values satisfy both sides.
type AndType struct {
	Left  Type
	Right Type
}

// OrType is a union: values satisfy at least one side.
type OrType struct {
	Left  Type
	Right Type
}

// ProxyType transparently wraps an underlying type, e.g. a literal
// type or a self-type. Structural queries forward to Underlying.
type ProxyType struct {
	Underlying Type
}

// Untyped is the opaque catch-all for unknown or untyped receivers.
type Untyped struct{}

func (ClassType) isType()   {}
func (AppliedType) isType() {}
func (AndType) isType()     {}
func (OrType) isType()      {}
func (ProxyType) isType()   {}
func (Untyped) isType()     {}

func (t ClassType) String() string { return t.Sym.Name }

func (t AppliedType) String() string {
	if len(t.Args) == 0 {
		return t.Sym.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Sym.Name + "[" + strings.Join(parts, ", ") + "]"
}

func (t AndType) String() string { return "T.all(" + t.Left.String() + ", " + t.Right.String() + ")" }
func (t OrType) String() string  { return "T.any(" + t.Left.String() + ", " + t.Right.String() + ")" }
func (t ProxyType) String() string { return t.Underlying.String() }
func (Untyped) String() string     { return "T.untyped" }
