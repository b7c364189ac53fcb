package core

import "strings"

// Binding is one resolved generic type variable.
type Binding struct {
	Var   string
	Bound Type
}

// TypeConstraint holds the generic-variable bindings accumulated while
// the checker attempted a call. One handle is shared read-only by every
// candidate stamped from the same dispatch component; nothing clones or
// mutates it after dispatch.
type TypeConstraint struct {
	Bindings []Binding
}

func (c *TypeConstraint) String() string {
	if c == nil || len(c.Bindings) == 0 {
		return ""
	}
	parts := make([]string, len(c.Bindings))
	for i, b := range c.Bindings {
		parts[i] = b.Var + " = " + b.Bound.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DispatchComponent is one alternative the checker dispatched against.
type DispatchComponent struct {
	Receiver   Type
	Constraint *TypeConstraint
}

// DispatchResult is the outcome of resolving a call site. Calls over
// disjunctive receivers chain additional components through Secondary.
type DispatchResult struct {
	Main      DispatchComponent
	Secondary *DispatchResult
}
