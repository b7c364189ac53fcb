// Package completion resolves and ranks method and constant
// completion candidates against an already-typechecked symbol table.
// It never runs inference: receivers arrive as dispatch results or
// plain types computed by the checker, and resolution is a bounded
// read-only walk over the class hierarchy and type algebra.
package completion

import (
	"fmt"

	"typesift/pkg/core"
	"typesift/pkg/match"
)

// Options carry the client capabilities that shape presentation.
type Options struct {
	// SnippetSupport enables numbered-placeholder insertion text.
	SnippetSupport bool
	// MarkupKind is the documentation rendering the client asked for
	// ("markdown" or "plaintext"). Passed through, not interpreted.
	MarkupKind string
}

// Resolver answers completion queries against one table snapshot.
// A Resolver is stateless between calls; queries are synchronous and
// everything they allocate is dropped when the items are returned.
type Resolver struct {
	table   *core.Table
	matcher match.Matcher
	opts    Options
}

// NewResolver builds a resolver over table using the given
// name-similarity oracle.
func NewResolver(table *core.Table, m match.Matcher, opts Options) *Resolver {
	return &Resolver{table: table, matcher: m, opts: opts}
}

// Table exposes the underlying snapshot (read-only by convention).
func (r *Resolver) Table() *core.Table { return r.table }

// InternalError signals an invariant fault: an inconsistent symbol
// table or a misuse of the resolver, never a normal empty result.
// The query that produced it must be aborted, not retried.
type InternalError struct {
	reason string
}

func (e *InternalError) Error() string { return "completion: internal error: " + e.reason }

func internalf(format string, args ...any) error {
	return &InternalError{reason: fmt.Sprintf(format, args...)}
}
