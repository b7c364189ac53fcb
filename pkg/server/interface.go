/*
Package server implements msgpack IPC for typed completion queries.

The server speaks a minimal request/response protocol over stdin and
stdout. Each request is one msgpack map carrying an ID, an op and the
op's parameters; each response echoes the ID. Messages are processed
synchronously and in order, which also serializes every resolver query
against the loaded snapshot.

# IPC

Completion requests name the receiver by fully qualified symbol path:

	{"id": "req_001", "op": "complete", "recv": "A::B", "p": "foo", "l": 24}

The server responds with ranked items:

	{"id": "req_001", "s": [{"w": "foo_bar", "k": "method", ...}], "c": 1, "t": 145}

`constants` resolves the lexical-scope constant path the same way, and
`symbols` lists fully qualified names from the snapshot's name index:

	{"id": "sym_001", "op": "symbols", "p": "A::"}

`info` and `health` report snapshot statistics and readiness. Unknown
ops and invalid parameters produce an error response with a code;
internal resolver faults answer code 500 and the server keeps serving.
*/
package server

// Request is the single incoming message shape for every op.
type Request struct {
	ID       string `msgpack:"id"`
	Op       string `msgpack:"op"`
	Receiver string `msgpack:"recv,omitempty"`
	Prefix   string `msgpack:"p,omitempty"`
	Limit    int    `msgpack:"l,omitempty"`
}

// ItemPayload is one ranked completion item on the wire.
type ItemPayload struct {
	Label      string `msgpack:"w"`
	Kind       string `msgpack:"k"`
	SortText   string `msgpack:"sort"`
	Detail     string `msgpack:"d,omitempty"`
	Insert     string `msgpack:"ins,omitempty"`
	Snippet    bool   `msgpack:"snip,omitempty"`
	Doc        string `msgpack:"doc,omitempty"`
	MarkupKind string `msgpack:"mk,omitempty"`
	Deprecated bool   `msgpack:"dep,omitempty"`
}

// CompleteResponse answers complete and constants ops.
type CompleteResponse struct {
	ID        string        `msgpack:"id"`
	Items     []ItemPayload `msgpack:"s"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// SymbolsResponse answers the symbols op.
type SymbolsResponse struct {
	ID        string   `msgpack:"id"`
	Names     []string `msgpack:"names"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// InfoResponse answers info and health ops.
type InfoResponse struct {
	ID      string `msgpack:"id"`
	Status  string `msgpack:"status"`
	Symbols int    `msgpack:"symbols,omitempty"`
	Files   int    `msgpack:"files,omitempty"`
	Version string `msgpack:"version,omitempty"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
