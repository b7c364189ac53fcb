package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"typesift/internal/utils"
	"typesift/pkg/completion"
	"typesift/pkg/config"
	"typesift/pkg/core"
)

// ServerVersion is reported by the info op.
const ServerVersion = "0.3.0"

// Server handles the IPC for typed completion queries against one
// loaded snapshot.
type Server struct {
	table    *core.Table
	resolver *completion.Resolver
	cfg      *config.Config
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(table *core.Table, resolver *completion.Resolver, cfg *config.Config) *Server {
	return NewServerIO(table, resolver, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server over explicit streams, mainly for tests.
func NewServerIO(table *core.Table, resolver *completion.Resolver, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		table:    table,
		resolver: resolver,
		cfg:      cfg,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting server.")

	s.send(InfoResponse{Status: "ready", Symbols: s.table.Len(), Version: ServerVersion})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(request Request) {
	switch request.Op {
	case "complete":
		s.handleComplete(request)
	case "constants":
		s.handleConstants(request)
	case "symbols":
		s.handleSymbols(request)
	case "info":
		s.send(InfoResponse{
			ID:      request.ID,
			Status:  "ok",
			Symbols: s.table.Len(),
			Files:   len(s.table.SourceFiles()),
			Version: ServerVersion,
		})
	case "health":
		s.send(InfoResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// send marshals a response and writes it to the client.
func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

// validatePrefix applies the configured prefix bounds. The prefix may
// be empty (completion right after the dot); non-empty prefixes must
// look like identifiers.
func (s *Server) validatePrefix(request Request) (string, bool) {
	prefix := request.Prefix
	if len(prefix) < s.cfg.Server.MinPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix must be at least %d characters", s.cfg.Server.MinPrefix), 400)
		return "", false
	}
	if len(prefix) > s.cfg.Server.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.cfg.Server.MaxPrefix), 400)
		return "", false
	}
	if prefix != "" && !utils.IsValidInput(prefix) {
		s.sendError(request.ID, fmt.Sprintf("Prefix %q is not a valid identifier", prefix), 400)
		return "", false
	}
	return prefix, true
}

func (s *Server) limit(request Request) int {
	limit := request.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}
	return limit
}

// handleComplete runs the method-call completion path. The receiver
// arrives as a fully qualified class name; unknown receivers are a
// normal empty result, not an error.
func (s *Server) handleComplete(request Request) {
	prefix, ok := s.validatePrefix(request)
	if !ok {
		return
	}

	start := time.Now()
	var items []completion.Item
	if recv := s.table.Lookup(request.Receiver); recv != nil && recv.IsClassOrModule() {
		dispatch := &core.DispatchResult{
			Main: core.DispatchComponent{Receiver: core.ClassType{Sym: recv}},
		}
		var err error
		items, err = s.resolver.CompleteCall(dispatch, prefix)
		if err != nil {
			log.Errorf("Resolving completion for %q.%q: %v", request.Receiver, prefix, err)
			s.sendError(request.ID, "Internal server error", 500)
			return
		}
	} else {
		log.Debug("Unknown or non-class receiver", "recv", request.Receiver)
	}
	elapsed := time.Since(start)

	items = capItems(items, s.limit(request))
	s.send(CompleteResponse{
		ID:        request.ID,
		Items:     payload(items),
		Count:     len(items),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleConstants runs the lexical-scope constant path.
func (s *Server) handleConstants(request Request) {
	prefix, ok := s.validatePrefix(request)
	if !ok {
		return
	}

	start := time.Now()
	var items []completion.Item
	if recv := s.table.Lookup(request.Receiver); recv != nil && recv.IsClassOrModule() {
		items = s.resolver.SimilarConstants(core.ClassType{Sym: recv}, prefix)
	}
	elapsed := time.Since(start)

	items = capItems(items, s.limit(request))
	s.send(CompleteResponse{
		ID:        request.ID,
		Items:     payload(items),
		Count:     len(items),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleSymbols lists fully qualified names from the snapshot's name
// index, in trie order.
func (s *Server) handleSymbols(request Request) {
	start := time.Now()
	limit := s.limit(request)

	names := make([]string, 0, limit)
	err := s.table.VisitNames(request.Prefix, func(name string, sym *core.Symbol) error {
		if len(names) >= limit {
			return errStopVisit
		}
		names = append(names, name)
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Errorf("Visiting symbol names: %v", err)
		s.sendError(request.ID, "Internal server error", 500)
		return
	}
	elapsed := time.Since(start)

	s.send(SymbolsResponse{
		ID:        request.ID,
		Names:     names,
		Count:     len(names),
		TimeTaken: elapsed.Microseconds(),
	})
}

var errStopVisit = errors.New("stop visit")

func capItems(items []completion.Item, limit int) []completion.Item {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func payload(items []completion.Item) []ItemPayload {
	out := make([]ItemPayload, len(items))
	for i, item := range items {
		out[i] = ItemPayload{
			Label:      item.Label,
			Kind:       item.Kind.String(),
			SortText:   item.SortText,
			Detail:     item.Detail,
			Insert:     item.InsertText,
			Snippet:    item.InsertFormat == completion.Snippet,
			Doc:        item.Documentation,
			MarkupKind: item.MarkupKind,
			Deprecated: item.Deprecated,
		}
	}
	return out
}
