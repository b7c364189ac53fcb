// Package cli handles cmd line input and ranked suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"typesift/internal/utils"
	"typesift/pkg/completion"
	"typesift/pkg/core"
)

// InputHandler processes queries from stdin, providing ranked
// completion items for a `Receiver prefix` pair per line. It accepts
// limits and prefix bounds mirroring the server's validation.
type InputHandler struct {
	resolver        *completion.Resolver
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(resolver *completion.Resolver, minLength, maxLength, limit int) *InputHandler {
	return &InputHandler{
		resolver:        resolver,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
	}
}

// Start begins the interface loop.
// Each line is `Fully::Qualified::Receiver prefix`; the prefix may be
// omitted to list everything reachable on the receiver. A leading `::`
// switches to constant completion in the receiver's lexical scope.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("typesift CLI [DBG]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("enter `Receiver prefix` (or `Receiver ::prefix` for constants, Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput processes a single query line, resolves it and prints
// the ranked items with kind and detail info.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	fields := strings.Fields(line)
	receiverName := fields[0]
	prefix := ""
	if len(fields) > 1 {
		prefix = fields[1]
	}

	constantMode := strings.HasPrefix(prefix, "::")
	prefix = strings.TrimPrefix(prefix, "::")

	if len(prefix) < h.minPrefixLength {
		log.Errorf("Prefix too short: %q", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %q", prefix)
		return
	}
	if prefix != "" && !utils.IsValidInput(prefix) {
		log.Warnf("No results for prefix %q (not an identifier)", prefix)
		return
	}

	recv := h.resolver.Table().Lookup(receiverName)
	if recv == nil || !recv.IsClassOrModule() {
		log.Warnf("Unknown receiver: %s", receiverName)
		return
	}

	start := time.Now()
	var items []completion.Item
	var err error
	if constantMode {
		items = h.resolver.SimilarConstants(core.ClassType{Sym: recv}, prefix)
	} else {
		dispatch := &core.DispatchResult{
			Main: core.DispatchComponent{Receiver: core.ClassType{Sym: recv}},
		}
		items, err = h.resolver.CompleteCall(dispatch, prefix)
	}
	elapsed := time.Since(start)

	if err != nil {
		log.Errorf("Resolution failed: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for %s %q", elapsed, receiverName, prefix)

	if len(items) == 0 {
		log.Warnf("No completions found for %s %q", receiverName, prefix)
		return
	}
	if len(items) > h.suggestLimit {
		items = items[:h.suggestLimit]
	}

	log.Printf("Found %d completions for %s %q:", len(items), receiverName, prefix)
	for i, item := range items {
		clLabel := fmt.Sprintf("\033[38;5;75m%s\033[0m", item.Label)
		log.Printf("%2d. %-40s %-8s %s", i+1, clLabel, item.Kind, item.Detail)
	}
}
