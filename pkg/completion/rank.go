package completion

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"typesift/pkg/core"
)

// CompleteCall resolves a method-call completion query: every
// candidate similar to prefix on every component of the dispatch
// chain, deduplicated per name to the nearest-ancestor definition and
// returned in one deterministic presentation order.
func (r *Resolver) CompleteCall(dr *core.DispatchResult, prefix string) ([]Item, error) {
	byName, err := r.allSimilar(dr, prefix)
	if err != nil {
		return nil, err
	}

	deduped := dedupeByName(byName)
	sortGlobal(deduped, prefix)

	items := make([]Item, 0, len(deduped))
	for i, c := range deduped {
		items = append(items, r.buildItem(c.method, c.receiverType, c.constr, i))
	}
	log.Debug("resolved call completion", "prefix", prefix, "names", len(byName), "items", len(items))
	return items, nil
}

// dedupeByName keeps one candidate per surviving name. Each name's
// list is sorted by (depth, method ID) first, so taking the head picks
// the nearest-ancestor definition; rename-mangled names are dropped
// entirely since they are compiler bookkeeping, not user-visible
// overloads (real overloads keep their own distinct names).
func dedupeByName(byName candidatesByName) []candidate {
	deduped := make([]candidate, 0, len(byName))
	for _, cands := range byName {
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].depth != cands[j].depth {
				return cands[i].depth < cands[j].depth
			}
			return cands[i].method.ID() < cands[j].method.ID()
		})

		if cands[0].method.IsMangled() {
			continue
		}
		deduped = append(deduped, cands[0])
	}
	return deduped
}

// sortGlobal orders the deduplicated sequence for presentation:
// nearest depth first, then names with a raw prefix match before
// fuzzy-only matches, then alphabetical, with method ID as the final
// tie-break so the order is a strict total order.
func sortGlobal(deduped []candidate, prefix string) {
	sort.Slice(deduped, func(i, j int) bool {
		left, right := deduped[i], deduped[j]
		if left.depth != right.depth {
			return left.depth < right.depth
		}

		leftName, rightName := left.method.Name, right.method.Name
		if leftName != rightName {
			leftExact := strings.HasPrefix(leftName, prefix)
			rightExact := strings.HasPrefix(rightName, prefix)
			if leftExact != rightExact {
				return leftExact
			}
			return leftName < rightName
		}

		return left.method.ID() < right.method.ID()
	})
}
