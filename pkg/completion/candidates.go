package completion

import "typesift/pkg/core"

// candidate is one tentative match, tagged with the ancestor depth it
// was found at. receiverType and constr are stamped exactly once by
// allSimilar right after the candidate group is produced; candidates
// are call-scoped and rebuilt fresh at every recursion level.
type candidate struct {
	depth    int
	ancestor *core.Symbol
	method   *core.Symbol

	// Populated later
	receiverType core.Type
	constr       *core.TypeConstraint
}

type candidatesByName map[string][]candidate

// similarForClass scans the ancestor chain of recv for method members
// similar to prefix. Depth 0 is the receiver itself.
func (r *Resolver) similarForClass(recv *core.Symbol, prefix string) (candidatesByName, error) {
	ancestors, err := Ancestors(recv)
	if err != nil {
		return nil, err
	}

	result := candidatesByName{}
	for depth, ancestor := range ancestors {
		for _, member := range ancestor.Members() {
			if !member.IsMethod() {
				continue
			}
			if r.matcher.Similar(member.Name, prefix) {
				result[member.Name] = append(result[member.Name], candidate{
					depth:    depth,
					ancestor: ancestor,
					method:   member,
				})
			}
		}
	}
	return result, nil
}

// mergeCandidates unconditionally intersects by name: a call is only
// valid against union and intersection receivers alike if the name
// resolves on every component. Lists for surviving names concatenate,
// left before right, without deduplication.
func mergeCandidates(left, right candidatesByName) candidatesByName {
	result := candidatesByName{}
	for name, ls := range left {
		rs, ok := right[name]
		if !ok {
			continue
		}
		merged := make([]candidate, 0, len(ls)+len(rs))
		merged = append(merged, ls...)
		merged = append(merged, rs...)
		result[name] = merged
	}
	return result
}

// similarForType reduces an algebraic receiver type to class scans.
// OrType deliberately falls through to the empty default: union
// alternatives reach us as dispatch components, not as bare types.
func (r *Resolver) similarForType(t core.Type, prefix string) (candidatesByName, error) {
	switch t := t.(type) {
	case core.ClassType:
		return r.similarForClass(t.Sym, prefix)
	case core.AppliedType:
		return r.similarForClass(t.Sym, prefix)
	case core.AndType:
		left, err := r.similarForType(t.Left, prefix)
		if err != nil {
			return nil, err
		}
		right, err := r.similarForType(t.Right, prefix)
		if err != nil {
			return nil, err
		}
		return mergeCandidates(left, right), nil
	case core.ProxyType:
		return r.similarForType(t.Underlying, prefix)
	default:
		return candidatesByName{}, nil
	}
}

// allSimilar walks a dispatch result chain, stamping every candidate
// of each component with that component's receiver type and shared
// constraint handle before merging.
func (r *Resolver) allSimilar(dr *core.DispatchResult, prefix string) (candidatesByName, error) {
	result, err := r.similarForType(dr.Main.Receiver, prefix)
	if err != nil {
		return nil, err
	}

	for name, cands := range result {
		for i := range cands {
			if cands[i].receiverType != nil {
				return nil, internalf("about to overwrite non-nil receiver type on candidate %q", name)
			}
			cands[i].receiverType = dr.Main.Receiver

			if cands[i].constr != nil {
				return nil, internalf("about to overwrite non-nil constraint on candidate %q", name)
			}
			cands[i].constr = dr.Main.Constraint
		}
	}

	if dr.Secondary != nil {
		// The secondary kind (AND or OR) is ignored here on purpose;
		// every chain link intersects. See mergeCandidates.
		secondary, err := r.allSimilar(dr.Secondary, prefix)
		if err != nil {
			return nil, err
		}
		result = mergeCandidates(result, secondary)
	}
	return result, nil
}
