package gesture

import (
	"sort"

	"github.com/entrhq/strokes/pkg/types"
)

// ActionMap maps serialized patterns to actions.
type ActionMap map[string]types.Action

// DefaultActionMap returns the stock gesture bindings.
func DefaultActionMap() ActionMap {
	return ActionMap{
		"L":  types.ActionBack,
		"R":  types.ActionForward,
		"U":  types.ActionTop,
		"D":  types.ActionBottom,
		"UD": types.ActionReload,
		"DR": types.ActionCloseTab,
		"DL": types.ActionNewTab,
	}
}

// NewActionMap builds a map from raw pattern/action names. Keys are
// canonicalized through ParsePattern; entries with unparsable patterns or
// actions outside the vocabulary are returned in dropped, sorted.
func NewActionMap(raw map[string]string) (m ActionMap, dropped []string) {
	m = make(ActionMap, len(raw))
	for k, v := range raw {
		key, err := CanonicalKey(k)
		if err != nil || key == "" {
			dropped = append(dropped, k)
			continue
		}
		action, ok := types.ParseAction(v)
		if !ok {
			dropped = append(dropped, k)
			continue
		}
		m[key] = action
	}
	sort.Strings(dropped)
	return m, dropped
}

// Lookup returns the action bound to p. Unmapped patterns and patterns bound
// to the empty action report false.
func (m ActionMap) Lookup(p Pattern) (types.Action, bool) {
	if p.IsEmpty() {
		return types.ActionNone, false
	}
	a, ok := m[p.String()]
	if !ok || a == types.ActionNone {
		return types.ActionNone, false
	}
	return a, true
}

// Clone returns an independent copy.
func (m ActionMap) Clone() ActionMap {
	out := make(ActionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
