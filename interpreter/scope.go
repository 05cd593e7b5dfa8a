package interpreter

import (
	"sort"

	"github.com/teksel-io/teksel/object"
)

// scopes stores variables for every live block. Each function activation
// owns the scopes from base to the end of the arena. Suspended activations
// keep their scopes below base and are invisible until the callee returns.
type scopes struct {
	arena []map[string]object.Value
	base  int
	saved []int
}

func (s *scopes) pushBlock() {
	s.arena = append(s.arena, map[string]object.Value{})
}

func (s *scopes) popBlock() {
	s.arena[len(s.arena)-1] = nil
	s.arena = s.arena[:len(s.arena)-1]
}

// enterFunction starts an activation whose first scope holds vars.
func (s *scopes) enterFunction(vars map[string]object.Value) {
	s.saved = append(s.saved, s.base)
	s.base = len(s.arena)
	s.arena = append(s.arena, vars)
}

// exitFunction discards every scope of the current activation.
func (s *scopes) exitFunction() {
	for i := s.base; i < len(s.arena); i++ {
		s.arena[i] = nil
	}
	s.arena = s.arena[:s.base]
	s.base = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// get looks a name up from the innermost scope of the current activation
// outward.
func (s *scopes) get(name string) (object.Value, bool) {
	for i := len(s.arena) - 1; i >= s.base; i-- {
		if v, ok := s.arena[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// set overwrites name in the scope that already holds it, or creates it in
// the innermost scope.
func (s *scopes) set(name string, value object.Value) {
	for i := len(s.arena) - 1; i >= s.base; i-- {
		if _, ok := s.arena[i][name]; ok {
			s.arena[i][name] = value
			return
		}
	}
	s.arena[len(s.arena)-1][name] = value
}

// names returns the variables visible in the current activation.
func (s *scopes) names() []string {
	seen := map[string]bool{}
	var names []string
	for i := s.base; i < len(s.arena); i++ {
		for name := range s.arena[i] {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// depth returns the number of live scopes across all activations.
func (s *scopes) depth() int {
	return len(s.arena)
}
