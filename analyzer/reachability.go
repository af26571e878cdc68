package analyzer

import (
	"sort"

	"github.com/viant/entrysplit/analyzer/binding"
	"github.com/viant/entrysplit/syntax"
)

// Set is an unordered set of bindings.
type Set struct {
	members map[*binding.Binding]bool
}

// NewSet creates a set holding the given bindings.
func NewSet(bindings ...*binding.Binding) *Set {
	result := &Set{members: map[*binding.Binding]bool{}}
	for _, b := range bindings {
		result.Add(b)
	}
	return result
}

// Add inserts b and reports whether it was absent.
func (s *Set) Add(b *binding.Binding) bool {
	if s.members[b] {
		return false
	}
	s.members[b] = true
	return true
}

// Has reports membership.
func (s *Set) Has(b *binding.Binding) bool {
	return s != nil && s.members[b]
}

// Len returns the set size.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Union returns a new set holding the members of both sets.
func (s *Set) Union(other *Set) *Set {
	result := NewSet()
	for b := range s.members {
		result.Add(b)
	}
	if other != nil {
		for b := range other.members {
			result.Add(b)
		}
	}
	return result
}

// Bindings lists members in declaration order.
func (s *Set) Bindings() []*binding.Binding {
	result := make([]*binding.Binding, 0, s.Len())
	for b := range s.members {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Identifier.Index < result[j].Identifier.Index
	})
	return result
}

// Names lists member names in declaration order.
func (s *Set) Names() []string {
	var result []string
	for _, b := range s.Bindings() {
		result = append(result, b.Name)
	}
	return result
}

// Closure returns every binding the seeds transitively require. A binding is
// required when one of its references lies under a seed and it is declared
// outside that seed; its declaring unit then becomes a seed itself. Visited
// declarations are tracked so self and mutual recursion terminate.
func (m *Model) Closure(seeds ...*syntax.Node) *Set {
	result := NewSet()
	visited := map[*syntax.Node]bool{}
	queue := make([]*syntax.Node, 0, len(seeds))
	for _, seed := range seeds {
		if seed != nil {
			queue = append(queue, seed)
		}
	}
	for len(queue) > 0 {
		seed := queue[0]
		queue = queue[1:]
		if visited[seed] {
			continue
		}
		visited[seed] = true
		for _, ref := range m.ReferencesWithin(seed) {
			target := ref.Binding
			if seed.Contains(target.Identifier) {
				continue
			}
			if !result.Add(target) {
				continue
			}
			for _, declaration := range target.Declarations {
				if !visited[declaration] {
					queue = append(queue, declaration)
				}
			}
		}
	}
	return result
}

// ExclusiveTo reports whether every reference of b lies under one of the
// regions. References from inside b's own declarations do not count.
func (m *Model) ExclusiveTo(b *binding.Binding, regions ...*syntax.Node) bool {
	for _, ref := range b.References {
		if b.Declares(ref.Node) {
			continue
		}
		if !within(ref.Node, regions) {
			return false
		}
	}
	return true
}

func within(node *syntax.Node, regions []*syntax.Node) bool {
	for _, region := range regions {
		if region.Contains(node) {
			return true
		}
	}
	return false
}
