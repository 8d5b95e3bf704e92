// Package economy provides the village resource kinds and the shared stockpile.
package economy

import "fmt"

// Resource enumerates the pooled village resources.
type Resource uint8

const (
	Food Resource = iota
	Wood
	Metal
)

// NumResources is the total number of resource kinds.
const NumResources = 3

var resourceNames = [NumResources]string{"food", "wood", "metal"}

// String returns the lower-case resource name.
func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return fmt.Sprintf("resource(%d)", r)
}

// ParseResource maps a resource name back to its kind.
func ParseResource(name string) (Resource, bool) {
	for i, n := range resourceNames {
		if n == name {
			return Resource(i), true
		}
	}
	return 0, false
}

// Stockpile holds the village's shared pools. Quantities are never negative.
type Stockpile struct {
	Food  int `json:"food"`
	Wood  int `json:"wood"`
	Metal int `json:"metal"`
}

func (s *Stockpile) slot(r Resource) *int {
	switch r {
	case Food:
		return &s.Food
	case Wood:
		return &s.Wood
	case Metal:
		return &s.Metal
	}
	return nil
}

// Get returns the quantity of r.
func (s Stockpile) Get(r Resource) int {
	if p := s.slot(r); p != nil {
		return *p
	}
	return 0
}

// Has reports whether at least n units of r are available.
func (s Stockpile) Has(r Resource, n int) bool {
	return s.Get(r) >= n
}

// Add puts n units of r into the pool. Negative amounts are ignored.
func (s *Stockpile) Add(r Resource, n int) {
	if n <= 0 {
		return
	}
	if p := s.slot(r); p != nil {
		*p += n
	}
}

// Take removes n units of r if they are all available. Partial draws never happen.
func (s *Stockpile) Take(r Resource, n int) bool {
	p := s.slot(r)
	if p == nil || n < 0 || *p < n {
		return false
	}
	*p -= n
	return true
}

// Afford reports whether the pool covers a wood and metal cost.
func (s Stockpile) Afford(wood, metal int) bool {
	return s.Wood >= wood && s.Metal >= metal
}

// Spend deducts a wood and metal cost atomically. Returns false and leaves
// the pool unchanged when either resource is short.
func (s *Stockpile) Spend(wood, metal int) bool {
	if wood < 0 || metal < 0 || !s.Afford(wood, metal) {
		return false
	}
	s.Wood -= wood
	s.Metal -= metal
	return true
}

// Clamp zeroes any negative pool. Pools only go negative when a caller
// writes the fields directly.
func (s *Stockpile) Clamp() {
	for r := Resource(0); r < NumResources; r++ {
		if p := s.slot(r); *p < 0 {
			*p = 0
		}
	}
}
