// Package label mints unique assembly label names for the code
// generator. It is process-lifetime, single-threaded state: one
// counter, shared by every function the generator emits.
package label

import "fmt"

// Supplier hands out unique label names.
type Supplier struct {
	next int
}

// New creates a Supplier starting at zero.
func New() *Supplier {
	return &Supplier{}
}

// Next mints a new label of the form ".L<prefix><n>", e.g. ".Lif3".
func (s *Supplier) Next(prefix string) string {
	n := s.next
	s.next++
	return fmt.Sprintf(".L%s%d", prefix, n)
}
