package zertz

import "fmt"

// Pile is an ordered set of ball IDs with a reverse index.
// Insertion order is kept for every ID that remains. Add and Remove never
// write to storage they did not allocate, so a plain copy of a Pile stays
// unaffected by later changes to the other.
type Pile struct {
	ids   []BallID
	index map[BallID]int
}

// NewPile creates an empty pile.
func NewPile() Pile {
	return Pile{index: make(map[BallID]int)}
}

// Add appends id to the end of the pile.
// Returns an error if id is already in the pile.
func (p *Pile) Add(id BallID) error {
	if _, ok := p.index[id]; ok {
		return fmt.Errorf("pile: ball %d already present", id)
	}
	ids := make([]BallID, len(p.ids), len(p.ids)+1)
	copy(ids, p.ids)
	p.ids = append(ids, id)
	p.rebuildIndex()
	return nil
}

// Remove erases id from the pile.
// Returns an error if id is not in the pile.
func (p *Pile) Remove(id BallID) error {
	i, ok := p.index[id]
	if !ok {
		return fmt.Errorf("pile: ball %d not present", id)
	}
	ids := make([]BallID, 0, len(p.ids)-1)
	ids = append(ids, p.ids[:i]...)
	p.ids = append(ids, p.ids[i+1:]...)
	p.rebuildIndex()
	return nil
}

// IndexOf returns the position of id in the pile.
func (p Pile) IndexOf(id BallID) (int, bool) {
	i, ok := p.index[id]
	return i, ok
}

// Contains reports whether id is in the pile.
func (p Pile) Contains(id BallID) bool {
	_, ok := p.index[id]
	return ok
}

// Len returns the number of balls in the pile.
func (p Pile) Len() int {
	return len(p.ids)
}

// IDs returns a copy of the ball IDs in insertion order.
func (p Pile) IDs() []BallID {
	out := make([]BallID, len(p.ids))
	copy(out, p.ids)
	return out
}

// Clone returns a deep copy of the pile.
func (p Pile) Clone() Pile {
	c := Pile{
		ids:   p.IDs(),
		index: make(map[BallID]int, len(p.index)),
	}
	for id, i := range p.index {
		c.index[id] = i
	}
	return c
}

// Equal reports whether two piles hold the same IDs in the same order.
func (p Pile) Equal(other Pile) bool {
	if len(p.ids) != len(other.ids) {
		return false
	}
	for i, id := range p.ids {
		if other.ids[i] != id {
			return false
		}
	}
	return true
}

// rebuildIndex replaces the reverse index with a fresh one built from the
// ordered list. Piles hold a few dozen balls at most.
func (p *Pile) rebuildIndex() {
	index := make(map[BallID]int, len(p.ids))
	for i, id := range p.ids {
		index[id] = i
	}
	p.index = index
}

// validate checks that the reverse index matches the ordered list.
func (p Pile) validate() error {
	if len(p.index) != len(p.ids) {
		return fmt.Errorf("pile: index has %d entries for %d balls", len(p.index), len(p.ids))
	}
	for i, id := range p.ids {
		if j, ok := p.index[id]; !ok || j != i {
			return fmt.Errorf("pile: ball %d at %d indexed as %d", id, i, j)
		}
	}
	return nil
}
