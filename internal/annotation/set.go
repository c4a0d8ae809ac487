package annotation

// Set is the ordered collection of boxes for one image. Order is
// insertion order; later boxes draw on top and win hit tests.
type Set struct {
	boxes []Box
}

// NewSet returns a set pre-populated with the given boxes.
func NewSet(boxes ...Box) *Set {
	s := &Set{}
	s.boxes = append(s.boxes, boxes...)
	return s
}

func (s *Set) Len() int { return len(s.boxes) }

// At returns the box at index i. ok is false when i is out of range.
func (s *Set) At(i int) (Box, bool) {
	if i < 0 || i >= len(s.boxes) {
		return Box{}, false
	}
	return s.boxes[i], true
}

// Boxes returns a copy of the boxes in draw order.
func (s *Set) Boxes() []Box {
	out := make([]Box, len(s.boxes))
	copy(out, s.boxes)
	return out
}

// Add appends a box and returns its index. The box is normalized
// first; a zero-area box is rejected and -1 returned.
func (s *Set) Add(b Box) int {
	b = b.Normalized()
	if b.Width() <= 0 || b.Height() <= 0 {
		return -1
	}
	s.boxes = append(s.boxes, b)
	return len(s.boxes) - 1
}

// Remove deletes the box at index i, preserving the order of the rest.
func (s *Set) Remove(i int) bool {
	if i < 0 || i >= len(s.boxes) {
		return false
	}
	s.boxes = append(s.boxes[:i], s.boxes[i+1:]...)
	return true
}

// Update replaces the box at index i, applying the same
// normalization and zero-area rejection as Add.
func (s *Set) Update(i int, b Box) bool {
	if i < 0 || i >= len(s.boxes) {
		return false
	}
	b = b.Normalized()
	if b.Width() <= 0 || b.Height() <= 0 {
		return false
	}
	s.boxes[i] = b
	return true
}

// FindAt returns the index of the topmost box containing the image
// point (x, y), or -1. Topmost means last in draw order, so the most
// recently added box wins when boxes overlap.
func (s *Set) FindAt(x, y float64) int {
	for i := len(s.boxes) - 1; i >= 0; i-- {
		if s.boxes[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// FindHandleAt searches boxes from topmost down for a corner handle
// within tol of (x, y). It returns the box index and the handle, or
// (-1, HandleNone).
func (s *Set) FindHandleAt(x, y, tol float64) (int, Handle) {
	for i := len(s.boxes) - 1; i >= 0; i-- {
		if h := s.boxes[i].HandleAt(x, y, tol); h != HandleNone {
			return i, h
		}
	}
	return -1, HandleNone
}

// Clone returns a deep copy. History snapshots rely on clones being
// fully independent of the live set.
func (s *Set) Clone() *Set {
	return NewSet(s.boxes...)
}
