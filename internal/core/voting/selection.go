package voting

import "Brnd/internal/core/brands"

// Selection is the mutable pre-submission podium: an ordered sequence of up
// to three distinct brands (index 0 = 1st place). It becomes immutable once
// the vote is submitted.
type Selection struct {
	picks []brands.Brand
}

// Add appends a brand to the next open podium place.
func (s *Selection) Add(b brands.Brand) error {
	if len(s.picks) >= 3 {
		return ErrSelectionFull
	}
	for _, p := range s.picks {
		if p.ID == b.ID {
			return ErrBrandAlreadySelected
		}
	}
	s.picks = append(s.picks, b)
	return nil
}

// Remove takes a brand off the podium; later places shift up.
func (s *Selection) Remove(brandID int) {
	for i, p := range s.picks {
		if p.ID == brandID {
			s.picks = append(s.picks[:i], s.picks[i+1:]...)
			return
		}
	}
}

// Set replaces the whole podium at once. Length and duplicate checks are
// deferred to Validate so a partial podium can be staged.
func (s *Selection) Set(picks []brands.Brand) {
	s.picks = append([]brands.Brand(nil), picks...)
}

// Brands returns the current podium in rank order.
func (s *Selection) Brands() []brands.Brand {
	return append([]brands.Brand(nil), s.picks...)
}

// Len returns the number of filled podium places.
func (s *Selection) Len() int {
	return len(s.picks)
}

// Validate enforces the submission preconditions: exactly three places
// filled, all distinct.
func (s *Selection) Validate() error {
	if len(s.picks) != 3 {
		return ErrInvalidSelection
	}
	seen := make(map[int]struct{}, 3)
	for _, p := range s.picks {
		if _, dup := seen[p.ID]; dup {
			return ErrDuplicateSelection
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// IDs returns the three brand ids in rank order. Only valid after Validate.
func (s *Selection) IDs() [3]int {
	var ids [3]int
	for i := 0; i < 3 && i < len(s.picks); i++ {
		ids[i] = s.picks[i].ID
	}
	return ids
}
