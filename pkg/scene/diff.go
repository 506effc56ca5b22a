package scene

// Patch describes how one body differs from the next.
type Patch struct {
	Added   []*Cell
	Removed []*Cell
	Kept    []*Cell

	RowsBefore int
	RowsAfter  int
}

// Empty reports whether the two bodies hold the same cells in the same
// number of rows.
func (p Patch) Empty() bool {
	return len(p.Added) == 0 && len(p.Removed) == 0 && p.RowsBefore == p.RowsAfter
}

// Diff compares two bodies by cell identity. Either body may be nil.
func Diff(old, next *Body) Patch {
	p := Patch{}
	prev := make(map[*Cell]bool)
	if old != nil {
		p.RowsBefore = len(old.Rows)
		for _, c := range old.Cells() {
			prev[c] = true
		}
	}
	if next != nil {
		p.RowsAfter = len(next.Rows)
		for _, c := range next.Cells() {
			if prev[c] {
				p.Kept = append(p.Kept, c)
				delete(prev, c)
			} else {
				p.Added = append(p.Added, c)
			}
		}
	}
	if old != nil {
		for _, c := range old.Cells() {
			if prev[c] {
				p.Removed = append(p.Removed, c)
			}
		}
	}
	return p
}
