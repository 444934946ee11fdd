package game

// Random is the only source of non-determinism in the game. *rand.Rand
// satisfies it; tests can substitute a scripted sequence.
type Random interface {
	Float64() float64
}

// TargetMap holds the per-cell target flags for the stage.
type TargetMap [GridRows][GridCols]bool

// Reset clears every cell.
func (m *TargetMap) Reset() {
	*m = TargetMap{}
}

// IsTarget reports whether the cell at (row, col) is a live target.
func (m TargetMap) IsTarget(row, col int) bool {
	return m[row][col]
}

// Set marks (row, col) as a target.
func (m *TargetMap) Set(row, col int) {
	m[row][col] = true
}

// Clear empties (row, col).
func (m *TargetMap) Clear(row, col int) {
	m[row][col] = false
}

// Count returns the number of live targets.
func (m TargetMap) Count() int {
	n := 0
	for row := range m {
		for col := range m[row] {
			if m[row][col] {
				n++
			}
		}
	}
	return n
}

// Cells lists the live targets in row-major order.
func (m TargetMap) Cells() []CellRef {
	var out []CellRef
	for row := range m {
		for col := range m[row] {
			if m[row][col] {
				out = append(out, CellRef{Row: row, Col: col})
			}
		}
	}
	return out
}

// Place resets the map and then runs an independent Bernoulli trial per
// cell: a draw at or below PlaceProbability makes that cell a target. A round
// with no targets at all is a legal outcome. It returns the number placed.
func (m *TargetMap) Place(rng Random) int {
	m.Reset()
	placed := 0
	for row := range m {
		for col := range m[row] {
			if rng.Float64() > PlaceProbability {
				continue
			}
			m[row][col] = true
			placed++
		}
	}
	return placed
}
