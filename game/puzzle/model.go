package puzzle

// Model tracks which piece occupies which cell
type Model struct {
	config *Config
	cells  [][]*Piece
	pieces []*Piece
}

// NewModel creates a model for the given configuration
func NewModel(config *Config) (*Model, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	m := &Model{config: config}
	m.Reset()
	return m, nil
}

// Reset rebuilds the board and every piece. Pieces handed out before the
// reset no longer belong to the model.
func (m *Model) Reset() {
	n := m.config.GridSize
	m.cells = make([][]*Piece, n)
	for row := range m.cells {
		m.cells[row] = make([]*Piece, n)
	}

	m.pieces = make([]*Piece, 0, len(m.config.Pieces))
	for _, pc := range m.config.Pieces {
		m.pieces = append(m.pieces, &Piece{
			ID:    pc.ID,
			Image: pc.Image,
			Home:  pc.Home,
		})
	}
}

// CanPlace reports whether the piece may go into (row, col)
func (m *Model) CanPlace(piece *Piece, row, col int) bool {
	if !m.owns(piece) || !m.inBounds(row, col) {
		return false
	}
	if m.cells[row][col] != nil {
		return false
	}
	return piece.Home.Row == row && piece.Home.Col == col
}

// Place commits the piece into (row, col) if CanPlace allows it
func (m *Model) Place(piece *Piece, row, col int) bool {
	if !m.CanPlace(piece, row, col) {
		return false
	}

	m.cells[row][col] = piece
	piece.Placed = true
	piece.Current = &Slot{Row: row, Col: col}
	return true
}

// Remove takes a placed piece off the board
func (m *Model) Remove(piece *Piece) {
	if !m.owns(piece) || piece.Current == nil {
		return
	}

	slot := *piece.Current
	if m.inBounds(slot.Row, slot.Col) && m.cells[slot.Row][slot.Col] == piece {
		m.cells[slot.Row][slot.Col] = nil
	}
	piece.Placed = false
	piece.Current = nil
}

// IsComplete reports whether every piece is placed
func (m *Model) IsComplete() bool {
	for _, p := range m.pieces {
		if !p.Placed {
			return false
		}
	}
	return true
}

// Config returns the configuration the model was built from
func (m *Model) Config() *Config {
	return m.config
}

// GridSize returns the board dimension
func (m *Model) GridSize() int {
	return m.config.GridSize
}

// Pieces returns the pieces in configuration (tray) order
func (m *Model) Pieces() []*Piece {
	return m.pieces
}

// Piece returns the piece with the given id, or nil
func (m *Model) Piece(id int) *Piece {
	for _, p := range m.pieces {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PieceIndex returns the tray index of the piece with the given id, or -1
func (m *Model) PieceIndex(id int) int {
	for i, p := range m.pieces {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// OccupantAt returns the piece in (row, col), or nil
func (m *Model) OccupantAt(row, col int) *Piece {
	if !m.inBounds(row, col) {
		return nil
	}
	return m.cells[row][col]
}

// HomeOf returns the piece whose home is (row, col), or nil
func (m *Model) HomeOf(row, col int) *Piece {
	for _, p := range m.pieces {
		if p.Home.Row == row && p.Home.Col == col {
			return p
		}
	}
	return nil
}

// FirstUnplaced returns the first piece in tray order that is not placed
func (m *Model) FirstUnplaced() *Piece {
	for _, p := range m.pieces {
		if !p.Placed {
			return p
		}
	}
	return nil
}

// PlacedCount returns the number of placed pieces
func (m *Model) PlacedCount() int {
	count := 0
	for _, p := range m.pieces {
		if p.Placed {
			count++
		}
	}
	return count
}

// Remaining returns the number of pieces still in the tray
func (m *Model) Remaining() int {
	return len(m.pieces) - m.PlacedCount()
}

// Snapshot returns a deep copy of the model state
func (m *Model) Snapshot() *State {
	n := m.config.GridSize
	state := &State{
		ConfigName: m.config.Name,
		GridSize:   n,
		Cells:      make([][]int, n),
		Pieces:     make([]PieceState, 0, len(m.pieces)),
		Total:      len(m.pieces),
	}

	for row := 0; row < n; row++ {
		state.Cells[row] = make([]int, n)
		for col := 0; col < n; col++ {
			if p := m.cells[row][col]; p != nil {
				state.Cells[row][col] = p.ID
			}
		}
	}

	for _, p := range m.pieces {
		ps := PieceState{
			ID:     p.ID,
			Image:  p.Image,
			Home:   p.Home,
			Placed: p.Placed,
		}
		if p.Current != nil {
			slot := *p.Current
			ps.Current = &slot
		}
		if p.Placed {
			state.Placed++
		}
		state.Pieces = append(state.Pieces, ps)
	}
	state.Complete = state.Placed == state.Total

	return state
}

func (m *Model) inBounds(row, col int) bool {
	n := m.config.GridSize
	return row >= 0 && row < n && col >= 0 && col < n
}

// owns guards against pieces from a previous Reset or another model
func (m *Model) owns(piece *Piece) bool {
	if piece == nil {
		return false
	}
	for _, p := range m.pieces {
		if p == piece {
			return true
		}
	}
	return false
}
