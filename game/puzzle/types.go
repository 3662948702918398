package puzzle

const (
	// The shipped game is a fixed 4x4 board with four pieces.
	GridSize   = 4
	PieceCount = 4

	MinBoardSize = 1
	MaxBoardSize = 4096
)

// Slot is a (row, col) coordinate on the board
type Slot struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Offset is a pixel nudge applied to a snapped piece
type Offset struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Piece is a single jigsaw piece and its placement state
type Piece struct {
	ID      int    `json:"id"`
	Image   string `json:"image"`
	Home    Slot   `json:"home"`
	Placed  bool   `json:"placed"`
	Current *Slot  `json:"current_slot,omitempty"` // set iff Placed, always equal to Home
}

// PieceConfig describes one piece in a puzzle configuration
type PieceConfig struct {
	ID    int    `json:"id" yaml:"id"`
	Image string `json:"image" yaml:"image"`
	Home  Slot   `json:"home" yaml:"home"`
}

// BoardGeometry is the on-screen bounds of the board preview, top-left origin
type BoardGeometry struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// TrayGeometry places tray slot i at (StartX + i*Gap, Y)
type TrayGeometry struct {
	StartX float64 `json:"start_x" yaml:"start_x"`
	Y      float64 `json:"y" yaml:"y"`
	Gap    float64 `json:"gap" yaml:"gap"`
}

// Messages are the user facing strings of a puzzle
type Messages struct {
	Welcome  string `json:"welcome" yaml:"welcome"`
	Snapped  string `json:"snapped" yaml:"snapped"`   // %d = piece id
	Rejected string `json:"rejected" yaml:"rejected"` // %d = piece id
	Complete string `json:"complete" yaml:"complete"`
}

// Config represents a puzzle configuration loaded from JSON or YAML
type Config struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	GridSize    int            `json:"grid_size" yaml:"grid_size"`
	Pieces      []PieceConfig  `json:"pieces" yaml:"pieces"`
	ArtOffsets  map[int]Offset `json:"art_offsets,omitempty" yaml:"art_offsets,omitempty"`
	Board       BoardGeometry  `json:"board" yaml:"board"`
	Tray        TrayGeometry   `json:"tray" yaml:"tray"`
	Messages    Messages       `json:"messages" yaml:"messages"`
	StoreURL    string         `json:"store_url,omitempty" yaml:"store_url,omitempty"`
}

// PieceState is the serializable view of a piece
type PieceState struct {
	ID      int    `json:"id"`
	Image   string `json:"image"`
	Home    Slot   `json:"home"`
	Placed  bool   `json:"placed"`
	Current *Slot  `json:"current_slot,omitempty"`
}

// State represents a snapshot of the model
type State struct {
	ConfigName string       `json:"config_name"`
	GridSize   int          `json:"grid_size"`
	Cells      [][]int      `json:"cells"` // piece id per cell, 0 = empty
	Pieces     []PieceState `json:"pieces"`
	Placed     int          `json:"placed"`
	Total      int          `json:"total"`
	Complete   bool         `json:"complete"`
}
