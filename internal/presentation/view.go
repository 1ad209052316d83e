package presentation

// CellView is one grid cell as a surface should draw it
type CellView struct {
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Highlight  Highlight `json:"highlight"`
	Icon       Icon      `json:"icon"`
	HasPlayer  bool      `json:"has_player"`
	HasMonster bool      `json:"has_monster"`
}

// CombatantView is a combatant as a surface should show it
type CombatantView struct {
	Name        string `json:"name"`
	Class       string `json:"class"`
	Index       int    `json:"index"`
	Player      bool   `json:"player"`
	Health      int    `json:"health"`
	HealthLimit int    `json:"health_limit"`
	AC          int    `json:"ac"`
	AB          int    `json:"ab"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Dead        bool   `json:"dead"`
}

// BoardView is a full copy of a match for rendering
type BoardView struct {
	MatchID string `json:"match_id,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	// Cells is column major: Cells[x-1][y-1]
	Cells    [][]CellView    `json:"cells"`
	Players  []CombatantView `json:"players"`
	Monsters []CombatantView `json:"monsters,omitempty"`
	Current  int             `json:"current"`
	State    string          `json:"state"`
	Winner   string          `json:"winner,omitempty"`
}

// Cell returns the cell at 1-indexed x, y
func (b *BoardView) Cell(x, y int) (CellView, bool) {
	if x < 1 || y < 1 || x > len(b.Cells) || y > len(b.Cells[x-1]) {
		return CellView{}, false
	}
	return b.Cells[x-1][y-1], true
}

// CurrentPlayer returns the player whose turn it is
func (b *BoardView) CurrentPlayer() (CombatantView, bool) {
	if b.Current < 0 || b.Current >= len(b.Players) {
		return CombatantView{}, false
	}
	return b.Players[b.Current], true
}
