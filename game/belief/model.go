/*
Package belief holds the agent's sparse picture of the world and the danger estimates derived
from it.

The model is a Position -> Cell table that only ever grows. Cells never reference each other;
adjacency is recomputed from coordinates whenever it is needed.
*/
package belief

import (
	"slices"

	"github.com/beka-birhanu/vinom-agent/game"
)

// Model is the world belief model.
type Model struct {
	bounds           game.Bounds
	cells            map[game.Position]*Cell
	wumpusEliminated bool
}

// NewModel creates an empty model for an arena of the given bounds.
func NewModel(bounds game.Bounds) *Model {
	return &Model{
		bounds: bounds,
		cells:  make(map[game.Position]*Cell),
	}
}

// Bounds returns the arena the model was created for.
func (m *Model) Bounds() game.Bounds {
	return m.bounds
}

// CellAt returns the cell at p if it has been discovered.
func (m *Model) CellAt(p game.Position) (*Cell, bool) {
	c, ok := m.cells[p]
	return c, ok
}

// Len returns the number of discovered cells.
func (m *Model) Len() int {
	return len(m.cells)
}

// Cells returns every discovered cell ordered by X, then Y.
func (m *Model) Cells() []*Cell {
	cells := make([]*Cell, 0, len(m.cells))
	for _, c := range m.cells {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b *Cell) int {
		return a.Position.Compare(b.Position)
	})
	return cells
}

// EnsureNeighbors discovers every neighbour of p that is not yet in the model.
func (m *Model) EnsureNeighbors(p game.Position) {
	for _, n := range p.Neighbors() {
		m.ensure(n)
	}
}

// ApplySensorReport marks p visited and overwrites its sensory flags with the current reading.
func (m *Model) ApplySensorReport(p game.Position, stench, breeze, goalItem bool) {
	c := m.ensure(p)
	c.Visited = true
	c.HasStench = stench
	c.HasBreeze = breeze
	c.HasGoalItem = goalItem
}

// MarkWall records that p cannot be entered.
func (m *Model) MarkWall(p game.Position) {
	m.ensure(p).IsWall = true
}

// ClearWumpus records that an arrow fired into p found nothing.
func (m *Model) ClearWumpus(p game.Position) {
	m.ensure(p).WumpusCleared = true
}

// EliminateWumpus records that the wumpus is dead. Stench readings stay in the model but no
// longer count as evidence.
func (m *Model) EliminateWumpus() {
	m.wumpusEliminated = true
}

// WumpusEliminated reports whether a scream has been heard this episode.
func (m *Model) WumpusEliminated() bool {
	return m.wumpusEliminated
}

func (m *Model) ensure(p game.Position) *Cell {
	if c, ok := m.cells[p]; ok {
		return c
	}
	c := &Cell{
		Position: p,
		IsWall:   !m.bounds.Contains(p),
	}
	m.cells[p] = c
	return c
}
