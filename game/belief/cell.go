package belief

import (
	"fmt"

	"github.com/beka-birhanu/vinom-agent/game"
)

// Cell is what the agent has inferred about one grid position.
// Sensory flags are only meaningful once the cell has been visited.
type Cell struct {
	Position    game.Position // Position is the key of the cell in the model.
	Visited     bool          // Visited is set once the agent physically occupied the cell.
	IsWall      bool          // IsWall marks out-of-bounds cells and cells a forward move bumped into.
	HasStench   bool          // HasStench is the last stench reading taken in the cell.
	HasBreeze   bool          // HasBreeze is the last breeze reading taken in the cell.
	HasGoalItem bool          // HasGoalItem is the last glitter reading taken in the cell.

	// WumpusCleared is set when an arrow fired into the cell met no wumpus.
	WumpusCleared bool
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell%s", c.Position)
}
