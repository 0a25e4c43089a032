package world

// Cell is one square of the simulated cave.
type Cell struct {
	Pit    bool // Pit kills the agent on entry.
	Wumpus bool // Wumpus kills the agent on entry while it is alive.
	Gold   bool // Gold can be grabbed once.
}

// Outcome is how an episode stands.
type Outcome int

const (
	Running Outcome = iota
	Climbed
	Died
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Climbed:
		return "climbed"
	case Died:
		return "died"
	}
	return "unknown"
}

// Scoring follows the classic Wumpus-world rules.
const (
	goldReward   = 1000
	deathPenalty = 1000
	actionCost   = 1
	arrowCost    = 10
)
