package belief

import "github.com/beka-birhanu/vinom-agent/game"

const (
	// neighbourEvidence is the score one visited neighbour reporting a cue contributes.
	neighbourEvidence = 25

	DefaultAcceptableDanger = 25
	DefaultAcceptableShoot  = 50
	DefaultAcceptablePit    = 50
)

// Thresholds decide which cells may be explored, routed through or shot at.
type Thresholds struct {
	AcceptableDanger int // AcceptableDanger bounds the combined estimate of explore targets and waypoints.
	AcceptableShoot  int // AcceptableShoot is the minimum wumpus score worth an arrow.
	AcceptablePit    int // AcceptablePit is the pit score from which a shot target is ignored.
}

// DefaultThresholds returns the thresholds the agent is tuned for.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AcceptableDanger: DefaultAcceptableDanger,
		AcceptableShoot:  DefaultAcceptableShoot,
		AcceptablePit:    DefaultAcceptablePit,
	}
}

// WumpusScore estimates how likely p holds the wumpus, from 0 to 100 in steps of 25.
func (m *Model) WumpusScore(p game.Position) int {
	if m.wumpusEliminated {
		return 0
	}
	if c, ok := m.cells[p]; ok && c.WumpusCleared {
		return 0
	}
	return m.hazardScore(p, func(c *Cell) bool { return c.HasStench })
}

// PitScore estimates how likely p is a pit, from 0 to 100 in steps of 25.
func (m *Model) PitScore(p game.Position) int {
	return m.hazardScore(p, func(c *Cell) bool { return c.HasBreeze })
}

// DangerEstimate is the combined wumpus and pit score of p.
func (m *Model) DangerEstimate(p game.Position) int {
	return m.WumpusScore(p) + m.PitScore(p)
}

// Explorable reports whether p is safe enough to be an explore target.
func (m *Model) Explorable(p game.Position, t Thresholds) bool {
	return m.DangerEstimate(p) <= t.AcceptableDanger
}

// Routable reports whether a path may pass through p.
func (m *Model) Routable(p game.Position, t Thresholds) bool {
	c, ok := m.cells[p]
	if !ok || c.IsWall {
		return false
	}
	return m.DangerEstimate(p) < t.AcceptableDanger
}

// ShootCandidate reports whether the wumpus is likely enough at p to spend an arrow on it
// while the cells around it are unlikely to be pits.
func (m *Model) ShootCandidate(p game.Position, t Thresholds) bool {
	return m.WumpusScore(p) >= t.AcceptableShoot && m.PitScore(p) < t.AcceptablePit
}

// hazardScore accumulates evidence from the visited neighbours of p. A visited, non-wall
// neighbour without the cue rules the hazard out, whatever the other neighbours report.
func (m *Model) hazardScore(p game.Position, cue func(*Cell) bool) int {
	if c, ok := m.cells[p]; ok && c.Visited {
		return 0
	}

	score := 0
	for _, n := range p.Neighbors() {
		c, ok := m.cells[n]
		if !ok || !c.Visited {
			continue
		}
		if cue(c) {
			score += neighbourEvidence
		} else if !c.IsWall {
			return 0
		}
	}
	return score
}
