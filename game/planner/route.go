/*
Package planner finds routes through the belief model and compiles them into primitive actions.

Routes are shortest paths over the cells the agent currently considers safe. Every move costs 1.
*/
package planner

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"

	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/belief"
)

const stepCost = 1

var (
	ErrUnreachable = errors.New("target is unreachable")
)

// Tree holds the single-source shortest paths computed from one source cell.
type Tree struct {
	source   game.Position
	distance map[game.Position]int
	previous map[game.Position]game.Position
}

// ShortestPaths runs Dijkstra from source over every routable cell of m. The source is always
// part of the graph, even when it would not be routable itself.
func ShortestPaths(m *belief.Model, t belief.Thresholds, source game.Position) *Tree {
	tree := &Tree{
		source:   source,
		distance: map[game.Position]int{source: 0},
		previous: make(map[game.Position]game.Position),
	}

	admissible := func(p game.Position) bool {
		return p == source || m.Routable(p, t)
	}

	settled := make(map[game.Position]bool)
	pq := &priorityQueue{}
	heap.Init(pq)
	pq.push(source, 0)

	for pq.Len() > 0 {
		u := heap.Pop(pq).(*item).pos
		if settled[u] {
			continue
		}
		settled[u] = true

		for _, v := range u.Neighbors() {
			if settled[v] || !admissible(v) {
				continue
			}
			alt := tree.distance[u] + stepCost
			if d, ok := tree.distance[v]; !ok || alt < d {
				tree.distance[v] = alt
				tree.previous[v] = u
				pq.push(v, alt)
			}
		}
	}

	return tree
}

// Source returns the cell the tree was grown from.
func (t *Tree) Source() game.Position {
	return t.source
}

// Distance returns the number of moves from the source to p.
func (t *Tree) Distance(p game.Position) (int, bool) {
	d, ok := t.distance[p]
	return d, ok
}

// PathTo returns the cells from the source (exclusive) to target (inclusive).
// The path to the source itself is empty.
func (t *Tree) PathTo(target game.Position) ([]game.Position, error) {
	if _, ok := t.distance[target]; !ok {
		return nil, fmt.Errorf("route %s -> %s: %w", t.source, target, ErrUnreachable)
	}

	var path []game.Position
	for cur := target; cur != t.source; cur = t.previous[cur] {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path, nil
}

// Route is a one-shot shortest path query from one cell to another.
func Route(m *belief.Model, t belief.Thresholds, from, to game.Position) ([]game.Position, error) {
	return ShortestPaths(m, t, from).PathTo(to)
}

// item is a frontier entry of the search. seq keeps equal-distance entries in insertion order.
type item struct {
	pos      game.Position
	priority int
	seq      int
	index    int
}

type priorityQueue struct {
	items []*item
	seq   int
}

func (pq *priorityQueue) push(p game.Position, priority int) {
	pq.seq++
	heap.Push(pq, &item{pos: p, priority: priority, seq: pq.seq})
}

func (pq priorityQueue) Len() int { return len(pq.items) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq.items[i].priority != pq.items[j].priority {
		return pq.items[i].priority < pq.items[j].priority
	}
	return pq.items[i].seq < pq.items[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index = i
	pq.items[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	it := x.(*item)
	it.index = len(pq.items)
	pq.items = append(pq.items, it)
}

func (pq *priorityQueue) Pop() any {
	old := pq.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	pq.items = old[:n-1]
	return it
}
