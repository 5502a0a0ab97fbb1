package minesweeper

import "github.com/rocketscienceinc/minesweeper-backend/internal/entity"

// DetonationMarker is sent instead of the board to a player who dug a mine.
const DetonationMarker = "BOOM!"

// DigResult is the outcome of a dig: either the board after the dig or a detonation.
type DigResult struct {
	Detonated bool
	Board     string
}

// Text - what the digging player is sent back.
func (that DigResult) Text() string {
	if that.Detonated {
		return DetonationMarker
	}

	return that.Board
}

// Dig - digs the square at (row, col). Out of range, flagged and revealed squares are left alone.
// Digging a mine removes it, updates the neighbouring counts and reports a detonation.
func (that *Board) Dig(row, col int) DigResult {
	that.mu.Lock()
	defer that.mu.Unlock()

	square, ok := that.square(row, col)
	if !ok || square.State() != entity.Hidden {
		return DigResult{Board: that.render()}
	}

	if square.IsMine() {
		that.detonate(square)

		return DigResult{Detonated: true, Board: that.render()}
	}

	if err := square.Reveal(square.Count()); err != nil {
		return DigResult{Board: that.render()}
	}

	if square.Count() == 0 {
		that.flood(square)
	}

	return DigResult{Board: that.render()}
}

// detonate - clears the mine under square, reveals it empty and floods from it.
func (that *Board) detonate(square *entity.Square) {
	square.ClearMine()

	if err := square.Reveal(0); err != nil {
		return
	}

	for _, neighbour := range that.neighbours(square.Row(), square.Col()) {
		neighbour.DecrementCount()
	}

	that.flood(square)
}

// flood - breadth-first reveal starting from the neighbours of an already revealed empty square.
// Mined and flagged squares stop the expansion, as do squares with a non-zero count.
func (that *Board) flood(origin *entity.Square) {
	visited := make([][]bool, that.size)
	for row := range visited {
		visited[row] = make([]bool, that.size)
	}

	queue := make([]*entity.Square, 0, len(neighbourOffsets))
	enqueue := func(square *entity.Square) {
		if visited[square.Row()][square.Col()] {
			return
		}
		visited[square.Row()][square.Col()] = true
		queue = append(queue, square)
	}

	visited[origin.Row()][origin.Col()] = true
	for _, neighbour := range that.neighbours(origin.Row(), origin.Col()) {
		enqueue(neighbour)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.IsMine() {
			continue
		}

		// squares revealed earlier still expand once a detonation has emptied them
		if err := current.Reveal(current.Count()); err != nil && current.State() != entity.Revealed {
			continue
		}

		if current.Count() != 0 {
			continue
		}

		for _, neighbour := range that.neighbours(current.Row(), current.Col()) {
			enqueue(neighbour)
		}
	}
}
