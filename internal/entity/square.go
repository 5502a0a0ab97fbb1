package entity

import (
	"strconv"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
)

// RevealState is what a player can currently see of a square.
type RevealState int

const (
	Hidden RevealState = iota
	Flagged
	Revealed
)

const (
	HiddenToken  = "-"
	FlaggedToken = "F"
	EmptyToken   = " "
)

func (that RevealState) String() string {
	switch that {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Square is a single cell of the minefield. Its position never changes after construction.
type Square struct {
	row     int
	col     int
	hasMine bool
	state   RevealState
	count   int
}

func NewSquare(row, col int, hasMine bool) *Square {
	return &Square{
		row:     row,
		col:     col,
		hasMine: hasMine,
		state:   Hidden,
	}
}

func (that *Square) Row() int {
	return that.row
}

func (that *Square) Col() int {
	return that.col
}

func (that *Square) IsMine() bool {
	return that.hasMine
}

func (that *Square) State() RevealState {
	return that.state
}

// Count - the number of mined neighbours; only shown to players once the square is revealed.
func (that *Square) Count() int {
	return that.count
}

func (that *Square) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	that.count = count
}

// DecrementCount - accounts for a neighbouring mine that was detonated. Never goes below zero.
func (that *Square) DecrementCount() {
	if that.count > 0 {
		that.count--
	}
}

// SetFlagged - flags a hidden square. Flagged squares stay flagged, revealed squares can't be flagged.
func (that *Square) SetFlagged() {
	if that.state == Hidden {
		that.state = Flagged
	}
}

// ClearFlag - returns a flagged square to hidden, otherwise does nothing.
func (that *Square) ClearFlag() {
	if that.state == Flagged {
		that.state = Hidden
	}
}

// Reveal - permanently reveals a hidden square with the given neighbour count.
func (that *Square) Reveal(count int) error {
	if that.state != Hidden {
		return apperror.ErrSquareNotHidden
	}

	that.SetCount(count)
	that.state = Revealed

	return nil
}

// ClearMine - removes the mine once it has been dug up.
func (that *Square) ClearMine() {
	that.hasMine = false
}

// String - the token a player sees for this square.
func (that *Square) String() string {
	switch that.state {
	case Flagged:
		return FlaggedToken
	case Revealed:
		if that.count == 0 {
			return EmptyToken
		}
		return strconv.Itoa(that.count)
	default:
		return HiddenToken
	}
}
