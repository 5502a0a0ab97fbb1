package minesweeper

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

const (
	MinSize         = 2
	MineProbability = 0.25

	rowSeparator   = "\r\n"
	tokenSeparator = " "
)

const helpMessage = "Valid commands are: look | dig X Y | flag X Y | deflag X Y | help | bye. " +
	"X is the column and Y is the row, both counted from 0 at the top-left square."

// neighbourOffsets - the eight squares around a square, clipped at the board edges by neighbours().
var neighbourOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board is the single minefield shared by every connected player.
// All methods that read or change squares hold mu for their whole duration.
type Board struct {
	mu    sync.Mutex
	size  int
	cells [][]*entity.Square
}

// NewBoard - creates a size x size board where each square holds a mine with probability MineProbability.
func NewBoard(size int, rnd *rand.Rand) (*Board, error) {
	if size < MinSize {
		return nil, fmt.Errorf("%w: %d, must be at least %d", apperror.ErrInvalidBoardSize, size, MinSize)
	}

	mines := make([][]bool, size)
	for row := range mines {
		mines[row] = make([]bool, size)
		for col := range mines[row] {
			mines[row][col] = rnd.Float64() < MineProbability
		}
	}

	return newBoard(mines), nil
}

// NewBoardFromDescription - creates a board from a square grid of mine flags, indexed [row][col].
func NewBoardFromDescription(mines [][]bool) (*Board, error) {
	size := len(mines)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty description", apperror.ErrMalformedBoardFile)
	}

	for row, line := range mines {
		if len(line) != size {
			return nil, fmt.Errorf("%w: row %d has %d squares, expected %d", apperror.ErrMalformedBoardFile, row, len(line), size)
		}
	}

	if size < MinSize {
		return nil, fmt.Errorf("%w: %d, must be at least %d", apperror.ErrInvalidBoardSize, size, MinSize)
	}

	return newBoard(mines), nil
}

func newBoard(mines [][]bool) *Board {
	size := len(mines)

	board := &Board{
		size:  size,
		cells: make([][]*entity.Square, size),
	}

	for row := 0; row < size; row++ {
		board.cells[row] = make([]*entity.Square, size)
		for col := 0; col < size; col++ {
			board.cells[row][col] = entity.NewSquare(row, col, mines[row][col])
		}
	}

	board.initCounts()

	return board
}

// initCounts - stores the number of mined neighbours in every square, mined squares included,
// so the count is already right if that mine is dug later.
func (that *Board) initCounts() {
	for _, line := range that.cells {
		for _, square := range line {
			count := 0
			for _, neighbour := range that.neighbours(square.Row(), square.Col()) {
				if neighbour.IsMine() {
					count++
				}
			}
			square.SetCount(count)
		}
	}
}

func (that *Board) Size() int {
	return that.size
}

// Look - renders the board as every player currently sees it.
func (that *Board) Look() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.render()
}

// Flag - flags a hidden square. Out of range coordinates leave the board unchanged.
func (that *Board) Flag(row, col int) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	if square, ok := that.square(row, col); ok {
		square.SetFlagged()
	}

	return that.render()
}

// Deflag - removes a flag. Out of range coordinates leave the board unchanged.
func (that *Board) Deflag(row, col int) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	if square, ok := that.square(row, col); ok {
		square.ClearFlag()
	}

	return that.render()
}

func (that *Board) Help() string {
	return helpMessage
}

// Spy - describes a square without digging it. Only offered to players in debug mode.
func (that *Board) Spy(row, col int) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	square, ok := that.square(row, col)
	if !ok {
		return that.render()
	}

	return fmt.Sprintf("Square state: %s, mine: %t, count: %d", square.State(), square.IsMine(), square.Count())
}

// State - the token matrix of the current render, indexed [row][col].
func (that *Board) State() [][]string {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := make([][]string, that.size)
	for row, line := range that.cells {
		state[row] = make([]string, that.size)
		for col, square := range line {
			state[row][col] = square.String()
		}
	}

	return state
}

func (that *Board) render() string {
	var sb strings.Builder
	sb.Grow(that.size * (that.size*2 + len(rowSeparator)))

	for _, line := range that.cells {
		for col, square := range line {
			if col > 0 {
				sb.WriteString(tokenSeparator)
			}
			sb.WriteString(square.String())
		}
		sb.WriteString(rowSeparator)
	}

	return sb.String()
}

func (that *Board) inBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *Board) square(row, col int) (*entity.Square, bool) {
	if !that.inBounds(row, col) {
		return nil, false
	}

	return that.cells[row][col], true
}

func (that *Board) neighbours(row, col int) []*entity.Square {
	result := make([]*entity.Square, 0, len(neighbourOffsets))

	for _, offset := range neighbourOffsets {
		if square, ok := that.square(row+offset[0], col+offset[1]); ok {
			result = append(result, square)
		}
	}

	return result
}
