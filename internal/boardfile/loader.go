package boardfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
)

const (
	mineToken  = '1'
	emptyToken = '0'
)

// Load - reads a board description from path. See Parse for the format.
func Load(path string) ([][]bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedBoardFile, err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse - reads one board row per line, each square a 0 (empty) or 1 (mine).
// Squares may be separated by whitespace. Blank lines are skipped, the grid must be square.
func Parse(reader io.Reader) ([][]bool, error) {
	var rows [][]bool

	scanner := bufio.NewScanner(reader)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.Join(strings.Fields(scanner.Text()), "")
		if line == "" {
			continue
		}

		row := make([]bool, 0, len(line))
		for _, char := range line {
			switch char {
			case mineToken:
				row = append(row, true)
			case emptyToken:
				row = append(row, false)
			default:
				return nil, fmt.Errorf("%w: unexpected %q on line %d", apperror.ErrMalformedBoardFile, char, lineNumber)
			}
		}

		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d squares, expected %d", apperror.ErrMalformedBoardFile, lineNumber, len(row), len(rows[0]))
		}

		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedBoardFile, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", apperror.ErrMalformedBoardFile)
	}

	if len(rows) != len(rows[0]) {
		return nil, fmt.Errorf("%w: %d rows of %d squares, board must be square", apperror.ErrMalformedBoardFile, len(rows), len(rows[0]))
	}

	return rows, nil
}
