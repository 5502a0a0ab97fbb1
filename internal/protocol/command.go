package protocol

import (
	"regexp"
	"strconv"
	"strings"
)

type Action string

const (
	ActionLook   Action = "look"
	ActionDig    Action = "dig"
	ActionFlag   Action = "flag"
	ActionDeflag Action = "deflag"
	ActionHelp   Action = "help"
	ActionBye    Action = "bye"
	ActionSpy    Action = "spy"
)

var grammar = regexp.MustCompile(`^(?:look|help|bye|(?:dig|flag|deflag|spy) -?\d+ -?\d+)$`)

// Command is one parsed client line. X is the column and Y is the row.
type Command struct {
	Action Action
	X      int
	Y      int
}

func (that Command) Row() int {
	return that.Y
}

func (that Command) Col() int {
	return that.X
}

// Parse - turns a client line into a command. Anything that doesn't match the grammar is a look.
func Parse(line string) Command {
	line = strings.TrimRight(line, "\r\n")
	if !grammar.MatchString(line) {
		return Command{Action: ActionLook}
	}

	tokens := strings.Split(line, " ")
	if len(tokens) == 1 {
		return Command{Action: Action(tokens[0])}
	}

	x, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Command{Action: ActionLook}
	}

	y, err := strconv.Atoi(tokens[2])
	if err != nil {
		return Command{Action: ActionLook}
	}

	return Command{Action: Action(tokens[0]), X: x, Y: y}
}
