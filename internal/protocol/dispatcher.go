package protocol

import "github.com/rocketscienceinc/minesweeper-backend/internal/minesweeper"

const ByeMessage = "Bye!"

type board interface {
	Look() string
	Help() string
	Flag(row, col int) string
	Deflag(row, col int) string
	Dig(row, col int) minesweeper.DigResult
	Spy(row, col int) string
}

// Reply is what a transport sends back for one command.
// Close asks the transport to end the connection once Text is written.
type Reply struct {
	Text      string
	Detonated bool
	Close     bool
}

// Dispatcher routes client commands to the shared board.
type Dispatcher struct {
	board board
	debug bool

	handlers map[Action]func(cmd Command) Reply
}

// NewDispatcher - in debug mode players survive detonations and may spy on squares.
func NewDispatcher(board board, debug bool) *Dispatcher {
	dispatcher := &Dispatcher{
		board: board,
		debug: debug,

		handlers: make(map[Action]func(Command) Reply),
	}

	dispatcher.handlers[ActionLook] = dispatcher.handleLook
	dispatcher.handlers[ActionHelp] = dispatcher.handleHelp
	dispatcher.handlers[ActionBye] = dispatcher.handleBye
	dispatcher.handlers[ActionDig] = dispatcher.handleDig
	dispatcher.handlers[ActionFlag] = dispatcher.handleFlag
	dispatcher.handlers[ActionDeflag] = dispatcher.handleDeflag

	if debug {
		dispatcher.handlers[ActionSpy] = dispatcher.handleSpy
	}

	return dispatcher
}

// HandleLine - parses and handles one raw client line.
func (that *Dispatcher) HandleLine(line string) Reply {
	return that.Handle(Parse(line))
}

func (that *Dispatcher) Handle(cmd Command) Reply {
	handler, ok := that.handlers[cmd.Action]
	if !ok {
		return that.handleLook(cmd)
	}

	return handler(cmd)
}

func (that *Dispatcher) handleLook(_ Command) Reply {
	return Reply{Text: that.board.Look()}
}

func (that *Dispatcher) handleHelp(_ Command) Reply {
	return Reply{Text: that.board.Help()}
}

func (that *Dispatcher) handleBye(_ Command) Reply {
	return Reply{Text: ByeMessage, Close: true}
}

func (that *Dispatcher) handleDig(cmd Command) Reply {
	result := that.board.Dig(cmd.Row(), cmd.Col())

	return Reply{
		Text:      result.Text(),
		Detonated: result.Detonated,
		Close:     result.Detonated && !that.debug,
	}
}

func (that *Dispatcher) handleFlag(cmd Command) Reply {
	return Reply{Text: that.board.Flag(cmd.Row(), cmd.Col())}
}

func (that *Dispatcher) handleDeflag(cmd Command) Reply {
	return Reply{Text: that.board.Deflag(cmd.Row(), cmd.Col())}
}

func (that *Dispatcher) handleSpy(cmd Command) Reply {
	return Reply{Text: that.board.Spy(cmd.Row(), cmd.Col())}
}
