package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/render"
	"github.com/fatih/color"
)

const usage = `commands:
  hover <square>     point at a square, e.g. "hover e2"
  hover piece <id>   point at a piece by id
  hover none         move the pointer off the board
  click              primary click at the pointer
  reset              restore the starting position
  show               redraw the board
  quit`

type session struct {
	table *model.Table
	out   io.Writer
}

func newSession(table *model.Table, out io.Writer) *session {
	return &session{table: table, out: out}
}

// run reads one command per line until EOF or quit.
func (s *session) run(in io.Reader) error {
	s.show()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if quit := s.exec(scanner.Text()); quit {
			return nil
		}
	}
}

func (s *session) exec(line string) (quit bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, usage)
	case "show":
		s.show()
	case "reset":
		s.table.Reset()
		s.show()
	case "hover":
		h, err := parseHover(fields[1:])
		if err != nil {
			s.fail(err)
			return false
		}
		if err := s.table.SetHover(h); err != nil {
			s.fail(err)
			return false
		}
		s.show()
	case "click":
		out, err := s.table.Click()
		if err != nil {
			s.fail(err)
		} else {
			msg := string(out.Result)
			if out.Notation != "" {
				msg += " " + out.Notation
			}
			fmt.Fprintln(s.out, msg)
		}
		s.show()
	default:
		s.fail(fmt.Errorf("unknown command %q", fields[0]))
	}
	return false
}

func parseHover(args []string) (*model.Hover, error) {
	switch {
	case len(args) == 1 && args[0] == "none":
		return nil, nil
	case len(args) == 1:
		sq, err := model.ParseSquare(args[0])
		if err != nil {
			return nil, err
		}
		return model.HoverSquare(sq), nil
	case len(args) == 2 && args[0] == "piece":
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid piece id %q", args[1])
		}
		return model.HoverPiece(model.PieceID(id)), nil
	}
	return nil, fmt.Errorf("usage: hover <square> | hover piece <id> | hover none")
}

func (s *session) show() {
	state := s.table.Snapshot()
	fmt.Fprint(s.out, render.Text(render.ViewFromState(state)))
	fmt.Fprintf(s.out, "state: %s  fen: %s\n", state.State, state.FEN)
}

func (s *session) fail(err error) {
	fmt.Fprintln(s.out, color.RedString("error: %v", err))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// log lines would interleave with the board, so only a file sink is honoured
	if cfg.Log.ToFile {
		cfg.Log.ToConsole = false
		if err := obslog.Init(cfg.Log); err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
	}

	table := model.NewTable("terminal", "terminal", "local")
	if err := newSession(table, color.Output).run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}
}
