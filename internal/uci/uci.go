package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessmask/internal/board"
	"github.com/hailam/chessmask/internal/engine"
)

// UCI implements the Universal Chess Interface protocol, plus the perft
// and mask debugging commands.
type UCI struct {
	engine *engine.Engine
	state  *board.GameState
	out    io.Writer

	// Position history since the last "position" command
	start *board.GameState
	moves []board.Move
}

// New creates a new UCI protocol handler writing responses to out.
func New(eng *engine.Engine, out io.Writer) *UCI {
	u := &UCI{engine: eng, out: out}
	u.reset()
	return u
}

func (u *UCI) reset() {
	u.state = board.NewStartState(u.engine.Tables())
	u.start = u.state
	u.moves = nil
}

// State returns the current position.
func (u *UCI) State() *board.GameState {
	return u.state
}

// Run reads commands from in until "quit" or end of input.
func (u *UCI) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if u.Execute(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute handles a single command line and reports whether it was "quit".
func (u *UCI) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.handleNewGame()
	case "position":
		u.handlePosition(args)
	case "go":
		u.handleGo(ctx, args)
	case "setoption":
		u.handleSetOption(args)
	case "quit":
		return true
	// Debug commands
	case "d":
		u.handleDisplay()
	case "perft":
		u.handlePerft(ctx, args)
	case "masks":
		u.handleMasks(args)
	default:
		u.infoString("Unknown command: %s", cmd)
	}
	return false
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *UCI) infoString(format string, args ...any) {
	fmt.Fprintf(u.out, "info string "+format+"\n", args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessMask")
	u.println("id author ChessMask Team")
	u.println("")
	u.println("option name Threads type spin default 1 min 1 max 256")
	u.println("option name Clear Hash type button")
	u.println("uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.reset()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// On any error the previous position is kept.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	// Find "moves" keyword
	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i
			break
		}
	}

	var g *board.GameState
	switch args[0] {
	case "startpos":
		g = board.NewStartState(u.engine.Tables())
	case "fen":
		var err error
		g, err = board.FromFEN(u.engine.Tables(), strings.Join(args[1:moveStart], " "))
		if err != nil {
			u.infoString("Invalid FEN: %v", err)
			return
		}
	default:
		return
	}

	start := g
	var moves []board.Move
	if moveStart < len(args) {
		for _, moveStr := range args[moveStart+1:] {
			m, err := g.ParseMove(moveStr)
			if err != nil {
				u.infoString("Invalid move: %v", err)
				return
			}
			g = g.ApplyMove(m)
			moves = append(moves, m)
		}
	}

	u.state = g
	u.start = start
	u.moves = moves
}

// handleDisplay prints the board, the game so far and the legal moves.
func (u *UCI) handleDisplay() {
	u.printf("%s", u.state.String())
	if len(u.moves) > 0 {
		u.printf("Moves: %s\n", strings.Join(u.start.MovesToSAN(u.moves), " "))
	}

	legal := u.state.LegalMoves(u.state.Active())
	san := make([]string, len(legal))
	for i, m := range legal {
		san[i] = u.state.SAN(m)
	}
	u.printf("Legal: %s\n", strings.Join(san, " "))
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth int
	Perft int
}

// parseGoOptions parses "go" command arguments. Time controls are accepted
// and ignored; the search always runs to a fixed depth.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "perft":
			if i+1 < len(args) {
				opts.Perft, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes":
			i++
		}
	}

	return opts
}

// handleGo runs a search, or a divide for "go perft N".
func (u *UCI) handleGo(ctx context.Context, args []string) {
	opts := parseGoOptions(args)
	if opts.Perft > 0 {
		u.divide(ctx, opts.Perft)
		return
	}

	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	best, _, err := u.engine.Search(u.state, engine.SearchLimits{Depth: opts.Depth})
	if err != nil {
		u.infoString("Search failed: %v", err)
	}
	u.printf("bestmove %s\n", best)
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	// Score
	if info.Score > engine.MateScore-engine.MaxPly {
		mateIn := (engine.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else if info.Score < -engine.MateScore+engine.MaxPly {
		mateIn := -(engine.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if len(info.PV) > 0 {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(pv, " "))
	}

	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value []string
	var target *[]string

	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}

	switch strings.ToLower(strings.Join(name, " ")) {
	case "threads":
		n, err := strconv.Atoi(strings.Join(value, " "))
		if err != nil || n < 1 {
			u.infoString("Invalid thread count: %q", strings.Join(value, " "))
			return
		}
		u.engine.SetWorkers(n)
	case "clear hash":
		u.engine.Clear()
	default:
		u.infoString("Unknown option: %s", strings.Join(name, " "))
	}
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(ctx context.Context, args []string) {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			u.infoString("Invalid depth: %s", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	nodes, err := u.engine.Perft(ctx, u.state, depth)
	if err != nil {
		u.infoString("Perft failed: %v", err)
		return
	}
	elapsed := time.Since(start)

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		u.printf("NPS: %.0f\n", nps)
	}
}

// divide prints the perft count below each root move.
func (u *UCI) divide(ctx context.Context, depth int) {
	entries, err := u.engine.Divide(ctx, u.state, depth)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		u.infoString("Perft failed: %v", err)
		return
	}
	for _, e := range entries {
		u.printf("%s: %d\n", e.Move, e.Nodes)
	}
	u.printf("\nNodes searched: %d\n", engine.Total(entries))
}

// handleMasks prints the generator's masks for one color, the side to move
// by default.
func (u *UCI) handleMasks(args []string) {
	c := u.state.Active()
	if len(args) > 0 {
		var err error
		if c, err = parseColor(args[0]); err != nil {
			u.infoString("%v", err)
			return
		}
	}

	m := u.state.Masks(c)
	u.printf("Masks for %s\n", c)
	for _, mask := range []struct {
		name string
		bb   board.Bitboard
	}{
		{"check", m.CheckMask},
		{"checkers", m.Checkers},
		{"pinned", m.Pinned},
		{"pin " + board.Horizontal.String(), m.Pins[board.Horizontal]},
		{"pin " + board.Vertical.String(), m.Pins[board.Vertical]},
		{"pin " + board.Diagonal.String(), m.Pins[board.Diagonal]},
		{"pin " + board.AntiDiagonal.String(), m.Pins[board.AntiDiagonal]},
		{"space", m.Space},
		{"danger", m.KingDanger},
	} {
		u.printf("%s:\n%s\n", mask.name, mask.bb)
	}
	for side := board.KingSide; side <= board.QueenSide; side++ {
		u.printf("castle %s: %v\n", side, u.state.CanCastle(c, side))
	}
}

func parseColor(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "white":
		return board.White, nil
	case "black":
		return board.Black, nil
	}
	return board.ParseColor(s)
}
