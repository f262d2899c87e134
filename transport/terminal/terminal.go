package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

const helpText = "commands: <row> <col> | reset [N] | quit"

// Presenter plays a hot-seat game on a line-oriented terminal.
type Presenter struct {
	logger       *slog.Logger
	in           *bufio.Scanner
	out          io.Writer
	maxDimension int

	engine *tictactoe.Engine
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, maxDimension int) *Presenter {
	return &Presenter{
		logger:       logger.With("component", "terminal"),
		in:           bufio.NewScanner(in),
		out:          out,
		maxDimension: maxDimension,
	}
}

// Run starts a game of the given dimension and reads commands until quit, EOF or ctx is done.
func (that *Presenter) Run(ctx context.Context, dimension int) error {
	engine, err := that.newEngine(dimension)
	if err != nil {
		return err
	}

	that.engine = engine

	that.printf("%s\n", helpText)
	that.render()

	for that.in.Scan() {
		if err = ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(that.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "reset":
			that.reset(fields[1:])
		case "help":
			that.printf("%s\n", helpText)
		default:
			that.move(fields)
		}
	}

	if err = that.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Presenter) newEngine(dimension int) (*tictactoe.Engine, error) {
	if dimension > that.maxDimension {
		return nil, fmt.Errorf("%w: %d > %d", apperror.ErrDimensionTooLarge, dimension, that.maxDimension)
	}

	engine, err := tictactoe.NewEngine(dimension)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	return engine, nil
}

func (that *Presenter) reset(args []string) {
	dimension := that.engine.Dimension()

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			that.printf("board size must be a number\n")
			return
		}
		dimension = n
	}

	if dimension > that.maxDimension {
		that.printf("%v: max %d\n", apperror.ErrDimensionTooLarge, that.maxDimension)
		return
	}

	if err := that.engine.Reset(dimension); err != nil {
		that.printf("%v\n", err)
		return
	}

	that.logger.Debug("game reset", "dimension", dimension)
	that.render()
}

func (that *Presenter) move(fields []string) {
	if len(fields) != 2 {
		that.printf("unknown command %q, %s\n", strings.Join(fields, " "), helpText)
		return
	}

	row, rowErr := strconv.Atoi(fields[0])
	col, colErr := strconv.Atoi(fields[1])
	if rowErr != nil || colErr != nil {
		that.printf("row and col must be numbers\n")
		return
	}

	result := that.engine.AttemptMove(row, col)
	if result.Rejected() {
		that.printf("rejected: %v\n", result.Err)
		return
	}

	if result.Outcome.IsFinished() {
		that.logger.Debug("game finished", "outcome", result.Outcome)
	}

	that.render()
}

// render prints the board with row and column indexes, then the status line.
func (that *Presenter) render() {
	var b strings.Builder

	n := that.engine.Dimension()
	width := len(strconv.Itoa(n - 1))

	b.WriteString(strings.Repeat(" ", width+1))
	for col := range n {
		fmt.Fprintf(&b, " %*d", width, col)
	}
	b.WriteString("\n")

	for row, marks := range that.engine.Board() {
		fmt.Fprintf(&b, "%*d ", width, row)
		for _, mark := range marks {
			fmt.Fprintf(&b, " %*s", width, mark.String())
		}
		b.WriteString("\n")
	}

	b.WriteString(that.engine.Message())
	b.WriteString("\n")

	that.printf("%s", b.String())
}

func (that *Presenter) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
