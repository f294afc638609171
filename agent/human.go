package agent

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var ErrNoInput = errors.New("no more moves to read")

// MoveSource supplies a human's choice among the legal cells.
type MoveSource interface {
	NextMove(b game.Board, side game.Side, legal []int) (int, error)
}

type ReaderSource struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewReaderSource(r io.Reader, w io.Writer) *ReaderSource {
	return &ReaderSource{scanner: bufio.NewScanner(r), out: w}
}

// NextMove prompts until a line holds one of the legal cells.
func (s *ReaderSource) NextMove(b game.Board, side game.Side, legal []int) (int, error) {
	fmt.Fprintf(s.out, "%s\n", b)
	for {
		fmt.Fprintf(s.out, "%v (%s) to move, legal moves: %v\nYour move: ", side, side.Symbol(), legal)
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return game.NoMove, errors.Wrap(err, "failed to read move")
			}
			return game.NoMove, ErrNoInput
		}

		text := strings.TrimSpace(s.scanner.Text())
		cell, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintf(s.out, "%q is not a cell index\n", text)
			continue
		}
		if !slices.Contains(legal, cell) {
			fmt.Fprintf(s.out, "%d is not a legal move\n", cell)
			continue
		}
		return cell, nil
	}
}

type humanAgent struct {
	source MoveSource
}

func (a *humanAgent) FindMove(b game.Board, side game.Side) (int, metrics.SearchMetric, error) {
	legal := b.LegalMoves(side)
	if legal.Len() == 0 {
		return game.NoMove, metrics.SearchMetric{}, nil
	}
	cell, err := a.source.NextMove(b, side, legal.Cells())
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	if !legal.Has(cell) {
		return game.NoMove, metrics.SearchMetric{}, errors.WithStack(&game.IllegalMoveError{Move: game.Move{Cell: cell, Side: side}})
	}
	return cell, metrics.SearchMetric{Strategy: string(Human)}, nil
}
