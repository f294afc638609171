package main

import (
	"fmt"
	"io"
	"strings"

	"othello/engine"
	"othello/game"

	"github.com/logrusorgru/aurora"
)

// renderBoard prints the playable grid. Row and column labels combine into
// the cell index, so row 3 column 4 is cell 34.
func renderBoard(w io.Writer, au aurora.Aurora, b game.Board, marked game.CellSet) {
	var sb strings.Builder
	sb.WriteString("  ")
	for col := 1; col <= 8; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteString("\n")
	for row := 1; row <= 8; row++ {
		fmt.Fprintf(&sb, "%d ", row)
		for col := 1; col <= 8; col++ {
			cell := row*game.Width + col
			sb.WriteString(" ")
			switch {
			case b.At(cell) == game.BlackDisc:
				sb.WriteString(au.Bold(au.Red("X")).String())
			case b.At(cell) == game.WhiteDisc:
				sb.WriteString(au.Bold(au.Cyan("O")).String())
			case marked.Has(cell):
				sb.WriteString(au.Yellow("*").String())
			default:
				sb.WriteString(".")
			}
		}
		sb.WriteString("\n")
	}
	fmt.Fprint(w, sb.String())
}

func renderUpdate(w io.Writer, au aurora.Aurora, u engine.Update) {
	if u.Move == game.NoMove {
		fmt.Fprintf(w, "%v has no possible moves, skip turn.\n", u.Side)
		return
	}
	fmt.Fprintf(w, "%v (%s) plays %d:\n", u.Side, u.Side.Symbol(), u.Move)
	renderBoard(w, au, u.Board, game.CellSet{})
}

func renderOutcome(w io.Writer, au aurora.Aurora, o engine.Outcome) {
	fmt.Fprintf(w, "Score: %d X pieces %d O pieces\n", o.Black, o.White)
	switch {
	case !o.Finished:
		fmt.Fprintln(w, au.Yellow("Stopped before the game was over."))
	case o.Tie:
		fmt.Fprintln(w, au.Bold("It's a tie!"))
	default:
		fmt.Fprintln(w, au.Bold(fmt.Sprintf("Player %s wins!", o.Winner.Symbol())))
	}
}
