package widget

import (
	"math/rand"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// The demo games are deliberately trivial state machines; they exist so
// every composite kind honors the same replace-sub-config contract.

// RollDice appends a roll of 1-6 to the game's roll history.
func RollDice(g model.GameState, rng *rand.Rand) model.GameState {
	out := g
	out.Rolls = make([]int, len(g.Rolls), len(g.Rolls)+1)
	copy(out.Rolls, g.Rolls)
	out.Rolls = append(out.Rolls, rng.Intn(6)+1)
	return out
}

// The eight win lines of a 3x3 board.
var winTriples = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// NewTicTacToe returns an empty board with X to move.
func NewTicTacToe() model.GameState {
	return model.GameState{Board: make([]string, 9), Turn: "X"}
}

// PlayCell places the current player's mark on cell (0-8). Moves into an
// occupied cell or a finished game leave the state unchanged.
func PlayCell(g model.GameState, cell int) model.GameState {
	if g.Over || cell < 0 || cell > 8 || len(g.Board) != 9 || g.Board[cell] != "" {
		return g
	}
	out := g
	out.Board = make([]string, 9)
	copy(out.Board, g.Board)
	out.Board[cell] = g.Turn

	if winner := TicTacToeWinner(out.Board); winner != "" || boardFull(out.Board) {
		out.Over = true
		out.Turn = winner // empty winner on a full board means a draw
		return out
	}
	if g.Turn == "X" {
		out.Turn = "O"
	} else {
		out.Turn = "X"
	}
	return out
}

// TicTacToeWinner returns "X" or "O" when a win line is complete, else "".
func TicTacToeWinner(board []string) string {
	if len(board) != 9 {
		return ""
	}
	for _, t := range winTriples {
		if board[t[0]] != "" && board[t[0]] == board[t[1]] && board[t[1]] == board[t[2]] {
			return board[t[0]]
		}
	}
	return ""
}

func boardFull(board []string) bool {
	for _, c := range board {
		if c == "" {
			return false
		}
	}
	return true
}

// TickSnake advances the snake demo by one display tick, growing the
// score by a random increment until the randomized end is reached.
func TickSnake(g model.GameState, rng *rand.Rand) model.GameState {
	if g.Over {
		return g
	}
	out := g
	out.Score += rng.Intn(3) + 1
	// Random end; keeps the demo short-lived without real collision logic.
	if rng.Intn(20) == 0 {
		out.Over = true
	}
	return out
}
