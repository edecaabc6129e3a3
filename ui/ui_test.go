package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rivo/tview"

	"termthello/config"
	"termthello/engine"
	"termthello/engine/local"
	"termthello/othello"
	"termthello/types"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{65_000, "01:05"},
		{3_599_000, "59:59"},
		{3_600_000, "60:00"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.ms); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestGameOverText(t *testing.T) {
	tests := []struct {
		name    string
		summary GameSummary
		want    []string
	}{
		{
			name: "black wins",
			summary: GameSummary{Phase: types.PhaseFinished, BlackCount: 40, WhiteCount: 24,
				TotalMoves: 60, ElapsedMillis: 125_000, Mode: "Player vs Hard AI"},
			want: []string{"Black Wins!", "Black 40", "24 White", "Mode: Player vs Hard AI", "Total Moves: 60", "Time Elapsed: 02:05"},
		},
		{
			name:    "white wipe-out",
			summary: GameSummary{Phase: types.PhaseFinished, WhiteCount: 13, TotalMoves: 9},
			want:    []string{"White Wins!", "Total Moves: 9"},
		},
		{
			name:    "draw",
			summary: GameSummary{Phase: types.PhaseDraw, BlackCount: 32, WhiteCount: 32},
			want:    []string{"It's a Draw!", "Black 32  vs  32 White"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := GameOverText(tt.summary)
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("GameOverText() missing %q in:\n%s", w, text)
				}
			}
		})
	}
}

func TestMoveErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("d4: %w", othello.ErrCellOccupied), "That square is taken"},
		{othello.ErrIllegalMove, "That move flips nothing"},
		{local.ErrNotYourTurn, "Not your turn"},
		{local.ErrRobotThinking, "Wait for the robot"},
		{local.ErrNothingToUndo, "Nothing to undo"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := moveErrorText(tt.err); got != tt.want {
			t.Errorf("moveErrorText(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestCoordinateLabels(t *testing.T) {
	if columnLabel(0) != 'a' || columnLabel(7) != 'h' {
		t.Errorf("column labels = %c..%c, want a..h", columnLabel(0), columnLabel(7))
	}
	if rowLabel(0) != " 1" || rowLabel(7) != " 8" {
		t.Errorf("row labels = %q..%q, want \" 1\"..\" 8\"", rowLabel(0), rowLabel(7))
	}
}

func TestGameConfigFromDefaults(t *testing.T) {
	gc := GameConfigFromDefaults(config.GameDefaults{Mode: "easy", PlayerColor: "white", RobotDelayMillis: 250})
	if gc.Mode != engine.PlayerVsRobot || gc.Difficulty != othello.Easy {
		t.Errorf("mode = %v/%v, want robot/easy", gc.Mode, gc.Difficulty)
	}
	if gc.PlayerColor != types.CellWhite {
		t.Errorf("PlayerColor = %d, want white", gc.PlayerColor)
	}
	if gc.RobotDelay != 250*time.Millisecond {
		t.Errorf("RobotDelay = %v, want 250ms", gc.RobotDelay)
	}

	gc = GameConfigFromDefaults(config.GameDefaults{Mode: "bogus", PlayerColor: "red", RobotDelayMillis: -1})
	if gc != engine.DefaultConfig() {
		t.Errorf("invalid defaults = %+v, want engine defaults", gc)
	}
}

func newTestBoard(t *testing.T, gc engine.GameConfig) (*BoardUI, *tview.TextView) {
	t.Helper()
	cfg := config.DefaultConfig
	hint := tview.NewTextView()
	board := NewBoardUI(nil, &cfg, hint)
	board.SetGameConfig(gc)
	if err := board.ConnectEngine(local.NewLocalEngine(gc)); err != nil {
		t.Fatalf("ConnectEngine: %v", err)
	}
	t.Cleanup(board.Close)
	return board, hint
}

func TestBoardPlaysAndReportsRejections(t *testing.T) {
	board, hint := newTestBoard(t, engine.GameConfig{Mode: engine.PlayerVsPlayer, PlayerColor: types.CellBlack})

	board.PlayMove(3, 2) // d3
	if board.BoardState.BlackCount != 4 || board.BoardState.WhiteCount != 1 {
		t.Fatalf("after d3 counts = %d/%d, want 4/1", board.BoardState.BlackCount, board.BoardState.WhiteCount)
	}
	if board.BoardState.PlayerToMove != types.CellWhite {
		t.Errorf("PlayerToMove = %d, want white", board.BoardState.PlayerToMove)
	}

	board.PlayMove(0, 0)
	if !strings.Contains(hint.GetText(true), "That move flips nothing") {
		t.Errorf("hint = %q, want the illegal move message", hint.GetText(true))
	}

	board.Undo()
	if board.BoardState.MoveNumber != 0 || board.BoardState.BlackCount != 2 {
		t.Errorf("after undo move=%d black=%d, want 0/2", board.BoardState.MoveNumber, board.BoardState.BlackCount)
	}
	if strings.Contains(hint.GetText(true), "flips nothing") {
		t.Error("undo should clear the error message")
	}
}

func TestBoardShowsRobotReply(t *testing.T) {
	board, _ := newTestBoard(t, engine.GameConfig{
		Mode: engine.PlayerVsRobot, PlayerColor: types.CellBlack, Difficulty: othello.Hard,
	})

	board.PlayMove(3, 2)
	if board.BoardState.MoveNumber != 2 {
		t.Fatalf("MoveNumber = %d, want 2 after the robot reply", board.BoardState.MoveNumber)
	}
	if lm := board.BoardState.LastMove; lm.X != 2 || lm.Y != 2 {
		t.Errorf("LastMove = (%d,%d), want c3 (2,2)", lm.X, lm.Y)
	}
	if board.robotColor() != types.CellWhite {
		t.Errorf("robotColor = %d, want white", board.robotColor())
	}
}

func TestBoardSelection(t *testing.T) {
	board, _ := newTestBoard(t, engine.GameConfig{Mode: engine.PlayerVsPlayer, PlayerColor: types.CellBlack})

	if board.SelectedTile() != nil {
		t.Fatal("no tile should be selected before the first key press")
	}
	board.MoveSelection(1, 0)
	if sel := board.SelectedTile(); sel == nil || sel.X != 3 || sel.Y != 3 {
		t.Fatalf("first selection = %+v, want (3,3)", sel)
	}
	board.MoveSelection(0, -1)
	board.MoveSelection(0, -1)
	if sel := board.SelectedTile(); sel.X != 3 || sel.Y != 1 {
		t.Errorf("selection = %+v, want (3,1)", sel)
	}
	for i := 0; i < 10; i++ {
		board.MoveSelection(-1, 0)
	}
	if sel := board.SelectedTile(); sel.X != 0 {
		t.Errorf("selection left the board: %+v", sel)
	}
}

func TestBoardReportsGameEnd(t *testing.T) {
	board, _ := newTestBoard(t, engine.GameConfig{Mode: engine.PlayerVsPlayer, PlayerColor: types.CellBlack})

	var summaries []GameSummary
	board.SetGameEndFunc(func(s GameSummary) { summaries = append(summaries, s) })

	played := 0
	for !board.IsFinished() && played < 64 {
		hints := board.BoardState.Hints
		if len(hints) == 0 {
			t.Fatalf("no hints in a running game after %d moves", played)
		}
		board.PlayMove(hints[0].X, hints[0].Y)
		played++
	}

	if len(summaries) != 1 {
		t.Fatalf("game end reported %d times, want 1", len(summaries))
	}
	s := summaries[0]
	if s.TotalMoves != played {
		t.Errorf("TotalMoves = %d, want %d", s.TotalMoves, played)
	}
	if s.BlackCount+s.WhiteCount > 64 || s.Mode != "Player vs Player" {
		t.Errorf("summary = %+v", s)
	}
	if !board.BoardState.Finished() || board.SelectedTile() != nil {
		t.Error("finished board should be marked finished with no selection")
	}

	board.Reset()
	if board.IsFinished() || board.BoardState.MoveNumber != 0 {
		t.Error("reset should start a fresh game")
	}
}
