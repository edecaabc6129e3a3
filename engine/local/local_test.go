package local

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"termthello/engine"
	"termthello/othello"
	"termthello/types"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type moveEvent struct {
	x, y, color int
	state       *types.BoardState
}

// recorder collects callback invocations.
type recorder struct {
	mu       sync.Mutex
	moves    []moveEvent
	outcomes []string
}

func (r *recorder) attach(e *LocalEngine) {
	e.OnMove(func(x, y, color int, state *types.BoardState) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.moves = append(r.moves, moveEvent{x, y, color, state})
	})
	e.OnGameEnd(func(outcome string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.outcomes = append(r.outcomes, outcome)
	})
}

func (r *recorder) moveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.moves)
}

func newTestEngine(t *testing.T, cfg engine.GameConfig) (*LocalEngine, *fakeClock, *recorder) {
	t.Helper()
	clock := newFakeClock()
	e := NewLocalEngine(cfg, WithClock(clock.Now))
	rec := &recorder{}
	rec.attach(e)
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(e.Close)
	return e, clock, rec
}

func pvpConfig() engine.GameConfig {
	return engine.GameConfig{Mode: engine.PlayerVsPlayer, PlayerColor: types.CellBlack}
}

func robotConfig(color int, delay time.Duration) engine.GameConfig {
	return engine.GameConfig{
		Mode:        engine.PlayerVsRobot,
		PlayerColor: color,
		Difficulty:  othello.Hard,
		RobotDelay:  delay,
	}
}

func TestNotConnected(t *testing.T) {
	e := NewLocalEngine(pvpConfig())
	if err := e.PlayMove(3, 2); !errors.Is(err, ErrNotConnected) {
		t.Errorf("PlayMove error = %v, want ErrNotConnected", err)
	}
	if err := e.Undo(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Undo error = %v, want ErrNotConnected", err)
	}
	if err := e.Reset(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Reset error = %v, want ErrNotConnected", err)
	}
	if e.IsMyTurn() {
		t.Error("IsMyTurn before Connect")
	}
}

func TestPlayMovePvP(t *testing.T) {
	e, _, rec := newTestEngine(t, pvpConfig())

	if err := e.PlayMove(3, 2); err != nil {
		t.Fatalf("PlayMove(d3): %v", err)
	}
	if rec.moveCount() != 1 {
		t.Fatalf("move callbacks = %d, want 1", rec.moveCount())
	}
	ev := rec.moves[0]
	if ev.x != 3 || ev.y != 2 || ev.color != types.CellBlack {
		t.Errorf("callback = (%d, %d, %d), want (3, 2, 1)", ev.x, ev.y, ev.color)
	}
	if ev.state.BlackCount != 4 || ev.state.WhiteCount != 1 {
		t.Errorf("counts = %d/%d, want 4/1", ev.state.BlackCount, ev.state.WhiteCount)
	}
	if ev.state.PlayerToMove != types.CellWhite {
		t.Errorf("PlayerToMove = %d, want white", ev.state.PlayerToMove)
	}
	if ev.state.LastMove.X != 3 || ev.state.LastMove.Y != 2 {
		t.Errorf("LastMove = %+v", ev.state.LastMove)
	}
	if len(ev.state.Hints) != 3 || !ev.state.IsHint(2, 2) {
		t.Errorf("Hints = %v, want white's three replies", ev.state.Hints)
	}
	if e.GetPlayerColor() != types.CellWhite {
		t.Errorf("GetPlayerColor = %d, want the side to move", e.GetPlayerColor())
	}
	if !e.IsMyTurn() {
		t.Error("second player cannot move in PvP")
	}
	if !strings.Contains(e.RecordSGF(), ";B[dc])") {
		t.Errorf("record missing move:\n%s", e.RecordSGF())
	}
}

func TestPlayMoveRejected(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want error
	}{
		{"occupied", 3, 3, othello.ErrCellOccupied},
		{"illegal", 0, 0, othello.ErrIllegalMove},
		{"off board", 8, 1, othello.ErrInvalidPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, rec := newTestEngine(t, pvpConfig())
			if err := e.PlayMove(tt.x, tt.y); !errors.Is(err, tt.want) {
				t.Errorf("PlayMove error = %v, want %v", err, tt.want)
			}
			if rec.moveCount() != 0 {
				t.Error("rejected move fired a callback")
			}
			if e.GetBoardState().BlackCount != 2 {
				t.Error("rejected move changed the board")
			}
		})
	}
}

func TestRobotRepliesImmediately(t *testing.T) {
	e, _, rec := newTestEngine(t, robotConfig(types.CellBlack, 0))

	if err := e.PlayMove(3, 2); err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if rec.moveCount() != 2 {
		t.Fatalf("move callbacks = %d, want human and robot", rec.moveCount())
	}
	robot := rec.moves[1]
	if robot.x != 2 || robot.y != 2 || robot.color != types.CellWhite {
		t.Errorf("robot move = (%d, %d, %d), want c3 for white", robot.x, robot.y, robot.color)
	}
	state := e.GetBoardState()
	if state.LastMove.X != 2 || state.LastMove.Y != 2 {
		t.Errorf("LastMove = %+v, want the robot's move", state.LastMove)
	}
	if state.PlayerToMove != types.CellBlack || !e.IsMyTurn() {
		t.Error("human should be to move after the robot")
	}
	if e.TotalMoves() != 2 {
		t.Errorf("TotalMoves = %d, want 2", e.TotalMoves())
	}
	if e.GetPlayerColor() != types.CellBlack {
		t.Errorf("GetPlayerColor = %d, want black", e.GetPlayerColor())
	}
}

func TestRobotOpensAsBlack(t *testing.T) {
	e, _, rec := newTestEngine(t, robotConfig(types.CellWhite, 0))

	if rec.moveCount() != 1 {
		t.Fatalf("move callbacks = %d, want the robot's opening", rec.moveCount())
	}
	if ev := rec.moves[0]; ev.x != 3 || ev.y != 2 || ev.color != types.CellBlack {
		t.Errorf("opening = (%d, %d, %d), want d3", ev.x, ev.y, ev.color)
	}
	if !e.IsMyTurn() {
		t.Error("human (white) should be to move")
	}
	if err := e.PlayMove(2, 2); err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if e.TotalMoves() != 3 {
		t.Errorf("TotalMoves = %d, want 3", e.TotalMoves())
	}

	// Undo rewinds the robot's reply and the human's move.
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	state := e.GetBoardState()
	if state.BlackCount != 4 || state.WhiteCount != 1 || state.PlayerToMove != types.CellWhite {
		t.Errorf("after undo: %d/%d, to move %d", state.BlackCount, state.WhiteCount, state.PlayerToMove)
	}
	if n := e.Record().Len(); n != 1 {
		t.Errorf("record has %d moves, want 1", n)
	}
}

func TestUndoRobotMode(t *testing.T) {
	e, _, rec := newTestEngine(t, robotConfig(types.CellBlack, 0))
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on new game = %v, want ErrNothingToUndo", err)
	}
	if err := e.PlayMove(3, 2); err != nil {
		t.Fatal(err)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	state := e.GetBoardState()
	if state.BlackCount != 2 || state.WhiteCount != 2 || state.MoveNumber != 0 {
		t.Errorf("undo did not restore the opening: %+v", state)
	}
	if state.LastMove.X != -1 {
		t.Error("undo should clear the move highlight")
	}
	if e.Record().Len() != 0 {
		t.Error("record not rewound")
	}
	last := rec.moves[len(rec.moves)-1]
	if last.x != -1 || last.y != -1 {
		t.Errorf("undo callback at (%d, %d), want (-1, -1)", last.x, last.y)
	}
	if !e.IsMyTurn() {
		t.Error("human should be to move after undo")
	}
}

func TestUndoPvPOnePly(t *testing.T) {
	e, _, _ := newTestEngine(t, pvpConfig())
	e.PlayMove(3, 2)
	e.PlayMove(2, 2)
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	state := e.GetBoardState()
	if state.PlayerToMove != types.CellWhite || state.BlackCount != 4 {
		t.Errorf("after undo: to move %d, black %d", state.PlayerToMove, state.BlackCount)
	}
	if e.TotalMoves() != 2 {
		t.Errorf("TotalMoves = %d; undo must not decrement it", e.TotalMoves())
	}
}

func TestRobotThinking(t *testing.T) {
	e, _, rec := newTestEngine(t, robotConfig(types.CellBlack, time.Hour))

	if err := e.PlayMove(3, 2); err != nil {
		t.Fatal(err)
	}
	if !e.IsRobotThinking() {
		t.Fatal("robot move should be pending")
	}
	if e.IsMyTurn() {
		t.Error("IsMyTurn while the robot is thinking")
	}
	if err := e.PlayMove(2, 2); !errors.Is(err, ErrRobotThinking) {
		t.Errorf("PlayMove error = %v, want ErrRobotThinking", err)
	}

	// Undo cancels the pending robot move and takes back the human's.
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.IsRobotThinking() {
		t.Error("undo did not cancel the robot")
	}
	if e.GetBoardState().MoveNumber != 0 {
		t.Error("human move not undone")
	}

	e.PlayMove(3, 2)
	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if e.IsRobotThinking() {
		t.Error("reset did not cancel the robot")
	}
	if got := rec.moveCount(); got != 3 {
		t.Errorf("move callbacks = %d, want 3 (two human moves and one undo)", got)
	}
}

func TestRobotTimerFires(t *testing.T) {
	e := NewLocalEngine(robotConfig(types.CellBlack, 10*time.Millisecond))
	robotMoved := make(chan moveEvent, 4)
	e.OnMove(func(x, y, color int, state *types.BoardState) {
		if color == types.CellWhite {
			robotMoved <- moveEvent{x, y, color, state}
		}
	})
	if err := e.Connect(); err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if err := e.PlayMove(3, 2); err != nil {
		t.Fatal(err)
	}
	select {
	case ev := <-robotMoved:
		if ev.x != 2 || ev.y != 2 {
			t.Errorf("robot played (%d, %d), want c3", ev.x, ev.y)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("robot did not move")
	}
	if e.IsRobotThinking() {
		t.Error("robot still thinking after its move")
	}
}

func TestClockFollowsUndo(t *testing.T) {
	e, clock, _ := newTestEngine(t, pvpConfig())

	clock.Advance(3 * time.Second)
	e.PlayMove(3, 2) // stored with 3s
	clock.Advance(4 * time.Second)
	e.PlayMove(2, 2) // stored with 7s
	clock.Advance(10 * time.Second)
	if got := e.Elapsed(); got != 17*time.Second {
		t.Errorf("Elapsed = %v, want 17s", got)
	}

	e.Undo()
	if got := e.Elapsed(); got != 3*time.Second {
		t.Errorf("Elapsed after undo = %v, want 3s", got)
	}
	clock.Advance(time.Second)
	if got := e.GetBoardState().ElapsedMillis; got != 4000 {
		t.Errorf("ElapsedMillis = %d, want 4000", got)
	}

	e.Reset()
	if got := e.Elapsed(); got != 0 {
		t.Errorf("Elapsed after reset = %v", got)
	}
}

func TestGameEnd(t *testing.T) {
	e, clock, rec := newTestEngine(t, pvpConfig())

	for i := 0; i < 100; i++ {
		state := e.GetBoardState()
		if state.Finished() {
			break
		}
		if len(state.Hints) == 0 {
			t.Fatalf("no hints for the side to move: %+v", state)
		}
		h := state.Hints[len(state.Hints)-1]
		if err := e.PlayMove(h.X, h.Y); err != nil {
			t.Fatalf("PlayMove(%v): %v", h, err)
		}
		clock.Advance(time.Second)
	}

	state := e.GetBoardState()
	if !state.Finished() {
		t.Fatal("game did not finish")
	}
	if len(rec.outcomes) != 1 {
		t.Fatalf("end callbacks = %d, want 1", len(rec.outcomes))
	}
	if rec.outcomes[0] != state.Outcome || state.Outcome == "" {
		t.Errorf("outcome = %q, state says %q", rec.outcomes[0], state.Outcome)
	}
	if len(state.Hints) != 0 {
		t.Error("finished game still lists hints")
	}
	if err := e.PlayMove(0, 0); !errors.Is(err, ErrGameOver) {
		t.Errorf("PlayMove after end = %v, want ErrGameOver", err)
	}
	if e.IsMyTurn() {
		t.Error("IsMyTurn after the game ended")
	}
	if e.Record().Result == "?" {
		t.Error("record result not set")
	}

	frozen := e.Elapsed()
	clock.Advance(time.Minute)
	if e.Elapsed() != frozen {
		t.Error("clock kept running after the game ended")
	}

	// Undoing the final move reopens the game.
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.GetBoardState().Finished() || e.Record().Result != "?" {
		t.Error("undo did not reopen the game")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		status       othello.GameStatus
		black, white int
		want         string
	}{
		{othello.Finished, 40, 24, "Black wins 40–24"},
		{othello.Finished, 10, 54, "White wins 54–10"},
		{othello.Draw, 32, 32, "Draw 32–32"},
		{othello.InProgress, 5, 3, ""},
	}
	for _, tt := range tests {
		if got := Outcome(tt.status, tt.black, tt.white); got != tt.want {
			t.Errorf("Outcome(%v, %d, %d) = %q, want %q", tt.status, tt.black, tt.white, got, tt.want)
		}
	}
}

func TestRecordNames(t *testing.T) {
	e, _, _ := newTestEngine(t, robotConfig(types.CellWhite, 0))
	r := e.Record()
	if r.PlayerBlack != "Hard AI" || r.PlayerWhite != "Player" {
		t.Errorf("players = %q / %q", r.PlayerBlack, r.PlayerWhite)
	}
	if r.Name != e.Session() || e.Session() == "" {
		t.Errorf("record name %q, session %q", r.Name, e.Session())
	}
}
