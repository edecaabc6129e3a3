// Package local provides an in-process engine that runs the Othello rules and
// the robot opponent inside the application.
package local

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"termthello/engine"
	"termthello/othello"
	"termthello/sgf"
	"termthello/types"
)

var (
	ErrNotConnected  = errors.New("engine not connected")
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrRobotThinking = errors.New("robot is thinking")
	ErrNothingToUndo = errors.New("no move to undo")
)

// Option configures a LocalEngine.
type Option func(*LocalEngine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *LocalEngine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock replaces time.Now for measuring elapsed game time.
func WithClock(now func() time.Time) Option {
	return func(e *LocalEngine) {
		e.now = now
	}
}

// WithRand sets the random source of the easy robot.
func WithRand(r *rand.Rand) Option {
	return func(e *LocalEngine) {
		e.rng = r
	}
}

// LocalEngine implements engine.GameEngine on top of othello.Game. All game
// access goes through mu; callbacks are always called with mu released.
type LocalEngine struct {
	config  engine.GameConfig
	game    *othello.Game
	record  *sgf.GameRecord
	session string

	log *zap.SugaredLogger
	now func() time.Time
	rng *rand.Rand

	connected bool
	human     othello.Player // robot mode only

	// Elapsed time is offset plus the time since start, frozen once the
	// game ends.
	start   time.Time
	offset  int64
	stopped bool

	lastMove     othello.Coordinates
	haveLastMove bool

	robotTimer   *time.Timer
	robotPending bool
	generation   int // bumped to invalidate scheduled robot moves

	moveCallback func(x, y, color int, boardState *types.BoardState)
	endCallback  func(outcome string)

	mu sync.Mutex
}

// NewLocalEngine creates an engine for the given configuration.
func NewLocalEngine(cfg engine.GameConfig, opts ...Option) *LocalEngine {
	e := &LocalEngine{
		config:  cfg,
		session: uuid.NewString(),
		log:     zap.NewNop().Sugar(),
		now:     time.Now,
		human:   playerOf(cfg.PlayerColor),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng != nil {
		e.game = othello.NewGame(othello.WithRand(e.rng))
	} else {
		e.game = othello.NewGame()
	}
	e.log = e.log.With("session", e.session)
	return e
}

// Session returns the id used in log lines and the record's game name.
func (e *LocalEngine) Session() string {
	return e.session
}

// Config returns the game configuration.
func (e *LocalEngine) Config() engine.GameConfig {
	return e.config
}

// Connect starts a fresh game.
func (e *LocalEngine) Connect() error {
	e.mu.Lock()
	e.connected = true
	next := e.newGameLocked()
	e.mu.Unlock()

	e.log.Infow("game started",
		"mode", e.config.String(),
		"human", e.human.String(),
		"robot_delay", e.config.RobotDelay,
	)
	if next != nil {
		next()
	}
	return nil
}

// Reset abandons the current game and starts a new one.
func (e *LocalEngine) Reset() error {
	e.mu.Lock()
	if !e.connected {
		e.mu.Unlock()
		return ErrNotConnected
	}
	e.cancelRobotLocked()
	next := e.newGameLocked()
	e.mu.Unlock()

	e.log.Infow("game reset")
	if next != nil {
		next()
	}
	return nil
}

// newGameLocked resets all game state. It returns the robot's opening move
// when the robot plays black.
func (e *LocalEngine) newGameLocked() func() {
	e.game.Reset()
	e.record = sgf.NewGameRecord(e.playerName(othello.Black), e.playerName(othello.White), e.session)
	e.start = e.now()
	e.offset = 0
	e.stopped = false
	e.haveLastMove = false
	if e.robotToMoveLocked() {
		return e.scheduleRobotLocked()
	}
	return nil
}

func (e *LocalEngine) playerName(p othello.Player) string {
	if e.config.Mode == engine.PlayerVsRobot && p != e.human {
		if e.config.Difficulty == othello.Hard {
			return "Hard AI"
		}
		return "Easy AI"
	}
	if e.config.Mode == engine.PlayerVsPlayer {
		return p.String()
	}
	return "Player"
}

// Record returns a copy of the SGF record of the current game.
func (e *LocalEngine) Record() *sgf.GameRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record.Clone()
}

// RecordSGF renders the record of the current game.
func (e *LocalEngine) RecordSGF() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record.String()
}

// elapsedLocked returns the game time in milliseconds.
func (e *LocalEngine) elapsedLocked() int64 {
	if e.stopped {
		return e.offset
	}
	return e.offset + e.now().Sub(e.start).Milliseconds()
}

// Elapsed returns the time played in the current game.
func (e *LocalEngine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return time.Duration(e.elapsedLocked()) * time.Millisecond
}

// PlayMove plays for the side to move at column x, row y.
func (e *LocalEngine) PlayMove(x, y int) error {
	e.mu.Lock()

	if err := e.checkHumanMoveLocked(); err != nil {
		e.mu.Unlock()
		return err
	}

	at := othello.Coordinates{Row: y, Column: x}
	board := e.game.Board()
	if x < 0 || x >= board.Size() || y < 0 || y >= board.Size() {
		e.mu.Unlock()
		return fmt.Errorf("%w: (%d, %d)", othello.ErrInvalidPosition, x, y)
	}
	if !board.IsEmpty(y, x) {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", othello.ErrCellOccupied, at)
	}

	mover := e.game.CurrentPlayer()
	res := e.game.PlayMove(y, x, e.elapsedLocked())
	if !res.Valid {
		// An illegal attempt may still settle a dead position.
		n := e.finishIfOverLocked()
		e.mu.Unlock()
		n.fire()
		return fmt.Errorf("%w: %s", othello.ErrIllegalMove, at)
	}

	e.log.Debugw("move played",
		"player", mover.String(),
		"at", at.String(),
		"flipped", res.FlippedCount,
		"next", res.NextPlayer.String(),
	)
	n := e.afterMoveLocked(at, mover)
	next := e.maybeScheduleRobotLocked()
	e.mu.Unlock()

	n.fire()
	if next != nil {
		next()
	}
	return nil
}

func (e *LocalEngine) checkHumanMoveLocked() error {
	switch {
	case !e.connected:
		return ErrNotConnected
	case e.game.Status() != othello.InProgress:
		return ErrGameOver
	case e.robotPending:
		return ErrRobotThinking
	case e.robotToMoveLocked():
		return ErrNotYourTurn
	}
	return nil
}

func (e *LocalEngine) robotToMoveLocked() bool {
	return e.config.Mode == engine.PlayerVsRobot &&
		e.game.Status() == othello.InProgress &&
		e.game.CurrentPlayer() != e.human
}

// notice collects the callbacks to run once the lock is released.
type notice struct {
	moveCallback func(x, y, color int, boardState *types.BoardState)
	endCallback  func(outcome string)
	x, y, color  int
	state        *types.BoardState
	moved        bool
	ended        bool
	outcome      string
}

func (n notice) fire() {
	if n.moved && n.moveCallback != nil {
		n.moveCallback(n.x, n.y, n.color, n.state)
	}
	if n.ended && n.endCallback != nil {
		n.endCallback(n.outcome)
	}
}

// afterMoveLocked updates the record and the move highlight and prepares
// the notifications for a move that was just played.
func (e *LocalEngine) afterMoveLocked(at othello.Coordinates, mover othello.Player) notice {
	color := colorOf(mover)
	if err := e.record.AddMove(at.Column, at.Row, color); err != nil {
		e.log.Errorw("record move", "at", at.String(), zap.Error(err))
	}
	e.lastMove = at
	e.haveLastMove = true

	n := e.finishIfOverLocked()
	n.moved = true
	n.moveCallback = e.moveCallback
	n.x, n.y, n.color = at.Column, at.Row, color
	n.state = e.boardStateLocked()
	return n
}

// finishIfOverLocked stops the clock and closes the record when the game
// has just ended.
func (e *LocalEngine) finishIfOverLocked() notice {
	if e.game.Status() == othello.InProgress || e.stopped {
		return notice{}
	}
	e.offset = e.elapsedLocked()
	e.stopped = true

	board := e.game.Board()
	black, white := board.CountPieces(othello.Black), board.CountPieces(othello.White)
	e.record.SetResult(black, white, true)
	outcome := Outcome(e.game.Status(), black, white)

	e.log.Infow("game over",
		"outcome", outcome,
		"black", black,
		"white", white,
		"moves", e.game.TotalMoves(),
		"elapsed_ms", e.offset,
		"result", e.record.Result,
	)
	return notice{ended: true, endCallback: e.endCallback, outcome: outcome}
}

// Outcome describes a finished game, e.g. "Black wins 40–24" or "Draw 32–32".
func Outcome(status othello.GameStatus, black, white int) string {
	switch {
	case status == othello.InProgress:
		return ""
	case black > white:
		return fmt.Sprintf("Black wins %d–%d", black, white)
	case white > black:
		return fmt.Sprintf("White wins %d–%d", white, black)
	}
	return fmt.Sprintf("Draw %d–%d", black, white)
}

func (e *LocalEngine) maybeScheduleRobotLocked() func() {
	if !e.robotToMoveLocked() {
		return nil
	}
	return e.scheduleRobotLocked()
}

// scheduleRobotLocked arms the robot's next move. With a positive delay the
// move runs from a timer; otherwise the returned func must be called by the
// caller once the lock is released.
func (e *LocalEngine) scheduleRobotLocked() func() {
	e.robotPending = true
	gen := e.generation
	if e.config.RobotDelay <= 0 {
		return func() { e.robotMove(gen) }
	}
	e.robotTimer = time.AfterFunc(e.config.RobotDelay, func() { e.robotMove(gen) })
	return nil
}

func (e *LocalEngine) cancelRobotLocked() {
	e.generation++
	if e.robotTimer != nil {
		e.robotTimer.Stop()
		e.robotTimer = nil
	}
	e.robotPending = false
}

// robotMove plays the robot's move unless it was cancelled after being
// scheduled.
func (e *LocalEngine) robotMove(gen int) {
	e.mu.Lock()
	if gen != e.generation || !e.robotPending {
		e.mu.Unlock()
		return
	}
	e.robotPending = false
	e.robotTimer = nil
	if !e.robotToMoveLocked() {
		e.mu.Unlock()
		return
	}

	mover := e.game.CurrentPlayer()
	at, ok := e.game.PlayRobotMove(e.config.Difficulty, e.elapsedLocked())
	if !ok {
		// The game settles passes itself, so a robot without a move means
		// the game state is inconsistent.
		e.log.Warnw("robot found no move", "player", mover.String())
		e.mu.Unlock()
		return
	}
	e.log.Debugw("robot moved",
		"player", mover.String(),
		"difficulty", e.config.Difficulty.String(),
		"at", at.String(),
	)
	n := e.afterMoveLocked(at, mover)
	next := e.maybeScheduleRobotLocked() // the human may have to pass
	e.mu.Unlock()

	n.fire()
	if next != nil {
		next()
	}
}

// Undo takes back the last move. Against the robot it rewinds until the
// human is to move, cancelling a robot move that has not been played yet.
func (e *LocalEngine) Undo() error {
	e.mu.Lock()
	if !e.connected {
		e.mu.Unlock()
		return ErrNotConnected
	}
	if e.game.HistoryLen() == 0 {
		e.mu.Unlock()
		return ErrNothingToUndo
	}
	e.cancelRobotLocked()

	undone := 0
	for e.game.Undo() {
		undone++
		if e.config.Mode != engine.PlayerVsRobot || e.game.CurrentPlayer() == e.human {
			break
		}
	}
	e.record.UndoMoves(undone)
	e.haveLastMove = false

	// Resume the clock from the time stored with the newest remaining move.
	e.offset = e.game.LastSnapshotElapsedMillis()
	e.start = e.now()
	e.stopped = false

	e.log.Infow("undo", "plies", undone, "elapsed_ms", e.offset)
	n := notice{moved: true, moveCallback: e.moveCallback, x: -1, y: -1, state: e.boardStateLocked()}
	next := e.maybeScheduleRobotLocked() // robot opens again after a full rewind
	e.mu.Unlock()

	n.fire()
	if next != nil {
		next()
	}
	return nil
}

// GetBoardState returns a copy of the current board state.
func (e *LocalEngine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boardStateLocked()
}

// boardStateLocked builds a fresh BoardState from the game.
func (e *LocalEngine) boardStateLocked() *types.BoardState {
	state := StateOf(e.game)
	state.ElapsedMillis = e.elapsedLocked()
	if e.haveLastMove {
		state.LastMove.X = e.lastMove.Column
		state.LastMove.Y = e.lastMove.Row
	}
	return state
}

// IsMyTurn returns true if a human may move now.
func (e *LocalEngine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkHumanMoveLocked() == nil
}

// IsRobotThinking reports whether a robot move is scheduled.
func (e *LocalEngine) IsRobotThinking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.robotPending
}

// TotalMoves counts every move played in this game, undone ones included.
func (e *LocalEngine) TotalMoves() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.TotalMoves()
}

// GetPlayerColor returns the human player's color (1=black, 2=white).
// In player-vs-player mode it is the color to move.
func (e *LocalEngine) GetPlayerColor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.config.Mode == engine.PlayerVsPlayer {
		return colorOf(e.game.CurrentPlayer())
	}
	return colorOf(e.human)
}

// OnMove registers a callback for when a move is played. Undo reports a
// move at (-1, -1).
func (e *LocalEngine) OnMove(callback func(x, y, color int, boardState *types.BoardState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *LocalEngine) OnGameEnd(callback func(outcome string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endCallback = callback
}

// Close cancels any pending robot move.
func (e *LocalEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelRobotLocked()
	e.connected = false
	e.log.Debugw("engine closed")
}

var _ engine.GameEngine = (*LocalEngine)(nil)
