// Package ui specifies custom controls for tview to assist in playing Othello in the terminal.
package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termthello/config"
	"termthello/engine"
	"termthello/engine/local"
	"termthello/othello"
	"termthello/sgf"
	"termthello/types"
)

// Palette slots in BoardUI.styles.
const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleBoardAlt
	styleHint
	styleCoord
	styleCursorFG
	styleLastPlayed
	styleCursorBG
	styleRobotMove
)

// Optional engine capabilities. LocalEngine provides all of them.
type (
	recordSource  interface{ Record() *sgf.GameRecord }
	clockSource   interface{ Elapsed() time.Duration }
	counterSource interface{ TotalMoves() int }
)

type BoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	gameConfig engine.GameConfig
	showHints  bool
	finished   bool
	selX       int
	selY       int
	message    string // why the last move was refused
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	onGameEnd  func(GameSummary)
	focusMode  bool
	updates    chan func()
	stopClock  chan struct{}
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	return g.focusMode
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *BoardUI) SelectedTile() *types.BoardPos {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.BoardPos{X: g.selX, Y: g.selY}
}

func (g *BoardUI) MoveSelection(h, v int) {
	if g.BoardState.Finished() {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		g.selX = g.BoardState.LastMove.X
		g.selY = g.BoardState.LastMove.Y
		if g.SelectedTile() == nil {
			// No move played yet, start next to the centre
			g.selX = g.BoardState.Width()/2 - 1
			g.selY = g.BoardState.Height()/2 - 1
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= g.BoardState.Width() {
		return
	}
	if g.selY+v < 0 || g.selY+v >= g.BoardState.Height() {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *BoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

// NewBoardUI creates the board widget. With a nil app, engine updates are
// applied immediately instead of being queued on the event loop.
func NewBoardUI(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(othello.Size),
		hint:       hint,
		app:        app,
		selX:       -1,
		selY:       -1,
		showHints:  c.Game.ShowHints,
		gameConfig: engine.DefaultConfig(),
	}
	board.SetConfig(c)
	if app != nil {
		board.updates = make(chan func(), 64)
		go board.pumpUpdates()
	}
	board.Box.SetDrawFunc(board.draw)
	return board
}

func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	state := g.BoardState
	if state == nil || state.Width() == 0 {
		return x, y, 1, 1
	}
	// 2 characters per cell for square appearance
	boardW, boardH := state.Width()*2, state.Height()
	robotColor := g.robotColor()
	symbols := g.cfg.Theme.Symbols

	for boardY := 0; boardY < state.Height(); boardY++ {
		for boardX := 0; boardX < state.Width(); boardX++ {
			piece := state.Board[boardY][boardX]
			bg := g.styles[styleBoard]
			if (boardX%2 + boardY%2) == 1 {
				bg = g.styles[styleBoardAlt]
			}

			drawRune := symbols.Empty
			fg := g.styles[styleCoord]
			switch {
			case piece == types.CellBlack:
				drawRune, fg = symbols.BlackPiece, g.styles[styleBlack]
			case piece == types.CellWhite:
				drawRune, fg = symbols.WhitePiece, g.styles[styleWhite]
			case g.showHints && !g.finished && state.IsHint(boardX, boardY):
				drawRune, fg = symbols.Hint, g.styles[styleHint]
			}

			tail := ' '
			if boardX == g.selX && boardY == g.selY {
				if g.cfg.Theme.DrawCursorBackground {
					bg = g.styles[styleCursorBG]
					if piece == types.CellEmpty {
						fg = g.styles[styleCursorFG]
					}
				} else {
					tail = '◂'
				}
			} else if boardX == state.LastMove.X && boardY == state.LastMove.Y && g.cfg.Theme.DrawLastPlayedBackground {
				bg = g.styles[styleLastPlayed]
				if robotColor != 0 && piece == robotColor {
					bg = g.styles[styleRobotMove]
				}
			}

			style := tcell.StyleDefault.Background(bg).Foreground(fg)
			drawPieceCell(screen, style, drawRune, tail, boardX, boardY, x+4, y)
		}
	}
	drawCoordinates(screen, x, y, g)
	// Add offset for coordinate display
	return x, y, boardW + 4, boardH + 2
}

// robotColor returns the robot's color, or 0 when two humans play.
func (g *BoardUI) robotColor() int {
	if g.gameConfig.Mode != engine.PlayerVsRobot {
		return 0
	}
	if g.gameConfig.PlayerColor == types.CellWhite {
		return types.CellBlack
	}
	return types.CellWhite
}

// SetGameConfig records the configuration of the game about to start.
func (g *BoardUI) SetGameConfig(gc engine.GameConfig) {
	g.gameConfig = gc
	if g.infoPanel != nil {
		g.infoPanel.SetMode(gc.String())
	}
}

// SetShowHints toggles the valid-move markers.
func (g *BoardUI) SetShowHints(show bool) {
	g.showHints = show
}

// ToggleHints flips the valid-move markers and returns the new setting.
func (g *BoardUI) ToggleHints() bool {
	g.showHints = !g.showHints
	g.refreshHint()
	return g.showHints
}

// SetGameEndFunc sets the handler called once per finished game.
func (g *BoardUI) SetGameEndFunc(f func(GameSummary)) {
	g.onGameEnd = f
}

// pumpUpdates hands engine updates to the event loop one at a time so
// they are applied in the order the engine reported them.
func (g *BoardUI) pumpUpdates() {
	for f := range g.updates {
		g.app.QueueUpdateDraw(f)
	}
}

func (g *BoardUI) update(f func()) {
	if g.app == nil {
		f()
		return
	}
	g.updates <- f
}

// ConnectEngine connects the board to a game engine.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) error {
	g.Close()
	g.finished = false
	g.message = ""
	g.eng = e
	g.ResetSelection()

	e.OnMove(func(x, y, color int, boardState *types.BoardState) {
		g.update(func() {
			g.BoardState = boardState
			g.refreshHint()
		})
	})

	e.OnGameEnd(func(outcome string) {
		state := e.GetBoardState()
		summary := g.summarize(e, state)
		g.update(func() {
			g.finished = true
			g.BoardState = state
			g.ResetSelection()
			g.refreshHint()
			if g.onGameEnd != nil {
				g.onGameEnd(summary)
			}
		})
	})

	if err := e.Connect(); err != nil {
		return err
	}

	g.BoardState = e.GetBoardState()
	g.finished = g.BoardState.Finished()
	g.refreshHint()
	g.startClock()
	return nil
}

// summarize collects the figures shown when a game ends.
func (g *BoardUI) summarize(e engine.GameEngine, state *types.BoardState) GameSummary {
	s := GameSummary{
		Phase:         state.Phase,
		Outcome:       state.Outcome,
		BlackCount:    state.BlackCount,
		WhiteCount:    state.WhiteCount,
		TotalMoves:    state.MoveNumber,
		ElapsedMillis: state.ElapsedMillis,
		Mode:          g.gameConfig.String(),
	}
	if c, ok := e.(counterSource); ok {
		s.TotalMoves = c.TotalMoves()
	}
	return s
}

// startClock refreshes the panel clock every second while the game runs.
func (g *BoardUI) startClock() {
	if g.app == nil {
		return
	}
	clock, ok := g.eng.(clockSource)
	if !ok {
		return
	}
	stop := make(chan struct{})
	g.stopClock = stop
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				ms := clock.Elapsed().Milliseconds()
				g.update(func() {
					if g.infoPanel != nil {
						g.infoPanel.SetElapsed(ms)
					}
				})
			}
		}
	}()
}

// PlayMove plays a move at the given coordinates.
func (g *BoardUI) PlayMove(x, y int) {
	if g.finished || g.eng == nil {
		return
	}
	if err := g.eng.PlayMove(x, y); err != nil {
		g.message = moveErrorText(err)
	} else {
		g.message = ""
	}
	g.refreshHint()
}

// Undo takes back the last move, or the last robot and human moves.
func (g *BoardUI) Undo() {
	if g.eng == nil {
		return
	}
	if err := g.eng.Undo(); err != nil {
		g.message = moveErrorText(err)
		g.refreshHint()
		return
	}
	g.finished = false
	g.message = ""
	g.refreshHint()
}

// Reset starts the game over with the same settings.
func (g *BoardUI) Reset() {
	if g.eng == nil {
		return
	}
	if err := g.eng.Reset(); err != nil {
		g.message = moveErrorText(err)
		g.refreshHint()
		return
	}
	g.finished = false
	g.message = ""
	g.ResetSelection()
	g.BoardState = g.eng.GetBoardState()
	g.refreshHint()
}

// Close disconnects the engine.
func (g *BoardUI) Close() {
	if g.stopClock != nil {
		close(g.stopClock)
		g.stopClock = nil
	}
	if g.eng == nil {
		return
	}
	g.eng.Close()
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),      // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor),      // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),      // 2
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),   // 3
		tcell.PaletteColor(c.Theme.Colors.HintColor),       // 4
		tcell.PaletteColor(c.Theme.Colors.CoordColor),      // 5
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),   // 6
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColor), // 7
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),   // 8
		tcell.PaletteColor(c.Theme.Colors.RobotMoveBG),     // 9
	}
	g.cfg = c
}

// moveErrorText turns an engine error into a line for the status bar.
func moveErrorText(err error) string {
	switch {
	case errors.Is(err, othello.ErrCellOccupied):
		return "That square is taken"
	case errors.Is(err, othello.ErrIllegalMove):
		return "That move flips nothing"
	case errors.Is(err, othello.ErrInvalidPosition):
		return "Off the board"
	case errors.Is(err, local.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, local.ErrRobotThinking):
		return "Wait for the robot"
	case errors.Is(err, local.ErrGameOver):
		return "The game is over"
	case errors.Is(err, local.ErrNothingToUndo):
		return "Nothing to undo"
	}
	return err.Error()
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
		if r, ok := g.eng.(recordSource); ok {
			g.infoPanel.SetMoves(r.Record().Moves())
		}
	}

	var statusLine, turnLine, controlsLine string

	if g.finished {
		statusLine = "───────── Game Complete ─────────\n"
		turnLine = fmt.Sprintf("  Result: %s\n", g.BoardState.Outcome)
		controlsLine = "  u undo   r new game   q menu"
	} else {
		if g.message != "" {
			statusLine = fmt.Sprintf("  ✗ %s\n", g.message)
		}

		toMove := engine.ColorName(g.BoardState.PlayerToMove)
		stone := "●"
		if g.BoardState.PlayerToMove == types.CellWhite {
			stone = "○"
		}
		switch {
		case g.eng == nil:
			turnLine = "\n"
		case g.eng.IsMyTurn() && g.gameConfig.Mode == engine.PlayerVsPlayer:
			turnLine = fmt.Sprintf("  %s %s to move\n", stone, toMove)
		case g.eng.IsMyTurn():
			turnLine = fmt.Sprintf("  %s Your move (%s)\n", stone, toMove)
		default:
			turnLine = "  ◌ Thinking...\n"
		}

		controlsLine = "  hjkl/↑↓←→ move   ⏎ play   u undo   r reset\n  t hints   f focus   q quit"
	}

	g.hint.SetText(statusLine + turnLine + controlsLine)
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.finished
}

// drawPieceCell draws a cell 2 characters wide.
func drawPieceCell(s tcell.Screen, c tcell.Style, r, tail rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, tail, nil, c)
}

// columnLabel returns the letter shown under column x.
func columnLabel(x int) rune {
	return rune('a' + x)
}

// rowLabel returns the number shown beside row y. Row 1 is at the top.
func rowLabel(y int) string {
	return fmt.Sprintf("%2d", y+1)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *BoardUI) {
	w, h := ui.BoardState.Width(), ui.BoardState.Height()

	style := tcell.StyleDefault.Foreground(ui.styles[styleCoord])
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursorBG]).Foreground(ui.styles[styleCursorFG])
	lpHighlight := tcell.StyleDefault.Background(ui.styles[styleLastPlayed])

	for ix := 0; ix < w; ix++ {
		_style := style
		if ix == ui.selX {
			_style = highlight
		} else if ix == ui.BoardState.LastMove.X {
			_style = lpHighlight
		}
		s.SetContent(x+4+(ix*2), y+h+1, columnLabel(ix), nil, _style)
		s.SetContent(x+4+(ix*2)+1, y+h+1, ' ', nil, _style)
	}

	for iy := 0; iy < h; iy++ {
		_style := style
		if iy == ui.selY {
			_style = highlight
		} else if iy == ui.BoardState.LastMove.Y {
			_style = lpHighlight
		}
		for i, ch := range rowLabel(iy) {
			s.SetContent(x+1+i, y+iy, ch, nil, _style)
		}
	}
}
