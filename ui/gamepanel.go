package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termthello/othello"
	"termthello/sgf"
	"termthello/types"
)

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	mode       string
	elapsed    int64
	moves      []sgf.Move
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	if state != nil {
		p.elapsed = state.ElapsedMillis
	}
	p.refresh()
}

// SetMode sets the game mode label, such as "Player vs Hard AI".
func (p *GameInfoPanel) SetMode(mode string) {
	p.mode = mode
	p.refresh()
}

// SetElapsed updates the clock between moves.
func (p *GameInfoPanel) SetElapsed(ms int64) {
	if p.boardState != nil && p.boardState.Finished() {
		return
	}
	p.elapsed = ms
	p.refresh()
}

// SetMoves sets the move list, passes included.
func (p *GameInfoPanel) SetMoves(moves []sgf.Move) {
	p.moves = moves
	p.refresh()
}

// FormatClock renders milliseconds as MM:SS. Minutes keep counting past 59.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// moveLabel renders a move node in board notation.
func moveLabel(m sgf.Move) string {
	if m.IsPass() {
		return "pass"
	}
	return othello.Coordinates{Row: m.Y, Column: m.X}.String()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.boardState == nil {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	if p.mode != "" {
		text += fmt.Sprintf("[white]Mode:[-:-:-] %s\n", p.mode)
	}
	text += fmt.Sprintf("[white]Time:[-:-:-] %s\n", FormatClock(p.elapsed))
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", p.boardState.MoveNumber)
	text += fmt.Sprintf("[white]● Black:[-:-:-] %d\n", p.boardState.BlackCount)
	text += fmt.Sprintf("[white]○ White:[-:-:-] %d\n", p.boardState.WhiteCount)

	if p.boardState.Finished() {
		text += fmt.Sprintf("\n[yellow::b]%s[-:-:-]\n", p.boardState.Outcome)
	}

	if len(p.moves) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		// Show the most recent moves that fit
		maxVisible := 12
		start := 0
		if len(p.moves) > maxVisible {
			start = len(p.moves) - maxVisible
		}

		for i := start; i < len(p.moves); i++ {
			m := p.moves[i]

			colorStr := "[white]B[-]"
			if m.Color == types.CellWhite {
				colorStr = "[dimgray]W[-]"
			}

			marker := " "
			if i == len(p.moves)-1 {
				marker = "[white]>[-]"
			}

			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, moveLabel(m))
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	infoPanel.SetMode(board.gameConfig.String())
	board.infoPanel = infoPanel
	board.refreshHint()

	// Horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 28, 0, false)

	// Board area on top, status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 6, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()
	board.infoPanel = nil

	boardWidth := othello.Size*2 + 4 // 2 chars per cell + coordinates
	boardHeight := othello.Size + 2

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
