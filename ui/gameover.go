package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"termthello/types"
)

// GameSummary holds the figures shown when a game ends.
type GameSummary struct {
	Phase         string // types.PhaseFinished or types.PhaseDraw
	Outcome       string
	BlackCount    int
	WhiteCount    int
	TotalMoves    int
	ElapsedMillis int64
	Mode          string
}

// Winner returns "Black" or "White", or "" for a draw.
func (s GameSummary) Winner() string {
	if s.Phase == types.PhaseDraw || s.BlackCount == s.WhiteCount {
		return ""
	}
	if s.BlackCount > s.WhiteCount {
		return "Black"
	}
	return "White"
}

// GameOverText renders the body of the game-over dialog.
func GameOverText(s GameSummary) string {
	var b strings.Builder
	b.WriteString("GAME OVER\n\n")
	if w := s.Winner(); w != "" {
		fmt.Fprintf(&b, "%s Wins!\n\n", w)
	} else {
		b.WriteString("It's a Draw!\n\n")
	}
	fmt.Fprintf(&b, "● Black %d  vs  %d White ○\n\n", s.BlackCount, s.WhiteCount)
	if s.Mode != "" {
		fmt.Fprintf(&b, "Mode: %s\n", s.Mode)
	}
	fmt.Fprintf(&b, "Total Moves: %d\n", s.TotalMoves)
	fmt.Fprintf(&b, "Time Elapsed: %s", FormatClock(s.ElapsedMillis))
	return b.String()
}

// Buttons of the game-over dialog, in order.
const (
	GameOverNewGame = "New Game"
	GameOverReview  = "Review Board"
	GameOverMenu    = "Menu"
)

// NewGameOverModal builds the dialog shown when a game ends. done receives
// the label of the chosen button.
func NewGameOverModal(s GameSummary, done func(label string)) *tview.Modal {
	modal := tview.NewModal().
		SetText(GameOverText(s)).
		AddButtons([]string{GameOverNewGame, GameOverReview, GameOverMenu}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			done(buttonLabel)
		})
	modal.SetBackgroundColor(MenuColors.CardBG)
	modal.SetTextColor(MenuColors.Title)
	modal.SetButtonBackgroundColor(MenuColors.ButtonBG)
	modal.SetButtonTextColor(MenuColors.ButtonText)
	modal.SetBorderColor(MenuColors.BorderFocus)
	return modal
}
