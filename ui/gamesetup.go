package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termthello/config"
	"termthello/engine"
	"termthello/types"
)

// setupModes lists the mode dropdown entries by their config names.
var setupModes = []string{"pvp", "easy", "hard"}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig, bool)
	onCancel func()

	gameConfig engine.GameConfig
	showHints  bool
}

// NewGameSetup creates a new game setup form starting from the config's
// game defaults. onStart receives the chosen configuration and whether
// valid moves should be marked.
func NewGameSetup(defaults config.GameDefaults, onStart func(engine.GameConfig, bool), onCancel func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:    onStart,
		onCancel:   onCancel,
		gameConfig: GameConfigFromDefaults(defaults),
		showHints:  defaults.ShowHints,
	}

	modes := make([]string, len(setupModes))
	modeIndex := 0
	for i, name := range setupModes {
		gc := setup.gameConfig
		_ = gc.ParseMode(name)
		modes[i] = gc.String()
		if name == setup.gameConfig.ModeName() {
			modeIndex = i
		}
	}
	colors := []string{"Black (play first)", "White (play second)"}

	form := tview.NewForm()

	form.AddDropDown("Mode", modes, modeIndex, func(option string, index int) {
		if index >= 0 {
			_ = setup.gameConfig.ParseMode(setupModes[index])
		}
	})

	form.AddDropDown("Your Color", colors, setup.gameConfig.PlayerColor-1, func(option string, index int) {
		setup.gameConfig.PlayerColor = index + 1 // 1=black, 2=white
	})

	form.AddCheckbox("Show Valid Moves", setup.showHints, func(checked bool) {
		setup.showHints = checked
	})

	form.AddButton("Start Game", func() {
		onStart(setup.gameConfig, setup.showHints)
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetFieldBackgroundColor(MenuColors.CardBG)
	form.SetLabelColor(MenuColors.Label)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// GameConfigFromDefaults builds an engine configuration from the config
// file's game section. Invalid entries fall back to the engine defaults.
func GameConfigFromDefaults(d config.GameDefaults) engine.GameConfig {
	gc := engine.DefaultConfig()
	_ = gc.ParseMode(d.Mode)
	if color, err := engine.ParseColor(d.PlayerColor); err == nil {
		gc.PlayerColor = color
	}
	if d.RobotDelayMillis >= 0 {
		gc.RobotDelay = time.Duration(d.RobotDelayMillis) * time.Millisecond
	}
	if gc.PlayerColor != types.CellWhite {
		gc.PlayerColor = types.CellBlack
	}
	return gc
}

// GameConfig returns the configuration currently selected in the form.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	return s.gameConfig
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
