// termthello is a terminal application to play Othello against a friend or a robot.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"termthello/config"
	"termthello/engine"
	"termthello/engine/local"
	"termthello/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

var logFile = "termthello/debug.log"

var opts struct {
	Mode      string `short:"m" long:"mode" description:"Game mode" choice:"pvp" choice:"easy" choice:"hard"`
	Color     string `short:"c" long:"color" description:"Your color against the robot" choice:"black" choice:"white"`
	Delay     *int   `short:"d" long:"delay" description:"Robot thinking time in milliseconds"`
	NoHints   bool   `long:"no-hints" description:"Do not mark valid moves"`
	Play      bool   `short:"p" long:"play" description:"Start a game immediately"`
	Focus     bool   `short:"f" long:"focus" description:"Start in focus mode (board only)"`
	Replay    string `long:"replay" description:"Replay a move list such as \"d3 c5 f6\", print the board and record, and exit"`
	ReplaySGF string `long:"replay-sgf" description:"Replay an SGF record from a file (- for stdin), print the board, and exit"`
	Debug     bool   `long:"debug" description:"Write debug lines to the log file"`
	Version   bool   `short:"v" long:"version" description:"Print version and exit"`
}

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var log *zap.SugaredLogger

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("termthello %s\n", Version)
		return
	}

	if opts.Replay != "" || opts.ReplaySGF != "" {
		if err := runHeadless(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err = newLogger(opts.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %s\n", err)
		log = zap.NewNop().Sugar()
	}
	defer func() { _ = log.Sync() }()
	log.Infow("starting", "version", Version, "mode", cfg.Game.Mode, "color", cfg.Game.PlayerColor)

	quickStart := opts.Play || opts.Mode != "" || opts.Color != "" || opts.Focus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● termthello ○ ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoardUI(app, cfg, gameHint)
	gameBoard.SetGameEndFunc(showGameOver)

	// Create game layout with board and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			selTile := gameBoard.SelectedTile()
			if selTile == nil {
				return nil
			}
			gameBoard.PlayMove(selTile.X, selTile.Y)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case 'u':
				gameBoard.Undo()
			case 'r':
				gameBoard.Reset()
			case 't':
				gameBoard.ToggleHints()
			case 'f':
				toggleFocus()
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg.Game,
		func(gameCfg engine.GameConfig, showHints bool) {
			rememberChoices(gameCfg, showHints)
			startGame(gameCfg, showHints)
		},
		func() {
			app.Stop()
		},
	)

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)

	if quickStart {
		startGame(ui.GameConfigFromDefaults(cfg.Game), cfg.Game.ShowHints)
		if opts.Focus {
			toggleFocus()
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		log.Errorw("application stopped", zap.Error(err))
		panic(err)
	}
	gameBoard.Close()
}

// applyFlags lets command-line flags override the config file's game defaults.
func applyFlags(c *config.Config) error {
	if opts.Mode != "" {
		c.Game.Mode = opts.Mode
	}
	if opts.Color != "" {
		c.Game.PlayerColor = opts.Color
	}
	if opts.Delay != nil {
		c.Game.RobotDelayMillis = *opts.Delay
	}
	if opts.NoHints {
		c.Game.ShowHints = false
	}
	return c.Validate()
}

// newLogger writes JSON lines to the XDG state directory.
func newLogger(debug bool) (*zap.SugaredLogger, error) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return nil, fmt.Errorf("locate log file: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// rememberChoices stores the setup form's choices as the next defaults.
func rememberChoices(gameCfg engine.GameConfig, showHints bool) {
	cfg.Game.Mode = gameCfg.ModeName()
	cfg.Game.PlayerColor = strings.ToLower(engine.ColorName(gameCfg.PlayerColor))
	cfg.Game.ShowHints = showHints
	if err := cfg.Save(); err != nil {
		log.Warnw("could not save settings", zap.Error(err))
	}
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig, showHints bool) {
	eng := local.NewLocalEngine(gameCfg, local.WithLogger(log))
	gameBoard.SetGameConfig(gameCfg)
	gameBoard.SetShowHints(showHints)
	if err := gameBoard.ConnectEngine(eng); err != nil {
		log.Errorw("could not start game", zap.Error(err))
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
}

// toggleFocus switches between the full layout and the board alone.
func toggleFocus() {
	if gameBoard.ToggleFocusMode() {
		ui.BuildFocusLayout(gameFrame, gameBoard)
	} else {
		ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
	}
	app.SetFocus(gameBoard.Box)
}

// showGameOver opens the game-over dialog. It runs on the event loop.
func showGameOver(s ui.GameSummary) {
	modal := ui.NewGameOverModal(s, func(label string) {
		rootPage.RemovePage("gameover")
		switch label {
		case ui.GameOverNewGame:
			gameBoard.Reset()
		case ui.GameOverMenu:
			gameBoard.Close()
			rootPage.SwitchToPage("setup")
			return
		}
		app.SetFocus(gameBoard.Box)
	})
	rootPage.AddPage("gameover", modal, true, true)
	app.SetFocus(modal)
}
