// Package engine defines the interface for game engines.
package engine

import (
	"fmt"
	"strings"
	"time"

	"termthello/othello"
	"termthello/types"
)

// GameEngine defines the interface for playing Othello through a UI.
type GameEngine interface {
	// Connect initializes the game. In robot mode with the human playing
	// white, the robot's opening move is scheduled here.
	Connect() error

	// GetBoardState returns a copy of the current board state.
	GetBoardState() *types.BoardState

	// PlayMove plays a move for the side to move at column x, row y.
	// Returns an error if the move is rejected.
	PlayMove(x, y int) error

	// Undo takes back the last move. Against the robot it rewinds until it
	// is the human's turn again.
	Undo() error

	// Reset starts a new game with the same configuration.
	Reset() error

	// IsMyTurn returns true if a human may move now.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color (1=black, 2=white).
	GetPlayerColor() int

	// OnMove registers a callback for when a move is played (by either player).
	// boardState is a copy made after the move, passed directly to avoid lock contention.
	OnMove(func(x, y, color int, boardState *types.BoardState))

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close stops any pending robot move.
	Close()
}

// Mode selects who plays against the human.
type Mode int

const (
	PlayerVsPlayer Mode = iota
	PlayerVsRobot
)

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Mode        Mode
	PlayerColor int                // 1=black, 2=white; only used against the robot
	Difficulty  othello.Difficulty // robot policy
	RobotDelay  time.Duration      // pause before each robot move
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Mode:        PlayerVsRobot,
		PlayerColor: types.CellBlack, // Human plays black
		Difficulty:  othello.Hard,
		RobotDelay:  time.Second,
	}
}

// String returns the label shown in the game panel and the game-over summary.
func (c GameConfig) String() string {
	if c.Mode == PlayerVsPlayer {
		return "Player vs Player"
	}
	if c.Difficulty == othello.Hard {
		return "Player vs Hard AI"
	}
	return "Player vs Easy AI"
}

// ModeName returns the short name accepted by ParseMode.
func (c GameConfig) ModeName() string {
	if c.Mode == PlayerVsPlayer {
		return "pvp"
	}
	return c.Difficulty.String()
}

// ParseMode reads "pvp", "easy" or "hard" into the config.
func (c *GameConfig) ParseMode(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pvp":
		c.Mode = PlayerVsPlayer
		return nil
	case "easy":
		c.Mode, c.Difficulty = PlayerVsRobot, othello.Easy
		return nil
	case "hard":
		c.Mode, c.Difficulty = PlayerVsRobot, othello.Hard
		return nil
	}
	return fmt.Errorf("unknown mode %q (want pvp, easy or hard)", name)
}

// ParseColor converts "black" or "white" to a color value.
func ParseColor(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "black", "b":
		return types.CellBlack, nil
	case "white", "w":
		return types.CellWhite, nil
	}
	return 0, fmt.Errorf("unknown color %q (want black or white)", name)
}

// ColorName returns "Black" or "White" for a color value.
func ColorName(color int) string {
	if color == types.CellWhite {
		return "White"
	}
	return "Black"
}
