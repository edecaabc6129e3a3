package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "termthello/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor      int `json:"board"`
	BoardColorAlt   int `json:"board_alt"`
	BlackColor      int `json:"black"`
	WhiteColor      int `json:"white"`
	HintColor       int `json:"hint"`
	CoordColor      int `json:"coords"`
	CursorColorFG   int `json:"cursor_fg"`
	CursorColorBG   int `json:"cursor_bg"`
	RobotMoveBG     int `json:"robot_move_bg"`
	LastPlayedColor int `json:"last_played_bg"`
}

type ConfigSymbols struct {
	BlackPiece rune `json:"black"`
	WhitePiece rune `json:"white"`
	Hint       rune `json:"hint"`
	Empty      rune `json:"empty"`
}

type Theme struct {
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// GameDefaults holds the settings the setup screen starts from.
type GameDefaults struct {
	Mode             string `json:"mode"`         // "pvp", "easy" or "hard"
	PlayerColor      string `json:"player_color"` // "black" or "white"
	RobotDelayMillis int    `json:"robot_delay_ms"`
	ShowHints        bool   `json:"show_hints"`
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameDefaults `json:"game"`
}

// InitConfig loads the user's config file over the defaults. A missing file
// is not an error.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.BlackPiece, s.WhitePiece, s.Hint, s.Empty} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	switch strings.ToLower(c.Game.Mode) {
	case "pvp", "easy", "hard":
	default:
		return &InvalidConfig{fmt.Sprintf("game mode %q must be pvp, easy or hard", c.Game.Mode)}
	}
	switch strings.ToLower(c.Game.PlayerColor) {
	case "black", "white":
	default:
		return &InvalidConfig{fmt.Sprintf("player color %q must be black or white", c.Game.PlayerColor)}
	}
	if c.Game.RobotDelayMillis < 0 {
		return &InvalidConfig{"robot delay cannot be negative"}
	}
	return nil
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
