package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		Colors: ConfigColors{
			BoardColor:      28,
			BoardColorAlt:   22,
			BlackColor:      232,
			WhiteColor:      255,
			HintColor:       190,
			CoordColor:      250,
			CursorColorFG:   232,
			CursorColorBG:   226,
			RobotMoveBG:     166,
			LastPlayedColor: 65,
		},
		Symbols: ConfigSymbols{
			BlackPiece: '●',
			WhitePiece: '●',
			Hint:       '·',
			Empty:      ' ',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameDefaults{
			Mode:             "hard",
			PlayerColor:      "black",
			RobotDelayMillis: 1000,
			ShowHints:        true,
		},
	}
}
