package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette of the setup form and the game-over dialog.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	CardBG      tcell.Color
	Title       tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	ButtonBG    tcell.Color
	ButtonText  tcell.Color
}{
	Border:      tcell.PaletteColor(65),  // muted green
	BorderFocus: tcell.PaletteColor(114), // bright green
	CardBG:      tcell.PaletteColor(235),
	Title:       tcell.PaletteColor(255),
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	ButtonBG:    tcell.PaletteColor(22), // felt green
	ButtonText:  tcell.PaletteColor(255),
}
