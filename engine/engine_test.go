package engine

import (
	"testing"

	"termthello/othello"
	"termthello/types"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name      string
		wantLabel string
		wantName  string
	}{
		{"pvp", "Player vs Player", "pvp"},
		{"easy", "Player vs Easy AI", "easy"},
		{" HARD ", "Player vs Hard AI", "hard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			if err := c.ParseMode(tt.name); err != nil {
				t.Fatalf("ParseMode(%q): %v", tt.name, err)
			}
			if c.String() != tt.wantLabel {
				t.Errorf("String() = %q, want %q", c.String(), tt.wantLabel)
			}
			if c.ModeName() != tt.wantName {
				t.Errorf("ModeName() = %q, want %q", c.ModeName(), tt.wantName)
			}
		})
	}

	c := DefaultConfig()
	if err := c.ParseMode("medium"); err == nil {
		t.Error("ParseMode(medium) should fail")
	}
	if c.Mode != PlayerVsRobot || c.Difficulty != othello.Hard {
		t.Error("a failed ParseMode must leave the config unchanged")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"black", types.CellBlack, true},
		{"W", types.CellWhite, true},
		{"White", types.CellWhite, true},
		{"red", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %d, %v", tt.in, got, err)
		}
	}
	if ColorName(types.CellWhite) != "White" || ColorName(types.CellBlack) != "Black" {
		t.Error("ColorName mismatch")
	}
}
