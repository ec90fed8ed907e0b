package main

import (
	"testing"

	"github.com/fatih/color"

	"github.com/loxlang/lox/golox/ansi"
	"github.com/loxlang/lox/golox/config"
)

func TestConfigureColour(t *testing.T) {
	prevEnabled, prevNoColor := ansi.Enabled, color.NoColor
	t.Cleanup(func() {
		ansi.Enabled, color.NoColor = prevEnabled, prevNoColor
	})

	tests := []struct {
		name        string
		colour      config.Colour
		isTerminal  bool
		wantEnabled bool
	}{
		{name: "always without terminal", colour: config.ColourAlways, isTerminal: false, wantEnabled: true},
		{name: "never with terminal", colour: config.ColourNever, isTerminal: true, wantEnabled: false},
		{name: "auto with terminal", colour: config.ColourAuto, isTerminal: true, wantEnabled: true},
		{name: "auto without terminal", colour: config.ColourAuto, isTerminal: false, wantEnabled: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Start from the opposite state so that stale values are caught.
			ansi.Enabled, color.NoColor = !test.wantEnabled, test.wantEnabled

			configureColour(test.colour, test.isTerminal)

			if ansi.Enabled != test.wantEnabled {
				t.Errorf("ansi.Enabled = %t, want %t", ansi.Enabled, test.wantEnabled)
			}
			if color.NoColor != !test.wantEnabled {
				t.Errorf("color.NoColor = %t, want %t", color.NoColor, !test.wantEnabled)
			}
		})
	}
}
