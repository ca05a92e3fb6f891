package shell

import (
	"fmt"
	"strings"
)

// ColorScheme defines the color configuration for the shell.
type ColorScheme struct {
	Name    string `json:"name"`
	Prompt  Color  `json:"prompt"`
	Input   Color  `json:"input"`
	Message Color  `json:"message"` // welcome, farewell and line handler output
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault is the default color scheme with green prompt and white text
var ThemeDefault = &ColorScheme{
	Name:    "default",
	Prompt:  Color{R: 0, G: 255, B: 0, Bold: true},
	Input:   Color{R: 255, G: 255, B: 255, Bold: true},
	Message: Color{R: 200, G: 200, B: 200, Bold: false},
}

// ThemeDark is a dark theme with light blue prompt and off-white text
var ThemeDark = &ColorScheme{
	Name:    "Dark",
	Prompt:  Color{R: 102, G: 217, B: 239, Bold: true},
	Input:   Color{R: 248, G: 248, B: 242, Bold: false},
	Message: Color{R: 189, G: 147, B: 249, Bold: false},
}

// ThemeLight is a light theme with blue prompt and dark gray text
var ThemeLight = &ColorScheme{
	Name:    "Light",
	Prompt:  Color{R: 0, G: 119, B: 187, Bold: true},
	Input:   Color{R: 36, G: 41, B: 46, Bold: false},
	Message: Color{R: 88, G: 96, B: 105, Bold: false},
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
