package core

// Color is the foreground of a screen cell. The renderer maps each value to
// a terminal color; the engine never sees it.
type Color uint8

const (
	ColorDefault      Color = iota
	ColorRed                // Doomed flyer
	ColorGreen              // Pipes, grass
	ColorCyan               // Message boxes
	ColorWhite              // HUD, text
	ColorBrightGreen        // Pipe caps
	ColorBrightYellow       // Flyer, titles
	ColorOrange             // Dirt
	ColorGray               // Secondary HUD text
)
