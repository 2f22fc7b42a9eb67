package cell

// RGB is an 8-bit colour triple used by renderers.
type RGB struct {
	R, G, B uint8
}

var colors = [NumCodes]RGB{
	Free:     {255, 255, 255},
	Obstacle: {50, 50, 50},
	Start:    {0, 200, 0},
	End:      {200, 0, 0},
	Path:     {0, 100, 255},
}

// Color returns the rendering colour for code. Unknown codes render white.
func Color(code Code) RGB {
	if !code.Valid() {
		return colors[Free]
	}
	return colors[code]
}
