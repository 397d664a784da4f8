package diagfmt

import "github.com/fatih/color"

// Palette holds the colors used by hookkit output. Colors are switched on or
// off per palette, independent of the package-level color.NoColor default.
type Palette struct {
	Header   *color.Color
	Location *color.Color
	Warn     *color.Color
	OK       *color.Color
	Err      *color.Color
}

// NewPalette builds a palette with color forced on or off.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Header:   color.New(color.FgRed, color.Bold),
		Location: color.New(color.FgCyan),
		Warn:     color.New(color.FgYellow),
		OK:       color.New(color.FgGreen),
		Err:      color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.Header, p.Location, p.Warn, p.OK, p.Err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
