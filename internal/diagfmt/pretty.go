package diagfmt

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"hookkit/internal/diag"
)

// Pretty печатает отчёт: строки заголовка, затем каждую диагностику с отступом
// в виде "<path>:<line>: <message>". Диагностики идут в порядке items.
func Pretty(w io.Writer, header []string, items []diag.Diagnostic, opts PrettyOpts) error {
	palette := NewPalette(opts.Color)
	for _, line := range header {
		if _, err := fmt.Fprintln(w, palette.Header.Sprint(line)); err != nil {
			return err
		}
	}
	indent := opts.indent()
	for _, d := range items {
		if _, err := fmt.Fprintln(w, indent+formatItem(d, palette, opts.Width-runewidth.StringWidth(indent))); err != nil {
			return err
		}
	}
	return nil
}

func formatItem(d diag.Diagnostic, palette Palette, width int) string {
	text := d.String()
	if width > 0 && runewidth.StringWidth(text) > width {
		// после обрезки границы location уже не гарантированы, поэтому без цвета
		return runewidth.Truncate(text, width, "…")
	}
	return palette.Location.Sprint(d.Location()) + ": " + d.Message
}
