package diagfmt

// PrettyOpts configures pretty-printing of a report.
type PrettyOpts struct {
	Color  bool
	Width  int    // максимальная ширина строки в колонках, 0 - не ограничено
	Indent string // префикс каждой записи; пусто означает два пробела
}

func (o PrettyOpts) indent() string {
	if o.Indent == "" {
		return "  "
	}
	return o.Indent
}
