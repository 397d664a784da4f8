package diag

// Bag collects diagnostics in emission order.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 {
		capHint = 16
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// WithCodes returns the diagnostics whose code is one of codes, in bag order.
func (b *Bag) WithCodes(codes ...Code) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, d := range b.items {
		for _, c := range codes {
			if d.Code == c {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
