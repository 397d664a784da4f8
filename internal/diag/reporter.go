package diag

// Reporter: минимальный контракт получения диагностик от проверок.
type Reporter interface {
	Report(code Code, path string, line uint32, msg string)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, path string, line uint32, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Code: code, Message: msg, Path: path, Line: line})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, string, uint32, string) {}
