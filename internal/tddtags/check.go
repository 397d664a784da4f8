package tddtags

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hookkit/internal/cache"
	"hookkit/internal/diag"
	"hookkit/internal/observ"
	"hookkit/internal/source"
)

// Current schema version - increment when cachedScan format changes
const scanCacheSchema uint16 = 1

// Category is one of the three reporting buckets, in priority order.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryClassLevel
	CategoryRedRefactor
	CategoryMissing
)

func (c Category) String() string {
	switch c {
	case CategoryClassLevel:
		return "class-level"
	case CategoryRedRefactor:
		return "red-refactor"
	case CategoryMissing:
		return "missing"
	}
	return "none"
}

// Report is what the hook prints: a header and the entries of the single
// winning category.
type Report struct {
	Category Category
	Header   []string
	Items    []diag.Diagnostic
}

// Failed reports whether any category was triggered.
func (r Report) Failed() bool { return r.Category != CategoryNone }

// ExitCode maps the report onto the hook's process status.
func (r Report) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}

// Result carries every finding of a run next to the prioritized report.
type Result struct {
	Files  []string
	Bag    *diag.Bag
	Report Report
}

// Options configures a Checker.
type Options struct {
	Rules  Rules
	Logger *zap.Logger
	// Cache stores per-file findings keyed by content and rules; nil disables it.
	Cache *cache.DiskCache
	Timer *observ.Timer
}

// Checker runs the tag policy over batches of files.
type Checker struct {
	rules  Rules
	logger *zap.Logger
	cache  *cache.DiskCache
	timer  *observ.Timer
	files  *source.FileSet
}

type cachedScan struct {
	Schema   uint16
	Findings []Finding
}

// NewChecker validates the rules and builds a Checker.
func NewChecker(opts Options) (*Checker, error) {
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		rules:  opts.Rules,
		logger: logger,
		cache:  opts.Cache,
		timer:  opts.Timer,
		files:  source.NewFileSet(),
	}, nil
}

// Check filters paths to test files, scans each in order and prioritizes
// the findings. An empty selection yields an empty, passing result.
func (c *Checker) Check(paths []string) Result {
	phase := c.timer.Begin("select")
	files := SelectTestFiles(paths)
	c.timer.End(phase, fmt.Sprintf("%d of %d", len(files), len(paths)))
	c.logger.Debug("selected test files", zap.Int("candidates", len(paths)), zap.Int("selected", len(files)))

	bag := diag.NewBag(0)
	if len(files) == 0 {
		return Result{Bag: bag}
	}

	phase = c.timer.Begin("scan")
	reporter := diag.BagReporter{Bag: bag}
	for _, path := range files {
		c.CheckFile(path, reporter)
	}
	c.timer.End(phase, fmt.Sprintf("%d findings", bag.Len()))

	return Result{
		Files:  files,
		Bag:    bag,
		Report: Prioritize(bag, c.rules),
	}
}

// CheckFile scans one file and reports its findings. Read failures become a
// single file-level IOUnreadable diagnostic.
func (c *Checker) CheckFile(path string, r diag.Reporter) {
	if r == nil {
		r = diag.NopReporter{}
	}
	id, err := c.files.Load(path)
	if err != nil {
		c.logger.Debug("unreadable file", zap.String("path", path), zap.Error(err))
		r.Report(diag.IOUnreadable, source.NormalizePath(path), 0, "unreadable: "+err.Error())
		return
	}
	f := c.files.Get(id)
	for _, finding := range c.scan(f) {
		r.Report(finding.Code, f.Path, finding.Line, c.rules.Message(finding.Code))
	}
}

func (c *Checker) scan(f *source.File) []Finding {
	if c.cache == nil {
		return Scan(f.Lines(), c.rules)
	}

	key := cache.Combine(cache.Digest(f.Hash), c.rules.Fingerprint())
	var cached cachedScan
	ok, err := c.cache.Get(key, &cached)
	switch {
	case err != nil:
		c.logger.Warn("scan cache read failed", zap.String("path", f.Path), zap.Error(err))
	case ok && cached.Schema == scanCacheSchema:
		c.logger.Debug("scan cache hit", zap.String("path", f.Path))
		return cached.Findings
	}

	findings := Scan(f.Lines(), c.rules)
	if err := c.cache.Put(key, &cachedScan{Schema: scanCacheSchema, Findings: findings}); err != nil {
		c.logger.Warn("scan cache write failed", zap.String("path", f.Path), zap.Error(err))
	}
	return findings
}

// Prioritize picks the first non-empty category: class-level markers, then
// blocking markers, then missing markers together with unreadable files.
func Prioritize(bag *diag.Bag, rules Rules) Report {
	if bag == nil {
		return Report{}
	}
	if items := bag.WithCodes(diag.TDDClassMarker); len(items) > 0 {
		return Report{
			Category: CategoryClassLevel,
			Header: []string{
				"TDD enforcement: class-level TDD markers are NOT allowed.",
				"RULE: Each test method must have its own @" + rules.Namespace + "." + rules.tagPattern() + " decorator.",
			},
			Items: items,
		}
	}
	if items := bag.WithCodes(diag.TDDRedRefactor); len(items) > 0 {
		return Report{
			Category: CategoryRedRefactor,
			Header:   []string{"TDD enforcement: red/refactor tests present. Fix this test and rerun until it works."},
			Items:    items,
		}
	}
	if items := bag.WithCodes(diag.TDDMissingTag, diag.IOUnreadable); len(items) > 0 {
		return Report{
			Category: CategoryMissing,
			Header:   []string{"TDD enforcement: all tests must be tagged with one of: " + strings.Join(rules.Tags, ", ") + "."},
			Items:    items,
		}
	}
	return Report{}
}
