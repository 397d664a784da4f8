// Package tddtags implements the TDD tag policy check used as a pre-commit hook.
//
// Python test files are scanned line by line, without parsing: test methods
// (`def test_...`) must carry a marker decorator from the configured
// namespace (`@pytest.mark.tdd_green` and friends), test classes must not,
// and blocking tags (red/refactor by default) fail the check.
//
// Findings fall into three categories. Only the highest-priority non-empty
// category over the whole batch is reported: class-level markers first,
// then blocking markers, then missing markers (which also carries files
// that could not be read).
package tddtags
