// Package diffreport renders a unified diff between two strings for use in
// determinism tests (spec §8 property 10: "compiling the same input twice
// yields byte-identical target source and manifest").
//
// Grounded directly on the teacher's internal/golden.CompareAndDiff: same
// difflib.UnifiedDiff shape, want/got file labels, and empty-string-means-
// equal contract.
package diffreport

import "github.com/pmezard/go-difflib/difflib"

// Compare returns the empty string if got == want, otherwise a unified diff
// between them.
func Compare(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}
