package task

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DescriptionDiff renders the change from before to after as an inline
// word diff: deletions as [-text-] and insertions as {+text+}. It returns
// "" when the texts are equal.
func DescriptionDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var out strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			out.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			out.WriteString("{+" + d.Text + "+}")
		default:
			out.WriteString(d.Text)
		}
	}
	return out.String()
}

// DescriptionPatch is the change from before to after in diff-match-patch
// patch text, the form JSON output carries.
func DescriptionPatch(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	return dmp.PatchToText(dmp.PatchMake(before, diffs))
}
