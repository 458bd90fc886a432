package main

import (
	"fmt"
	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"io"
	"strings"
)

// writeDiff prints a line diff of two renderings. Unchanged lines are indented by two
// spaces, removed lines start with "-" and added lines with "+".
func writeDiff(w io.Writer, before, after string) error {
	dmp := diffpatch.New()
	from, to, lines := dmp.DiffLinesToChars(before+"\n", after+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(from, to, false), lines)
	for _, diff := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch diff.Type {
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", color.New(color.FgGreen).Sprint
		case diffpatch.DiffDelete:
			prefix, paint = "- ", color.New(color.FgRed).Sprint
		}
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := io.WriteString(w, paint(prefix+line)); err != nil {
				return err
			}
		}
	}
	return nil
}
