package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	addColor = color.New(color.FgGreen)
	delColor = color.New(color.FgRed, color.CrossedOut)
)

// renderDiff returns a character-level diff between the original and edited
// document text, colored when stdout is a terminal.
func renderDiff(before, after string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(addColor.Sprint(d.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(delColor.Sprint(d.Text))
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
