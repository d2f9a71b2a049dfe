package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"lightbox/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const (
	checkLabelWidth = 24
	checkIndent     = "  "
)

func renderCheckLine(result preflight.Result, colorize bool) string {
	statusText := "FAIL"
	color := ansiRed
	if result.Passed {
		statusText = "OK"
		color = ansiGreen
	}
	line := fmt.Sprintf("%s%-*s [%s] %s", checkIndent, checkLabelWidth, result.Name+":", statusText, result.Detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func writeCheckResults(out io.Writer, results []preflight.Result) {
	colorize := shouldColorize(out)
	for _, result := range results {
		fmt.Fprintln(out, renderCheckLine(result, colorize))
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
