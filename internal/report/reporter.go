// Package report renders human-readable status lines to a console. It is the
// interactive side channel only; nothing here feeds back into the produced
// document.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	// fileHeaderFormat announces the file currently being assembled.
	fileHeaderFormat = "### File: %s"
	// codeBlockIndicatorLine precedes the file content preview.
	codeBlockIndicatorLine = "### Code block below:"
	// previewEllipsis terminates every truncated content preview.
	previewEllipsis = "..."
)

// Reporter writes colored status lines to a single destination. Construct one
// explicitly and pass it where needed; there is no package-level state.
type Reporter struct {
	writer            io.Writer
	infoPrinter       *color.Color
	warningPrinter    *color.Color
	errorPrinter      *color.Color
	fileHeaderPrinter *color.Color
	codeBlockPrinter  *color.Color
	previewPrinter    *color.Color
}

// NewReporter constructs a Reporter writing to the given destination. Color is
// enabled only when the destination is a terminal.
func NewReporter(writer io.Writer) *Reporter {
	return NewReporterWithColor(writer, writerIsTerminal(writer))
}

// NewReporterWithColor constructs a Reporter with an explicit color setting.
func NewReporterWithColor(writer io.Writer, colorEnabled bool) *Reporter {
	reporter := &Reporter{
		writer:            writer,
		infoPrinter:       color.New(color.FgCyan),
		warningPrinter:    color.New(color.FgYellow),
		errorPrinter:      color.New(color.FgRed),
		fileHeaderPrinter: color.New(color.FgGreen),
		codeBlockPrinter:  color.New(color.FgMagenta),
		previewPrinter:    color.New(color.FgWhite),
	}
	for _, printer := range []*color.Color{
		reporter.infoPrinter,
		reporter.warningPrinter,
		reporter.errorPrinter,
		reporter.fileHeaderPrinter,
		reporter.codeBlockPrinter,
		reporter.previewPrinter,
	} {
		if colorEnabled {
			printer.EnableColor()
		} else {
			printer.DisableColor()
		}
	}
	return reporter
}

// Info reports an informational status line.
func (reporter *Reporter) Info(message string) {
	reporter.infoPrinter.Fprintln(reporter.writer, message)
}

// Warning reports a recoverable condition.
func (reporter *Reporter) Warning(message string) {
	reporter.warningPrinter.Fprintln(reporter.writer, message)
}

// Error reports a failure.
func (reporter *Reporter) Error(message string) {
	reporter.errorPrinter.Fprintln(reporter.writer, message)
}

// FileHeader announces the file whose content follows.
func (reporter *Reporter) FileHeader(relativePath string) {
	reporter.fileHeaderPrinter.Fprintln(reporter.writer, fmt.Sprintf(fileHeaderFormat, relativePath))
}

// CodeBlockIndicator announces the start of a content preview.
func (reporter *Reporter) CodeBlockIndicator() {
	reporter.codeBlockPrinter.Fprintln(reporter.writer, codeBlockIndicatorLine)
}

// Preview renders truncated file content followed by an ellipsis marker. The
// truncation applies to this display only, never to the assembled document.
func (reporter *Reporter) Preview(truncatedContent string) {
	reporter.previewPrinter.Fprintln(reporter.writer, truncatedContent+previewEllipsis+"\n")
}

// Newline emits a bare separator line.
func (reporter *Reporter) Newline() {
	fmt.Fprintln(reporter.writer)
}

// writerIsTerminal reports whether the writer is an interactive terminal.
func writerIsTerminal(writer io.Writer) bool {
	fileHandle, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(fileHandle.Fd()) || isatty.IsCygwinTerminal(fileHandle.Fd())
}
