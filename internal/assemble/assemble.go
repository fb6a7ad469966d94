// Package assemble reads each included file, classifies it, and concatenates
// the tree listing and per-file sections into the final document.
package assemble

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"repo2text/internal/report"
	"repo2text/internal/types"
	"repo2text/internal/utils"
)

const (
	// documentHeaderLine is the first line of every assembled document.
	documentHeaderLine = "Project Tree:"
	// fileHeaderFormat introduces each file section in the document.
	fileHeaderFormat = "### File: %s\n### Code block below:\n"

	// BinaryPlaceholder replaces the content of binary files.
	BinaryPlaceholder = "(Binary file omitted)"
	// EmptyPlaceholder replaces the content of zero-byte files.
	EmptyPlaceholder = "(Empty file)"
	// UnreadableFormat replaces the content of files that could not be read.
	UnreadableFormat = "(Could not read file: %v)"

	// replacementMarker substitutes byte sequences that do not decode as UTF-8.
	replacementMarker = "�"
	// maxPreviewLines bounds the interactive content preview. The preview is
	// display-only; the document always carries full content.
	maxPreviewLines = 20
)

// Assembler builds the final document for files under a single root directory,
// reporting per-file status on the side channel as it goes.
type Assembler struct {
	rootDirectory string
	reporter      *report.Reporter
}

// New constructs an Assembler for the given root directory.
func New(rootDirectory string, statusReporter *report.Reporter) *Assembler {
	return &Assembler{rootDirectory: rootDirectory, reporter: statusReporter}
}

// Build assembles the document from the tree listing and the ordered file
// list. Each file's outcome is independent: a binary, empty, or unreadable
// file contributes a placeholder section and never aborts later files.
func (assembler *Assembler) Build(treeText string, relativeFilePaths []string) string {
	sections := []string{documentHeaderLine, treeText, ""}

	for _, relativeFilePath := range relativeFilePaths {
		assembler.reporter.FileHeader(relativeFilePath)
		assembler.reporter.CodeBlockIndicator()
		sections = append(sections, fmt.Sprintf(fileHeaderFormat, relativeFilePath))

		fileRecord := assembler.classifyFile(relativeFilePath)
		switch fileRecord.Classification {
		case types.ClassificationBinary:
			assembler.reporter.Warning(BinaryPlaceholder)
			sections = append(sections, BinaryPlaceholder+"\n")
		case types.ClassificationUnreadable:
			unreadableMessage := fmt.Sprintf(UnreadableFormat, fileRecord.ReadError)
			assembler.reporter.Error(unreadableMessage)
			sections = append(sections, unreadableMessage+"\n")
		case types.ClassificationEmpty:
			assembler.reporter.Warning(EmptyPlaceholder)
			sections = append(sections, EmptyPlaceholder+"\n")
		default:
			textContent := strings.ToValidUTF8(string(fileRecord.Content), replacementMarker)
			sections = append(sections, textContent+"\n")
			assembler.reporter.Preview(previewOf(textContent))
		}
		assembler.reporter.Newline()
	}

	return strings.Join(sections, "\n")
}

// classifyFile determines the file's classification and reads its content.
// The binary sniff runs first; a file that cannot even be opened for the sniff
// counts as binary, matching the omission-over-failure policy.
func (assembler *Assembler) classifyFile(relativeFilePath string) types.FileRecord {
	absoluteFilePath := filepath.Join(assembler.rootDirectory, filepath.FromSlash(relativeFilePath))
	fileRecord := types.FileRecord{RelativePath: relativeFilePath}

	if utils.IsFileBinary(absoluteFilePath) {
		fileRecord.Classification = types.ClassificationBinary
		return fileRecord
	}

	fileContent, readError := os.ReadFile(absoluteFilePath)
	if readError != nil {
		fileRecord.Classification = types.ClassificationUnreadable
		fileRecord.ReadError = readError
		return fileRecord
	}
	if len(fileContent) == 0 {
		fileRecord.Classification = types.ClassificationEmpty
		return fileRecord
	}

	fileRecord.Classification = types.ClassificationText
	fileRecord.Content = fileContent
	return fileRecord
}

// previewOf returns at most the first maxPreviewLines lines of the content
// with trailing newlines removed, for the ellipsis-terminated status preview.
func previewOf(textContent string) string {
	contentLines := strings.SplitAfter(textContent, "\n")
	if len(contentLines) > maxPreviewLines {
		contentLines = contentLines[:maxPreviewLines]
	}
	return strings.TrimRight(strings.Join(contentLines, ""), "\n")
}
