package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"repo2text/internal/cli"
)

// fakeCopier records copied text or fails on demand.
type fakeCopier struct {
	copied    string
	copyError error
}

func (copier *fakeCopier) Copy(text string) error {
	if copier.copyError != nil {
		return copier.copyError
	}
	copier.copied = text
	return nil
}

// buildScenarioRoot creates the reference scenario: a text file, a binary file
// ignored by the project's rules, and an empty directory.
func buildScenarioRoot(testingHandle *testing.T) string {
	testingHandle.Helper()
	rootDirectory := testingHandle.TempDir()
	files := map[string][]byte{
		"a.txt":      []byte("hello\n"),
		"b.bin":      {0x68, 0x00, 0x69},
		".gitignore": []byte("b.bin\n"),
	}
	for fileName, fileContent := range files {
		if writeError := os.WriteFile(filepath.Join(rootDirectory, fileName), fileContent, 0o644); writeError != nil {
			testingHandle.Fatalf("failed to write %s: %v", fileName, writeError)
		}
	}
	if makeDirectoryError := os.Mkdir(filepath.Join(rootDirectory, "c"), 0o755); makeDirectoryError != nil {
		testingHandle.Fatalf("failed to create directory: %v", makeDirectoryError)
	}
	return rootDirectory
}

// expectedScenarioDocument is the full document the scenario root produces.
const expectedScenarioDocument = "Project Tree:\n" +
	"./\n    a.txt\n    c/\n" +
	"\n" +
	"### File: a.txt\n### Code block below:\n\n" +
	"hello\n\n"

// TestRunDeliversIdenticalDocumentToBothSinks verifies that the clipboard and
// the output file receive the same document.
func TestRunDeliversIdenticalDocumentToBothSinks(testingHandle *testing.T) {
	rootDirectory := buildScenarioRoot(testingHandle)
	outputPath := filepath.Join(testingHandle.TempDir(), "out.txt")
	var statusBuffer bytes.Buffer
	copier := &fakeCopier{}

	runError := cli.Run(cli.RunOptions{
		RootDirectory:    rootDirectory,
		OutputPath:       outputPath,
		ClipboardEnabled: true,
		Copier:           copier,
		StatusWriter:     &statusBuffer,
	})
	if runError != nil {
		testingHandle.Fatalf("Run failed: %v", runError)
	}

	writtenDocument, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingHandle.Fatalf("failed to read output file: %v", readError)
	}
	if string(writtenDocument) != expectedScenarioDocument {
		testingHandle.Fatalf("unexpected document written:\ngot:\n%q\nwant:\n%q", writtenDocument, expectedScenarioDocument)
	}
	if copier.copied != expectedScenarioDocument {
		testingHandle.Fatalf("clipboard received different document:\ngot:\n%q", copier.copied)
	}

	statusOutput := statusBuffer.String()
	if !strings.Contains(statusOutput, "successfully copied to the clipboard") {
		testingHandle.Fatalf("expected clipboard success status, got:\n%s", statusOutput)
	}
	if !strings.Contains(statusOutput, "Operation completed in") {
		testingHandle.Fatalf("expected completion status, got:\n%s", statusOutput)
	}
	if strings.Contains(statusOutput, "b.bin") {
		testingHandle.Fatalf("ignored file leaked into status output:\n%s", statusOutput)
	}
}

// TestRunClipboardFailureDoesNotAffectFileSink verifies sink independence.
func TestRunClipboardFailureDoesNotAffectFileSink(testingHandle *testing.T) {
	rootDirectory := buildScenarioRoot(testingHandle)
	outputPath := filepath.Join(testingHandle.TempDir(), "out.txt")
	var statusBuffer bytes.Buffer
	copier := &fakeCopier{copyError: errors.New("no display")}

	runError := cli.Run(cli.RunOptions{
		RootDirectory:    rootDirectory,
		OutputPath:       outputPath,
		ClipboardEnabled: true,
		Copier:           copier,
		StatusWriter:     &statusBuffer,
	})
	if runError != nil {
		testingHandle.Fatalf("Run failed: %v", runError)
	}

	writtenDocument, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingHandle.Fatalf("failed to read output file: %v", readError)
	}
	if string(writtenDocument) != expectedScenarioDocument {
		testingHandle.Fatalf("file sink affected by clipboard failure:\n%q", writtenDocument)
	}
	if !strings.Contains(statusBuffer.String(), "Error copying to clipboard") {
		testingHandle.Fatalf("expected clipboard error status, got:\n%s", statusBuffer.String())
	}
}

// TestRunOutputFileFailureIsReportedNotFatal verifies that an unwritable
// output path does not fail the run.
func TestRunOutputFileFailureIsReportedNotFatal(testingHandle *testing.T) {
	rootDirectory := buildScenarioRoot(testingHandle)
	var statusBuffer bytes.Buffer
	copier := &fakeCopier{}

	runError := cli.Run(cli.RunOptions{
		RootDirectory:    rootDirectory,
		OutputPath:       filepath.Join(testingHandle.TempDir(), "missing", "out.txt"),
		ClipboardEnabled: true,
		Copier:           copier,
		StatusWriter:     &statusBuffer,
	})
	if runError != nil {
		testingHandle.Fatalf("Run failed: %v", runError)
	}
	if copier.copied != expectedScenarioDocument {
		testingHandle.Fatalf("clipboard sink affected by output file failure")
	}
	if !strings.Contains(statusBuffer.String(), "Error writing to output file") {
		testingHandle.Fatalf("expected output file error status, got:\n%s", statusBuffer.String())
	}
}

// TestRunInvalidRootIsFatal verifies the run-aborting error for a bad root.
func TestRunInvalidRootIsFatal(testingHandle *testing.T) {
	var statusBuffer bytes.Buffer

	runError := cli.Run(cli.RunOptions{
		RootDirectory: filepath.Join(testingHandle.TempDir(), "nope"),
		Copier:        &fakeCopier{},
		StatusWriter:  &statusBuffer,
	})
	if runError == nil {
		testingHandle.Fatalf("expected an error for an invalid root directory")
	}
	if !strings.Contains(runError.Error(), "does not exist or is not a directory") {
		testingHandle.Fatalf("unexpected error: %v", runError)
	}
}

// TestRunWithoutClipboardSkipsTheCopier verifies the clipboard can be disabled.
func TestRunWithoutClipboardSkipsTheCopier(testingHandle *testing.T) {
	rootDirectory := buildScenarioRoot(testingHandle)
	var statusBuffer bytes.Buffer
	copier := &fakeCopier{copyError: errors.New("must not be called")}

	runError := cli.Run(cli.RunOptions{
		RootDirectory:    rootDirectory,
		ClipboardEnabled: false,
		Copier:           copier,
		StatusWriter:     &statusBuffer,
	})
	if runError != nil {
		testingHandle.Fatalf("Run failed: %v", runError)
	}
	if strings.Contains(statusBuffer.String(), "Error copying to clipboard") {
		testingHandle.Fatalf("copier was invoked despite being disabled:\n%s", statusBuffer.String())
	}
}
