// Package walker performs the depth-first traversal that decides which
// directories and files appear in the output, and in what order.
package walker

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"repo2text/internal/ignore"
)

const (
	// rootDisplayName is how the root directory appears in the tree listing.
	rootDisplayName = "."
	// indentUnit is the number of spaces per nesting level in the tree listing.
	indentUnit = 4

	// errorReadDirectoryFormat reports a directory that could not be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// Result holds the two traversal products: the indented tree listing and the
// ordered list of included files. Both come from the same pass, so they can
// never disagree about inclusion or order.
type Result struct {
	// TreeText is the newline-joined tree listing in traversal order.
	TreeText string
	// FilePaths are the included files as slash-separated paths relative to
	// the root, in traversal order.
	FilePaths []string
}

// Walk traverses rootDirectory depth-first in pre-order, pruning excluded
// directories before descending into them. An unreadable directory aborts the
// whole walk; there is no partial-tree recovery.
func Walk(rootDirectory string, ruleSet *ignore.RuleSet) (Result, error) {
	traversal := &treeTraversal{ruleSet: ruleSet}
	if walkError := traversal.visitDirectory(rootDirectory, rootDisplayName, 0); walkError != nil {
		return Result{}, walkError
	}
	return Result{
		TreeText:  strings.Join(traversal.treeLines, "\n"),
		FilePaths: traversal.filePaths,
	}, nil
}

// treeTraversal accumulates tree lines and file paths during a single walk.
type treeTraversal struct {
	ruleSet   *ignore.RuleSet
	treeLines []string
	filePaths []string
}

// visitDirectory emits the directory line, its surviving files, and then
// recurses into surviving subdirectories. relativeDirectory is "." for the
// root and slash-separated otherwise.
func (traversal *treeTraversal) visitDirectory(absoluteDirectory string, relativeDirectory string, depth int) error {
	directoryEntries, readDirectoryError := os.ReadDir(absoluteDirectory)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, absoluteDirectory, readDirectoryError)
	}

	directoryName := rootDisplayName
	if relativeDirectory != rootDisplayName {
		directoryName = path.Base(relativeDirectory)
	}
	traversal.treeLines = append(traversal.treeLines, indentFor(depth)+directoryName+"/")

	var subdirectoryNames []string
	var fileNames []string
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			subdirectoryNames = append(subdirectoryNames, directoryEntry.Name())
		} else {
			fileNames = append(fileNames, directoryEntry.Name())
		}
	}
	sort.Strings(subdirectoryNames)
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		relativeFilePath := joinRelative(relativeDirectory, fileName)
		if traversal.ruleSet.Matches(relativeFilePath, false) {
			continue
		}
		traversal.treeLines = append(traversal.treeLines, indentFor(depth+1)+fileName)
		traversal.filePaths = append(traversal.filePaths, relativeFilePath)
	}

	for _, subdirectoryName := range subdirectoryNames {
		relativeSubdirectory := joinRelative(relativeDirectory, subdirectoryName)
		if traversal.ruleSet.Matches(relativeSubdirectory, true) {
			continue
		}
		absoluteSubdirectory := filepath.Join(absoluteDirectory, subdirectoryName)
		if visitError := traversal.visitDirectory(absoluteSubdirectory, relativeSubdirectory, depth+1); visitError != nil {
			return visitError
		}
	}

	return nil
}

// joinRelative appends a name to a slash-separated relative directory,
// treating the root marker as empty.
func joinRelative(relativeDirectory string, name string) string {
	if relativeDirectory == rootDisplayName {
		return name
	}
	return relativeDirectory + "/" + name
}

// indentFor returns the indentation prefix for the given nesting depth.
func indentFor(depth int) string {
	return strings.Repeat(" ", indentUnit*depth)
}
