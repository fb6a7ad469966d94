// Package types defines shared data structures used across the repo2text tool.
package types

// Classification describes how a file's content is represented in the
// assembled document. It is determined once per file at assembly time.
type Classification int

const (
	// ClassificationText marks a readable file whose content is emitted verbatim.
	ClassificationText Classification = iota
	// ClassificationBinary marks a file whose leading bytes contain a null
	// byte, or that could not be opened for the sniff.
	ClassificationBinary
	// ClassificationEmpty marks a zero-byte file.
	ClassificationEmpty
	// ClassificationUnreadable marks a file whose content could not be read.
	ClassificationUnreadable
)

// FileRecord captures one included file: its root-relative path, raw content,
// and classification. Content is populated only for text files; ReadError only
// for unreadable files.
type FileRecord struct {
	RelativePath   string
	Content        []byte
	Classification Classification
	ReadError      error
}
