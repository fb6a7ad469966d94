// Package ignore compiles gitignore-style exclusion rules into a rule set
// capable of testing any path relative to the repository root.
package ignore

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	gitignore "github.com/Sriram-PR/go-ignore"
)

const (
	// GitIgnoreFileName is the name of the Git ignore file read from the root directory.
	GitIgnoreFileName = ".gitignore"

	// missingIgnoreFileWarning is reported when the root directory has no ignore file.
	missingIgnoreFileWarning = "Alert: .gitignore file not found. Using default ignore patterns."
	// emptyIgnoreFileWarning is reported when the ignore file exists but holds no content.
	emptyIgnoreFileWarning = "Alert: .gitignore is empty."
	// parseWarningFormat reports a pattern the matcher could not compile.
	parseWarningFormat = "Alert: skipping ignore pattern %q (line %d): %s"
)

// DefaultPatterns are always-active exclusions applied in addition to the
// repository's own ignore file.
var DefaultPatterns = []string{
	".git/",
	".svn/",
	".hg/",
	".DS_Store",
	"__pycache__/",
	"*.pyc",
	"*.pyo",
	"*.pyd",
	"*$py.class",
	"*.so",
	"build/",
	"dist/",
	"downloads/",
	"eggs/",
	".eggs/",
	"lib/",
	"lib64/",
	"parts/",
	"sdist/",
}

// RuleSet combines two independently compiled matchers: the repository's own
// ignore rules and the built-in defaults. A path is excluded when either
// matcher excludes it; a negation in one matcher never overrides an exclusion
// from the other. This combination is a fixed contract, not standard single
// list gitignore layering.
type RuleSet struct {
	userMatcher    *gitignore.Matcher
	defaultMatcher *gitignore.Matcher
}

// New compiles a RuleSet from raw ignore file content. Malformed patterns are
// skipped by the matcher; the returned warnings describe each skipped pattern.
func New(userRuleContent []byte) (*RuleSet, []string) {
	var compileWarnings []string

	userMatcher := gitignore.New()
	for _, parseWarning := range userMatcher.AddPatterns("", userRuleContent) {
		compileWarnings = append(compileWarnings, fmt.Sprintf(parseWarningFormat, parseWarning.Pattern, parseWarning.Line, parseWarning.Message))
	}

	defaultMatcher := gitignore.New()
	defaultMatcher.AddPatterns("", []byte(joinPatterns(DefaultPatterns)))

	return &RuleSet{userMatcher: userMatcher, defaultMatcher: defaultMatcher}, compileWarnings
}

// Load reads the ignore file from rootDirectory and compiles a RuleSet.
// A missing or empty ignore file is a reportable warning, not a failure; the
// rule set then carries the built-in defaults alone.
func Load(rootDirectory string) (*RuleSet, []string) {
	ignoreFilePath := filepath.Join(rootDirectory, GitIgnoreFileName)
	ignoreFileContent, readError := os.ReadFile(ignoreFilePath)
	if readError != nil {
		ruleSet, compileWarnings := New(nil)
		return ruleSet, append([]string{missingIgnoreFileWarning}, compileWarnings...)
	}

	ruleSet, compileWarnings := New(ignoreFileContent)
	if len(ignoreFileContent) == 0 {
		compileWarnings = append([]string{emptyIgnoreFileWarning}, compileWarnings...)
	}
	return ruleSet, compileWarnings
}

// Matches reports whether the slash-separated path relative to the root is
// excluded. The ignore file itself is always excluded regardless of patterns.
func (ruleSet *RuleSet) Matches(relativePath string, isDirectory bool) bool {
	if path.Base(relativePath) == GitIgnoreFileName {
		return true
	}
	return ruleSet.userMatcher.Match(relativePath, isDirectory) ||
		ruleSet.defaultMatcher.Match(relativePath, isDirectory)
}

// joinPatterns renders a pattern list as ignore file content.
func joinPatterns(patterns []string) string {
	joined := ""
	for _, pattern := range patterns {
		joined += pattern + "\n"
	}
	return joined
}
