package ignore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo2text/internal/ignore"
)

func TestDefaultPatternsApplyWithoutUserRules(t *testing.T) {
	t.Parallel()

	ruleSet, compileWarnings := ignore.New(nil)
	require.Empty(t, compileWarnings)

	testCases := []struct {
		name        string
		path        string
		isDirectory bool
		expected    bool
	}{
		{name: "git directory", path: ".git", isDirectory: true, expected: true},
		{name: "build directory", path: "build", isDirectory: true, expected: true},
		{name: "file inside build directory", path: "build/keep.txt", isDirectory: false, expected: true},
		{name: "compiled python file", path: "module.pyc", isDirectory: false, expected: true},
		{name: "nested compiled python file", path: "pkg/nested/module.pyc", isDirectory: false, expected: true},
		{name: "ds store file", path: ".DS_Store", isDirectory: false, expected: true},
		{name: "ordinary source file", path: "main.go", isDirectory: false, expected: false},
		{name: "ordinary directory", path: "src", isDirectory: true, expected: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, ruleSet.Matches(testCase.path, testCase.isDirectory))
		})
	}
}

func TestUserRulesExcludeAndNegateWithinTheirOwnList(t *testing.T) {
	t.Parallel()

	ruleSet, _ := ignore.New([]byte("*.log\n!important.log\n"))

	assert.True(t, ruleSet.Matches("debug.log", false))
	assert.False(t, ruleSet.Matches("important.log", false), "negation in the user list rescues the path")
	assert.False(t, ruleSet.Matches("notes.txt", false))
}

func TestUserNegationCannotOverrideBuiltInDefaults(t *testing.T) {
	t.Parallel()

	// The two rule lists are combined with OR: a negation in the user list
	// never rescues a path the built-in list excludes.
	ruleSet, _ := ignore.New([]byte("!build/keep.txt\n!*.pyc\n"))

	assert.True(t, ruleSet.Matches("build", true))
	assert.True(t, ruleSet.Matches("build/keep.txt", false))
	assert.True(t, ruleSet.Matches("module.pyc", false))
}

func TestIgnoreFileItselfIsAlwaysExcluded(t *testing.T) {
	t.Parallel()

	ruleSet, _ := ignore.New([]byte("!.gitignore\n"))

	assert.True(t, ruleSet.Matches(".gitignore", false))
	assert.True(t, ruleSet.Matches("sub/.gitignore", false))
}

func TestAnchoredAndDirectoryOnlyPatterns(t *testing.T) {
	t.Parallel()

	ruleSet, _ := ignore.New([]byte("/top.txt\nlogs/\n"))

	assert.True(t, ruleSet.Matches("top.txt", false))
	assert.False(t, ruleSet.Matches("sub/top.txt", false), "anchored pattern only matches at the root")
	assert.True(t, ruleSet.Matches("logs", true))
	assert.False(t, ruleSet.Matches("logs", false), "directory-only pattern does not match a plain file")
}

func TestLoadMissingIgnoreFileWarnsAndUsesDefaults(t *testing.T) {
	t.Parallel()

	rootDirectory := t.TempDir()
	ruleSet, loadWarnings := ignore.Load(rootDirectory)

	require.Len(t, loadWarnings, 1)
	assert.Contains(t, loadWarnings[0], "not found")
	assert.True(t, ruleSet.Matches("build", true))
}

func TestLoadEmptyIgnoreFileWarns(t *testing.T) {
	t.Parallel()

	rootDirectory := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(rootDirectory, ignore.GitIgnoreFileName), nil, 0o644))

	ruleSet, loadWarnings := ignore.Load(rootDirectory)

	require.Len(t, loadWarnings, 1)
	assert.Contains(t, loadWarnings[0], "empty")
	assert.True(t, ruleSet.Matches(".git", true))
}

func TestLoadReadsUserRulesFromRoot(t *testing.T) {
	t.Parallel()

	rootDirectory := t.TempDir()
	ignoreFileContent := strings.Join([]string{"b.bin", "# comment", ""}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(rootDirectory, ignore.GitIgnoreFileName), []byte(ignoreFileContent), 0o644))

	ruleSet, loadWarnings := ignore.Load(rootDirectory)

	assert.Empty(t, loadWarnings)
	assert.True(t, ruleSet.Matches("b.bin", false))
	assert.False(t, ruleSet.Matches("a.txt", false))
}
