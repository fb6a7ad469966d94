// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"repo2text/internal/assemble"
	"repo2text/internal/config"
	"repo2text/internal/ignore"
	"repo2text/internal/report"
	"repo2text/internal/services/clipboard"
	"repo2text/internal/tokenizer"
	"repo2text/internal/utils"
	"repo2text/internal/walker"
)

const (
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	noClipboardFlagName = "no-clipboard"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	versionFlagName     = "version"
	versionTemplate     = "repo2text version: %s\n"
	defaultPath         = "."
	defaultModelName    = "gpt-4o"

	rootUse              = "repo2text [root_dir]"
	rootShortDescription = "convert a repository into an LLM-friendly text document"
	rootLongDescription  = `repo2text serializes a directory tree into a single text document:
a hierarchical listing of included paths followed by the contents of each
included file. The document is copied to the clipboard and can optionally be
written to a file. Exclusions follow the project's .gitignore combined with
built-in defaults.`
	rootUsageExample = `  # Convert the current directory and copy to the clipboard
  repo2text

  # Convert a project and also write the document to a file
  repo2text ~/src/project -o project.txt

  # Skip the clipboard and report a token estimate
  repo2text --no-clipboard --tokens .`

	outputFlagDescription      = "output file to save the formatted repository"
	noClipboardFlagDescription = "do not copy the document to the clipboard"
	tokensFlagDescription      = "report an estimated token count for the document"
	modelFlagDescription       = "tokenizer model used for the token estimate"
	versionFlagDescription     = "display application version"

	// invalidRootFormat reports a root path that is missing or not a directory.
	invalidRootFormat = "the specified root directory '%s' does not exist or is not a directory"
	// workingDirectoryErrorFormat reports failure to determine the working directory.
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	clipboardSuccessMessage = "The repository has been successfully copied to the clipboard."
	clipboardErrorFormat    = "Error copying to clipboard: %v"
	outputSuccessFormat     = "The repository has been written to '%s'."
	outputErrorFormat       = "Error writing to output file: %v"
	tokenizerErrorFormat    = "Error estimating token count: %v"
	tokenCountFormat        = "Estimated token count (%s): %d"
	completionFormat        = "Operation completed in %.2f seconds."
)

// RunOptions carries everything one conversion run needs. The status writer
// and clipboard copier are injected so tests can capture both sinks.
type RunOptions struct {
	RootDirectory    string
	OutputPath       string
	ClipboardEnabled bool
	TokensEnabled    bool
	TokenizerModel   string
	Copier           clipboard.Copier
	StatusWriter     io.Writer
}

// Execute runs the repo2text application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var outputPath string
	var noClipboard bool
	var tokensEnabled bool
	var tokenizerModel string
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				return nil
			}

			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			appConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
			if configurationError != nil {
				return configurationError
			}

			options := RunOptions{
				RootDirectory:    defaultPath,
				ClipboardEnabled: true,
				TokenizerModel:   defaultModelName,
				Copier:           clipboard.NewService(),
				StatusWriter:     os.Stdout,
			}
			if len(arguments) == 1 {
				options.RootDirectory = arguments[0]
			}

			options.OutputPath = appConfiguration.Output
			if command.Flags().Changed(outputFlagName) {
				options.OutputPath = outputPath
			}
			if appConfiguration.Clipboard != nil {
				options.ClipboardEnabled = *appConfiguration.Clipboard
			}
			if noClipboard {
				options.ClipboardEnabled = false
			}
			if appConfiguration.Tokens != nil {
				options.TokensEnabled = *appConfiguration.Tokens
			}
			if command.Flags().Changed(tokensFlagName) {
				options.TokensEnabled = tokensEnabled
			}
			if appConfiguration.Model != "" {
				options.TokenizerModel = appConfiguration.Model
			}
			if command.Flags().Changed(modelFlagName) {
				options.TokenizerModel = tokenizerModel
			}

			return Run(options)
		},
	}

	rootCommand.Flags().StringVarP(&outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	rootCommand.Flags().BoolVar(&noClipboard, noClipboardFlagName, false, noClipboardFlagDescription)
	rootCommand.Flags().BoolVar(&tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&tokenizerModel, modelFlagName, defaultModelName, modelFlagDescription)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// Run executes one conversion: load rules, walk, assemble, deliver to sinks.
// Sink failures are reported on the status channel and never fail the run;
// only an invalid root or an unreadable directory aborts.
func Run(options RunOptions) error {
	statusReporter := report.NewReporter(options.StatusWriter)

	rootInformation, rootStatError := os.Stat(options.RootDirectory)
	if rootStatError != nil || !rootInformation.IsDir() {
		return fmt.Errorf(invalidRootFormat, options.RootDirectory)
	}
	absoluteRootDirectory, absolutePathError := filepath.Abs(options.RootDirectory)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, options.RootDirectory, absolutePathError)
	}

	startTime := time.Now()

	ruleSet, loadWarnings := ignore.Load(absoluteRootDirectory)
	for _, warningMessage := range loadWarnings {
		statusReporter.Warning(warningMessage)
	}

	walkResult, walkError := walker.Walk(absoluteRootDirectory, ruleSet)
	if walkError != nil {
		return walkError
	}

	assembler := assemble.New(absoluteRootDirectory, statusReporter)
	documentText := assembler.Build(walkResult.TreeText, walkResult.FilePaths)

	if options.ClipboardEnabled && options.Copier != nil {
		if copyError := options.Copier.Copy(documentText); copyError != nil {
			statusReporter.Error(fmt.Sprintf(clipboardErrorFormat, copyError))
		} else {
			statusReporter.Info(clipboardSuccessMessage)
		}
	}

	if options.OutputPath != "" {
		if writeError := os.WriteFile(options.OutputPath, []byte(documentText), 0o644); writeError != nil {
			statusReporter.Error(fmt.Sprintf(outputErrorFormat, writeError))
		} else {
			statusReporter.Info(fmt.Sprintf(outputSuccessFormat, options.OutputPath))
		}
	}

	if options.TokensEnabled {
		reportTokenEstimate(statusReporter, options.TokenizerModel, documentText)
	}

	statusReporter.Info(fmt.Sprintf(completionFormat, time.Since(startTime).Seconds()))
	return nil
}

// reportTokenEstimate counts tokens for the document and reports the result.
// Failures are status-channel errors only; the run still succeeds.
func reportTokenEstimate(statusReporter *report.Reporter, model string, documentText string) {
	tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		statusReporter.Error(fmt.Sprintf(tokenizerErrorFormat, counterError))
		return
	}
	tokenCount, countError := tokenCounter.CountString(documentText)
	if countError != nil {
		statusReporter.Error(fmt.Sprintf(tokenizerErrorFormat, countError))
		return
	}
	statusReporter.Info(fmt.Sprintf(tokenCountFormat, resolvedModel, tokenCount))
}
