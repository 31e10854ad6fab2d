// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/structree/structree/internal/config"
	"github.com/structree/structree/internal/services/clipboard"
	"github.com/structree/structree/internal/services/sink"
	"github.com/structree/structree/internal/tree"
	"github.com/structree/structree/internal/utils"
)

const (
	copyFlagName    = "copy"
	outputFlagName  = "output"
	outputFlagShort = "o"
	ignoreFlagName  = "ignore"
	ignoreFlagShort = "i"
	openFlagName    = "open"
	configFlagName  = "config"
	versionFlagName = "version"
	globalFlagName  = "global"
	forceFlagName   = "force"
	versionTemplate = "structree version: %s\n"
	defaultPath     = "."
	rootUse         = "structree"
	rootShort       = "structree command line interface"

	rootLongDescription = `structree renders a directory subtree as an ASCII tree listing.
The listing is written to a file under the target directory or placed on the
system clipboard. Entry names listed in the configuration's ignore list are
excluded from the render.`

	versionFlagDescription = "display application version"

	generateUse              = "generate [paths...]"
	generateAlias            = "g"
	generateShortDescription = "render directory structure (" + generateAlias + ")"

	// generateLongDescription provides detailed help for the generate command.
	generateLongDescription = `Render the tree listing for one or more target directories.
Each target gets its own structure file; with --copy the combined listing is
placed on the clipboard instead.`
	// generateUsageExample demonstrates generate command usage.
	generateUsageExample = `  # Write structure.txt into the current directory
  structree generate

  # Copy the listing for two projects to the clipboard
  structree generate --copy ./api ./web

  # Skip dependency folders and open the result
  structree generate -i node_modules -i .git --open .`

	configUse              = "config"
	configShortDescription = "manage configuration"
	configInitUse          = "init"
	configInitShort        = "write a default configuration file"

	copyFlagDescription   = "place the listing on the clipboard instead of writing a file"
	outputFlagDescription = "name of the structure file written under each target"
	ignoreFlagDescription = "entry name to exclude (exact match, repeatable)"
	openFlagDescription   = "open the written structure file"
	configFlagDescription = "path to a configuration file"
	globalFlagDescription = "write the configuration to the global location"
	forceFlagDescription  = "overwrite an existing configuration file"

	cancelledNoticeMessage = "generation cancelled, no output delivered"

	// workingDirectoryErrorFormat reports failure to determine the working directory.
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a target that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid target directories"
)

// Execute runs the structree application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShort,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createGenerateCommand(),
		createConfigCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// generateOptions stores configuration for the generate command flags.
type generateOptions struct {
	copyToClipboard bool
	outputFileName  string
	ignoreNames     []string
	openAfterWrite  bool
	configFilePath  string
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand() *cobra.Command {
	var options generateOptions

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			return runGenerate(command, arguments, options)
		},
	}

	registerCopyFlag(generateCommand.Flags(), &options.copyToClipboard)
	generateCommand.Flags().StringVarP(&options.outputFileName, outputFlagName, outputFlagShort, "", outputFlagDescription)
	generateCommand.Flags().StringArrayVarP(&options.ignoreNames, ignoreFlagName, ignoreFlagShort, nil, ignoreFlagDescription)
	generateCommand.Flags().BoolVar(&options.openAfterWrite, openFlagName, false, openFlagDescription)
	generateCommand.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	return generateCommand
}

// createConfigCommand returns the config subcommand with its init action.
func createConfigCommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	var writeGlobal bool
	var forceOverwrite bool
	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShort,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), "Configuration written to %s\n", writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)

	configCommand.AddCommand(initCommand)
	return configCommand
}

// resolvedGenerateSettings is the effective generate configuration after
// overlaying flags onto configuration file values.
type resolvedGenerateSettings struct {
	outputFileName  string
	ignoreNames     []string
	copyToClipboard bool
	openAfterWrite  bool
}

// resolveGenerateSettings loads configuration files and applies flag overrides.
// Flags win over the local file, which wins over the global file.
func resolveGenerateSettings(command *cobra.Command, options generateOptions) (resolvedGenerateSettings, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return resolvedGenerateSettings{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configFilePath,
	})
	if loadError != nil {
		return resolvedGenerateSettings{}, loadError
	}

	settings := resolvedGenerateSettings{
		outputFileName: utils.DefaultOutputFileName,
		ignoreNames:    applicationConfiguration.Generate.Ignore,
	}
	if applicationConfiguration.Generate.OutputFile != "" {
		settings.outputFileName = applicationConfiguration.Generate.OutputFile
	}
	if applicationConfiguration.Generate.Clipboard != nil {
		settings.copyToClipboard = *applicationConfiguration.Generate.Clipboard
	}
	if applicationConfiguration.Generate.Open != nil {
		settings.openAfterWrite = *applicationConfiguration.Generate.Open
	}

	if command.Flags().Changed(outputFlagName) {
		settings.outputFileName = options.outputFileName
	}
	if command.Flags().Changed(copyFlagName) {
		settings.copyToClipboard = options.copyToClipboard
	}
	if command.Flags().Changed(openFlagName) {
		settings.openAfterWrite = options.openAfterWrite
	}
	settings.ignoreNames = utils.DeduplicateNames(append(settings.ignoreNames, options.ignoreNames...))

	return settings, nil
}

// runGenerate renders every target directory and dispatches the documents to
// the selected sink.
func runGenerate(command *cobra.Command, paths []string, options generateOptions) error {
	settings, settingsError := resolveGenerateSettings(command, options)
	if settingsError != nil {
		return settingsError
	}

	targetDirectories, validationError := resolveAndValidateDirectories(paths)
	if validationError != nil {
		return validationError
	}

	notify := func(message string) {
		fmt.Fprintln(command.OutOrStdout(), message)
	}
	var documentSink sink.Sink
	if settings.copyToClipboard {
		documentSink = sink.NewClipboardSink(clipboard.NewService(), notify)
	} else {
		documentSink = sink.NewFileSink(settings.outputFileName, settings.openAfterWrite, notify)
	}

	renderer := tree.NewRenderer(tree.NewOSDirectoryReader(), settings.ignoreNames)

	signalContext, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	producer := func(produceContext context.Context, documents chan<- sink.Document) error {
		for _, targetDirectory := range targetDirectories {
			body := renderer.Render(produceContext, targetDirectory, "")
			if produceContext.Err() != nil {
				return produceContext.Err()
			}
			document := sink.Document{
				TargetDirectory: targetDirectory,
				Body:            body,
			}
			select {
			case <-produceContext.Done():
				return produceContext.Err()
			case documents <- document:
			}
		}
		return nil
	}

	if dispatchError := dispatchDocuments(signalContext, producer, documentSink.Handle); dispatchError != nil {
		return dispatchError
	}

	if signalContext.Err() != nil {
		fmt.Fprintln(command.ErrOrStderr(), cancelledNoticeMessage)
		return nil
	}
	return documentSink.Flush()
}

// dispatchDocuments runs the producer and consumer under one errgroup,
// stopping both when the context is cancelled. Cancellation is absorbed;
// every other error propagates.
func dispatchDocuments(
	dispatchContext context.Context,
	produce func(context.Context, chan<- sink.Document) error,
	consume func(sink.Document) error,
) error {
	group, groupContext := errgroup.WithContext(dispatchContext)
	documents := make(chan sink.Document)

	group.Go(func() error {
		defer close(documents)
		return produce(groupContext, documents)
	})

	group.Go(func() error {
		for {
			select {
			case <-groupContext.Done():
				return groupContext.Err()
			case document, open := <-documents:
				if !open {
					return nil
				}
				if consumeError := consume(document); consumeError != nil {
					return consumeError
				}
			}
		}
	})

	if waitError := group.Wait(); waitError != nil && !errors.Is(waitError, context.Canceled) {
		return waitError
	}
	return nil
}

// resolveAndValidateDirectories converts target paths to absolute form,
// removes duplicates, and verifies each one denotes an existing directory.
func resolveAndValidateDirectories(inputs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var result []string
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf(errorNotDirectoryFormat, inputPath)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, cleanPath)
	}
	if len(result) == 0 {
		return nil, errors.New(errorNoValidPaths)
	}
	return result, nil
}
