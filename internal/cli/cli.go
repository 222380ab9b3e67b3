// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dirmap/internal/clipboard"
	"dirmap/internal/config"
	"dirmap/internal/format"
	"dirmap/internal/ignore"
	"dirmap/internal/styles"
	"dirmap/internal/template"
	"dirmap/internal/types"
	"dirmap/internal/utils"
	"dirmap/internal/walker"
)

const (
	styleFlagName       = "style"
	formatFlagName      = "format"
	sortFlagName        = "sort"
	exclusionFlagName   = "e"
	noGitignoreFlagName = "no-gitignore"
	noBaselineFlagName  = "no-baseline"
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	clipboardFlagName   = "clipboard"
	templateFlagName    = "template"
	configFlagName      = "config"
	versionFlagName     = "version"
	versionTemplate     = "dirmap version: %s\n"

	defaultRootPath  = "."
	defaultStyle     = types.StyleTree
	defaultFormat    = types.FormatPlain
	defaultSortOrder = types.SortAscending

	rootUse              = "dirmap"
	rootShortDescription = "dirmap command line interface"
	rootLongDescription  = `dirmap maps directory structures.
It renders a directory tree in several styles and output formats, captures the
structure as a reusable template, and materializes templates back onto disk.
Use --version to print the application version.`
	versionFlagDescription = "display application version"

	generateUse              = "generate [path]"
	generateAlias            = "g"
	generateShortDescription = "render a directory structure (" + generateAlias + ")"
	generateLongDescription  = `Render the directory structure rooted at the given path.
Use --style to select tree, indent, list, or flat rendering and --format to
select plain, json, yaml, html, or markdown output. The json and yaml formats
encode the canonical structure and can be replayed with the build command.`
	generateUsageExample = `  # Render the current directory as a tree
  dirmap generate

  # Capture a reusable template
  dirmap generate --template --format json -o project.json ./src

  # Exclude vendored code and sort descending
  dirmap generate -e vendor --sort desc .`

	buildUse              = "build <template> [target]"
	buildAlias            = "b"
	buildShortDescription = "materialize a template onto disk (" + buildAlias + ")"
	buildLongDescription  = `Create the directories and files described by a template document.
The template encoding is chosen by file extension (.json, .yaml, or .yml).
Existing paths are left untouched; per-entry failures are reported without
aborting the run.`
	buildUsageExample = `  # Materialize a template into the current directory
  dirmap build project.json

  # Materialize into a new directory
  dirmap build project.yaml ./scaffold`

	styleFlagDescription       = "rendering style (tree, indent, list, flat)"
	formatFlagDescription      = "output format (plain, json, yaml, html, markdown)"
	sortFlagDescription        = "sibling sort order (asc, desc, none; append :case for case-sensitive)"
	exclusionFlagDescription   = "exclude path pattern"
	noGitignoreFlagDescription = "do not use .gitignore"
	noBaselineFlagDescription  = "do not apply the built-in baseline exclusions"
	outputFlagDescription      = "write output to file"
	clipboardFlagDescription   = "copy output to the system clipboard"
	templateFlagDescription    = "emit a template document instead of the bare structure"
	configFlagDescription      = "configuration file path"

	caseSensitiveSortSuffix = ":case"

	// errorInvalidSortFormat reports an unrecognized sort order value.
	errorInvalidSortFormat = "invalid sort order %q (supported: asc, desc, none)"
	// errorTemplateFormatFormat reports a template request with a one-way format.
	errorTemplateFormatFormat = "templates require a round-trippable format, not %q"
	// errorWriteOutputFormat reports an output file that could not be written.
	errorWriteOutputFormat = "writing output to %s: %w"
	// errorEntriesFailedFormat summarizes per-entry materialization failures.
	errorEntriesFailedFormat = "%d of %d entries failed to materialize"

	warningExtensionMismatchMessage = "output file extension does not match the selected format"
	buildReportFormat               = "created %d, skipped %d, failed %d\n"
	outputFileMode                  = 0o644
)

// Dependencies carries the services the commands need. Tests substitute the
// clipboard copier; the logger may be nil.
type Dependencies struct {
	Logger    *zap.Logger
	Clipboard clipboard.Copier
}

// Execute runs the dirmap application.
func Execute(loggerInstance *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{
		Logger:    loggerInstance,
		Clipboard: clipboard.NewSystemCopier(),
	})
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return command.Help()
		},
	}
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createGenerateCommand(dependencies),
		createBuildCommand(dependencies),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// generateOptions stores the flag values of the generate command.
type generateOptions struct {
	styleName         string
	formatName        string
	sortOrder         string
	exclusionPatterns []string
	disableGitignore  bool
	disableBaseline   bool
	outputPath        string
	copyToClipboard   bool
	emitTemplate      bool
	configPath        string
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(dependencies Dependencies) *cobra.Command {
	var options generateOptions

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultRootPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return runGenerate(command, dependencies, options, rootPath)
		},
	}

	generateCommand.Flags().StringVar(&options.styleName, styleFlagName, "", styleFlagDescription)
	generateCommand.Flags().StringVar(&options.formatName, formatFlagName, "", formatFlagDescription)
	generateCommand.Flags().StringVar(&options.sortOrder, sortFlagName, "", sortFlagDescription)
	generateCommand.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	generateCommand.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	generateCommand.Flags().BoolVar(&options.disableBaseline, noBaselineFlagName, false, noBaselineFlagDescription)
	generateCommand.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	generateCommand.Flags().BoolVar(&options.copyToClipboard, clipboardFlagName, false, clipboardFlagDescription)
	generateCommand.Flags().BoolVar(&options.emitTemplate, templateFlagName, false, templateFlagDescription)
	generateCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	return generateCommand
}

// runGenerate walks the root, renders the structure, and delivers the output.
func runGenerate(command *cobra.Command, dependencies Dependencies, options generateOptions, rootPath string) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	effective := resolveGenerateSettings(command, options, applicationConfiguration.Generate)

	styleName := strings.ToLower(effective.styleName)
	formatName := strings.ToLower(effective.formatName)
	renderer, styleError := styles.ForName(styleName)
	if styleError != nil {
		return styleError
	}
	formatter, formatError := format.ForName(formatName)
	if formatError != nil {
		return formatError
	}
	if options.emitTemplate && !format.IsRoundTrippable(formatName) {
		return fmt.Errorf(errorTemplateFormatFormat, formatName)
	}
	sortOrder, caseSensitive, sortError := parseSortOrder(effective.sortOrder)
	if sortError != nil {
		return sortError
	}

	ignorer, ignorerError := buildIgnorer(rootPath, effective)
	if ignorerError != nil {
		return ignorerError
	}

	treeWalker := &walker.Walker{
		Ignorer:       ignorer,
		SortOrder:     sortOrder,
		CaseSensitive: caseSensitive,
		Logger:        dependencies.Logger,
	}
	records, walkError := treeWalker.Walk(rootPath)
	if walkError != nil {
		return walkError
	}

	outputText, renderError := renderOutput(records, renderer, formatter, styleName, formatName, options.emitTemplate)
	if renderError != nil {
		return renderError
	}

	return deliverOutput(command, dependencies, options, effective, formatName, outputText)
}

// effectiveGenerateSettings is the flag-over-config resolution of the
// generate command's inputs.
type effectiveGenerateSettings struct {
	styleName         string
	formatName        string
	sortOrder         string
	exclusionPatterns []string
	useGitignore      bool
	useBaseline       bool
	copyToClipboard   bool
}

// resolveGenerateSettings overlays command-line flags onto the configuration
// file values. A flag the user set always wins; otherwise the configuration
// value applies, then the built-in default.
func resolveGenerateSettings(command *cobra.Command, options generateOptions, configuration config.GenerateConfiguration) effectiveGenerateSettings {
	settings := effectiveGenerateSettings{
		styleName:    defaultStyle,
		formatName:   defaultFormat,
		sortOrder:    defaultSortOrder,
		useGitignore: true,
		useBaseline:  true,
	}
	if configuration.Style != "" {
		settings.styleName = configuration.Style
	}
	if configuration.Format != "" {
		settings.formatName = configuration.Format
	}
	if configuration.Sort != "" {
		settings.sortOrder = configuration.Sort
	}
	if configuration.Paths.UseGitignore != nil {
		settings.useGitignore = *configuration.Paths.UseGitignore
	}
	if configuration.Paths.UseBaseline != nil {
		settings.useBaseline = *configuration.Paths.UseBaseline
	}
	if configuration.Clipboard != nil {
		settings.copyToClipboard = *configuration.Clipboard
	}

	if command.Flags().Changed(styleFlagName) {
		settings.styleName = options.styleName
	}
	if command.Flags().Changed(formatFlagName) {
		settings.formatName = options.formatName
	}
	if command.Flags().Changed(sortFlagName) {
		settings.sortOrder = options.sortOrder
	}
	if options.disableGitignore {
		settings.useGitignore = false
	}
	if options.disableBaseline {
		settings.useBaseline = false
	}
	if command.Flags().Changed(clipboardFlagName) {
		settings.copyToClipboard = options.copyToClipboard
	}
	settings.exclusionPatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.Paths.Exclude...), options.exclusionPatterns...))
	return settings
}

// parseSortOrder splits the optional case-sensitivity suffix off the sort
// order value and validates the base order.
func parseSortOrder(value string) (string, bool, error) {
	order := strings.ToLower(strings.TrimSpace(value))
	caseSensitive := false
	if strings.HasSuffix(order, caseSensitiveSortSuffix) {
		caseSensitive = true
		order = strings.TrimSuffix(order, caseSensitiveSortSuffix)
	}
	switch order {
	case types.SortAscending, types.SortDescending, types.SortNone:
		return order, caseSensitive, nil
	default:
		return "", false, fmt.Errorf(errorInvalidSortFormat, value)
	}
}

// buildIgnorer assembles the pattern sources into a single ignorer: the
// built-in baseline, the root's .gitignore, and the explicit exclusions.
func buildIgnorer(rootPath string, settings effectiveGenerateSettings) (*ignore.PathIgnorer, error) {
	var patternSources [][]string
	if settings.useBaseline {
		patternSources = append(patternSources, ignore.BaselinePatterns())
	}
	if settings.useGitignore {
		gitignorePatterns, loadError := ignore.LoadGitignorePatterns(utils.ExpandHome(rootPath))
		if loadError != nil {
			return nil, loadError
		}
		patternSources = append(patternSources, gitignorePatterns)
	}
	patternSources = append(patternSources, settings.exclusionPatterns)
	return ignore.NewPathIgnorer(ignore.CombinePatterns(patternSources...))
}

// renderOutput produces the final output text: either the formatted structure
// or a full template document.
func renderOutput(records []types.EntryRecord, renderer styles.Renderer, formatter format.Formatter, styleName string, formatName string, emitTemplate bool) (string, error) {
	structure, structureError := walker.BuildStructure(records)
	if structureError != nil {
		return "", structureError
	}
	if emitTemplate {
		builtTemplate, templateError := template.Create(structure, styleName, formatName)
		if templateError != nil {
			return "", templateError
		}
		return template.Encode(builtTemplate, formatName)
	}
	return formatter.Format(format.Input{
		Styled:    renderer.Render(records),
		Structure: structure,
	})
}

// deliverOutput sends the output text to its destinations. File and clipboard
// delivery run concurrently; without an output file the text goes to stdout.
func deliverOutput(command *cobra.Command, dependencies Dependencies, options generateOptions, settings effectiveGenerateSettings, formatName string, outputText string) error {
	deliveryGroup := new(errgroup.Group)
	if options.outputPath != "" {
		expectedExtension := format.Extension(formatName)
		if expectedExtension != "" && filepath.Ext(options.outputPath) != expectedExtension && dependencies.Logger != nil {
			dependencies.Logger.Warn(warningExtensionMismatchMessage,
				zap.String("output", options.outputPath),
				zap.String("expected_extension", expectedExtension))
		}
		deliveryGroup.Go(func() error {
			if writeError := os.WriteFile(utils.ExpandHome(options.outputPath), []byte(outputText), outputFileMode); writeError != nil {
				return fmt.Errorf(errorWriteOutputFormat, options.outputPath, writeError)
			}
			return nil
		})
	}
	if settings.copyToClipboard && dependencies.Clipboard != nil {
		deliveryGroup.Go(func() error {
			return dependencies.Clipboard.Copy(outputText)
		})
	}
	if waitError := deliveryGroup.Wait(); waitError != nil {
		return waitError
	}
	if options.outputPath == "" {
		fmt.Fprintln(command.OutOrStdout(), outputText)
	}
	return nil
}

// createBuildCommand returns the build subcommand.
func createBuildCommand(dependencies Dependencies) *cobra.Command {
	buildCommand := &cobra.Command{
		Use:     buildUse,
		Aliases: []string{buildAlias},
		Short:   buildShortDescription,
		Long:    buildLongDescription,
		Example: buildUsageExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(command *cobra.Command, arguments []string) error {
			targetRoot := defaultRootPath
			if len(arguments) == 2 {
				targetRoot = arguments[1]
			}
			return runBuild(command, dependencies, arguments[0], targetRoot)
		},
	}
	return buildCommand
}

// runBuild loads the template and materializes it under the target root.
func runBuild(command *cobra.Command, dependencies Dependencies, templatePath string, targetRoot string) error {
	loadedTemplate, loadError := template.Load(templatePath)
	if loadError != nil {
		return loadError
	}
	materializer := &template.Materializer{Logger: dependencies.Logger}
	report, buildError := materializer.Build(loadedTemplate, targetRoot)
	if buildError != nil {
		return buildError
	}
	fmt.Fprintf(command.OutOrStdout(), buildReportFormat, report.CreatedCount(), report.SkippedCount(), report.ErrorCount())
	if report.ErrorCount() > 0 {
		totalEntries := report.CreatedCount() + report.SkippedCount() + report.ErrorCount()
		return fmt.Errorf(errorEntriesFailedFormat, report.ErrorCount(), totalEntries)
	}
	return nil
}
