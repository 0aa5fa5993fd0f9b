package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fuzzinit/fuzz-init/internal/app"
	"github.com/fuzzinit/fuzz-init/internal/config"
	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/version"
)

// Alias version variables for compatibility
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// Root command flags
var (
	rootLanguage      string
	rootTemplate      string
	rootIntegration   string
	rootFuzzer        string
	rootMinimal       bool
	rootOverwrite     bool
	rootListTemplates bool
	rootDevMode       bool
	rootConfigPath    string
	rootVars          []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fuzz-init [project-name]",
	Short: "Scaffold fuzz testing projects from templates",
	Long: `fuzz-init generates ready-to-build fuzz testing projects from templates.

Templates come from three sources:
  - Embedded:  fuzz-init my-target --language c
  - Local:     fuzz-init my-target --template ./my-template
  - GitHub:    fuzz-init my-target --template github:org/repo

Template files are rendered with {{variable}} substitution and can be
conditionally included based on the selected integration, fuzzer, and
minimal mode. Missing values are prompted for interactively.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
	RunE: runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Root command flags
	rootCmd.Flags().StringVarP(&rootLanguage, FlagLanguage, "l", "", DescLanguage)
	rootCmd.Flags().StringVarP(&rootTemplate, FlagTemplate, "t", "", DescTemplate)
	rootCmd.Flags().StringVarP(&rootIntegration, FlagIntegration, "i", "", DescIntegration)
	rootCmd.Flags().StringVarP(&rootFuzzer, FlagFuzzer, "f", "", DescFuzzer)
	rootCmd.Flags().BoolVarP(&rootMinimal, FlagMinimal, "m", false, DescMinimal)
	rootCmd.Flags().BoolVar(&rootOverwrite, FlagOverwrite, false, DescOverwrite)
	rootCmd.Flags().BoolVar(&rootListTemplates, FlagListTemplates, false, DescListTemplates)
	rootCmd.Flags().BoolVar(&rootDevMode, FlagDevMode, false, DescDevMode)
	rootCmd.Flags().StringVar(&rootConfigPath, FlagConfig, "", DescConfig)
	rootCmd.Flags().StringArrayVar(&rootVars, FlagVar, nil, DescVar)

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyConfigOutput(cfg)

	if rootListTemplates {
		return runListTemplates()
	}

	vars, err := parseVarFlags(rootVars)
	if err != nil {
		return err
	}

	// Resolve the template first; the interactive prompts need its catalogs.
	language := rootLanguage
	if rootTemplate == "" && language == "" {
		language, err = promptLanguage()
		if err != nil {
			return err
		}
	}

	gh := app.GitHubOptions{
		Token:   githubToken(cfg),
		Timeout: time.Duration(cfg.GitHub.TimeoutSeconds) * time.Second,
	}
	tpl, err := app.LoadTemplate(cmd.Context(), language, rootTemplate, gh)
	if err != nil {
		return err
	}
	printProgress(fmt.Sprintf("Using template: %s", tpl.Source.String()))

	if rootDevMode {
		return runDevMode(cmd, tpl, vars)
	}

	projectName := ""
	if len(args) > 0 {
		projectName = args[0]
	}
	if projectName == "" {
		projectName, err = promptProjectName()
		if err != nil {
			return err
		}
	}

	integration := rootIntegration
	if integration == "" {
		integration = configDefault(cfg.Defaults.Integration, tpl.Metadata.SupportedIntegrations())
	}
	if integration == "" {
		integration, err = promptIntegration(tpl.Metadata)
		if err != nil {
			return err
		}
	}

	fuzzer := rootFuzzer
	if fuzzer == "" {
		fuzzer = configDefault(cfg.Defaults.Fuzzer, supportedFuzzers(tpl.Metadata))
	}
	if fuzzer == "" {
		fuzzer, err = promptFuzzer(tpl.Metadata)
		if err != nil {
			return err
		}
	}

	minimal := rootMinimal
	if !cmd.Flags().Changed(FlagMinimal) && cfg.Defaults.Minimal {
		minimal = true
	}

	result, err := app.InitFromTemplate(cmd.Context(), tpl, app.InitOptions{
		ProjectName: projectName,
		Language:    language,
		Integration: integration,
		Fuzzer:      fuzzer,
		Minimal:     minimal,
		Overwrite:   rootOverwrite,
		Vars:        vars,
		GitHub:      gh,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Project generation failed: %v", err))
		return err
	}

	printResult(result)
	printRerunHint(projectName, language, integration, fuzzer, minimal)
	return nil
}

// printRerunHint shows the non-interactive command line equivalent to the
// prompted choices.
func printRerunHint(projectName, language, integration, fuzzer string, minimal bool) {
	cmd := "fuzz-init " + projectName
	if rootTemplate != "" {
		cmd += " --template " + rootTemplate
	} else if language != "" {
		cmd += " --language " + language
	}
	if integration != "" {
		cmd += " --integration " + integration
	}
	if fuzzer != "" {
		cmd += " --fuzzer " + fuzzer
	}
	if minimal {
		cmd += " --minimal"
	}
	printInfo("")
	printInfo("To skip the prompts next time:")
	printInfo("  " + cmd)
}

// runListTemplates prints the embedded template names.
func runListTemplates() error {
	names, err := app.ListTemplates()
	if err != nil {
		return err
	}
	printInfo("Available templates:")
	for _, name := range names {
		printInfo("  " + name)
	}
	return nil
}

// loadConfig loads the user config, honoring an explicit --config path.
func loadConfig() (*config.Config, error) {
	if rootConfigPath != "" {
		return config.Load(rootConfigPath)
	}
	return config.LoadOrDefault()
}

// applyConfigOutput lets the config file set output defaults without
// overriding explicit flags.
func applyConfigOutput(cfg *config.Config) {
	if cfg.Output.Quiet {
		globalQuiet = true
	}
	if !cfg.Output.Color {
		globalNoColor = true
		debug.SetNoColor(true)
	}
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
