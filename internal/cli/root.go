package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/config"
	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/pkg/hashutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	iconDir         string
	classPrefix     string
	technology      string
	wrapperSelector string
	outputDir       string
	stylesheetName  string
	hashAlgo        string
	minify          bool
	concurrency     int
	dryRun          bool
	watchDebounce   time.Duration
	verbose         bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "richtext-icons",
	Short: "Sanitize SVG icons and turn them into rich-text icon CSS.",
	Long: `richtext-icons reads a directory of SVG icons, strips everything that
could execute or load external content, and produces a stylesheet that draws
each icon with a CSS mask, so <i class="icon star"></i> in rich text shows the
star in the current text color.

Pages can alternatively have their placeholders replaced by inline SVG.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, .json, .yaml or .toml (e.g., ~/icons.yaml)")
	rootCmd.PersistentFlags().StringVar(&iconDir, "icon-dir", "", "directory holding one SVG file per icon")
	rootCmd.PersistentFlags().StringVar(&classPrefix, "prefix", "", "class shared by every icon placeholder (default \"icon\")")
	rootCmd.PersistentFlags().StringVar(&technology, "technology", "", "mask-inline, mask-before, mask-after or inline-svg (default \"mask-inline\")")
	rootCmd.PersistentFlags().StringVar(&wrapperSelector, "wrapper-selector", "", "rich-text wrapper whose font rules are reset (default \".wp-block\")")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "root output directory for generated files (default \"output\")")
	rootCmd.PersistentFlags().StringVar(&stylesheetName, "stylesheet-name", "", "stylesheet file name without extension (default \"icons\")")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash-algo", "", "sha256 or blake3, used for version strings (default \"sha256\")")
	rootCmd.PersistentFlags().BoolVar(&minify, "minify", false, "minify icons and the stylesheet")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "number of icon files sanitized at once (default 4)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print generated files instead of writing them")
	rootCmd.PersistentFlags().DurationVar(&watchDebounce, "watch-debounce", 0, "quiet period that ends a burst of changes (default 200ms)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every icon and artifact")
}

// InitConfigWithError builds the Config from the config file when one is
// given, otherwise from the flags on top of the defaults.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Start with default config and apply overrides using method chaining
	configBuilder := config.WithDefault(iconDir)

	if classPrefix != "" {
		configBuilder = configBuilder.WithClassPrefix(classPrefix)
	}

	if technology != "" {
		configBuilder = configBuilder.WithTechnology(technology)
	}

	if wrapperSelector != "" {
		configBuilder = configBuilder.WithWrapperSelector(wrapperSelector)
	}

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if stylesheetName != "" {
		configBuilder = configBuilder.WithStylesheetName(stylesheetName)
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	if minify {
		configBuilder = configBuilder.WithMinify(minify)
	}

	if concurrency > 0 {
		configBuilder = configBuilder.WithConcurrency(concurrency)
	}

	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}

	if watchDebounce > 0 {
		configBuilder = configBuilder.WithWatchDebounce(watchDebounce)
	}

	return configBuilder.Build()
}

// newRecorder logs to w. Only warnings and errors are shown unless
// --verbose is set.
func newRecorder(w io.Writer) *metadata.Recorder {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	recorder := metadata.NewRecorder(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return &recorder
}

func ResetFlags() {
	cfgFile = ""
	iconDir = ""
	classPrefix = ""
	technology = ""
	wrapperSelector = ""
	outputDir = ""
	stylesheetName = ""
	hashAlgo = ""
	minify = false
	concurrency = 0
	dryRun = false
	watchDebounce = 0
	verbose = false
	sanitizeInline = false
	inlineOut = ""
	inlineList = false
	previewTitle = ""
}

// ExecuteForTest runs the root command with args and the given streams.
func ExecuteForTest(args []string, in io.Reader, out io.Writer, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetIconDirForTest(dir string) {
	iconDir = dir
}

func SetClassPrefixForTest(prefix string) {
	classPrefix = prefix
}

func SetTechnologyForTest(value string) {
	technology = value
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetConcurrencyForTest(conc int) {
	concurrency = conc
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}
