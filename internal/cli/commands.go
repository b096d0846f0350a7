package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rohmanhakim/richtext-icons/internal/build"
	"github.com/rohmanhakim/richtext-icons/internal/cache"
	"github.com/rohmanhakim/richtext-icons/internal/catalog"
	"github.com/rohmanhakim/richtext-icons/internal/inline"
	"github.com/rohmanhakim/richtext-icons/internal/sanitizer"
	"github.com/rohmanhakim/richtext-icons/internal/scheduler"
	"github.com/rohmanhakim/richtext-icons/internal/watch"
	"github.com/rohmanhakim/richtext-icons/pkg/fileutil"
	"github.com/spf13/cobra"
)

var (
	sanitizeInline bool
	inlineOut      string
	inlineList     bool
	previewTitle   string
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [file]",
	Short: "Sanitize one SVG file and print the result",
	Long: `Sanitize reads an SVG file, or standard input when the file is "-" or
missing, and prints the sanitized markup.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		svgSanitizer := sanitizer.NewSVGSanitizer(newRecorder(cmd.ErrOrStderr()))
		sanitized, sanitizeErr := svgSanitizer.Sanitize(name, string(raw))
		if sanitizeErr != nil {
			return sanitizeErr
		}

		svg := sanitized.SVG()
		if sanitizeInline {
			svg = sanitizer.CleanForInlineDisplay(svg)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	},
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Generate the icon stylesheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		s := scheduler.NewScheduler(cfg, newRecorder(cmd.ErrOrStderr()))
		return generateStylesheet(cmd.Context(), &s, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

var inlineCmd = &cobra.Command{
	Use:   "inline [page.html]",
	Short: "Replace icon placeholders in an HTML page with inline SVG",
	Long: `Inline reads an HTML page, or standard input when the page is "-" or
missing, and replaces every empty <i class="<prefix> ..."></i> placeholder with
the matching icon as inline SVG. Unknown icons are left in place and listed on
standard error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		_, page, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		if inlineList {
			names, err := inline.UsedIcons(string(page), cfg.ClassPrefix())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		rec := newRecorder(cmd.ErrOrStderr())
		svgSanitizer := sanitizer.NewSVGSanitizer(rec)
		source := catalog.NewFileSource(os.DirFS(cfg.IconDir()), &svgSanitizer)
		replacer := inline.NewReplacer(cfg.ClassPrefix(), source, cache.NewMemoryCache(), rec)

		result, err := replacer.Replace(string(page))
		if err != nil {
			return err
		}
		for _, m := range result.Missing {
			if m.Suggestion != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown icon %s, did you mean %s?\n", m.Name, m.Suggestion)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown icon %s\n", m.Name)
			}
		}

		if inlineOut == "" || cfg.DryRun() {
			_, err = io.WriteString(cmd.OutOrStdout(), result.HTML)
			return err
		}
		if err := fileutil.EnsureDir(filepath.Dir(inlineOut)); err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(inlineOut, []byte(result.HTML), 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d icons replaced)\n", inlineOut, result.Replaced)
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render an HTML page showing every icon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		s := scheduler.NewScheduler(cfg, newRecorder(cmd.ErrOrStderr()))
		return generatePreview(cmd.Context(), &s, previewTitle, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the stylesheet whenever an icon changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rec := newRecorder(cmd.ErrOrStderr())
		s := scheduler.NewScheduler(cfg, rec)
		regenerate := func(ctx context.Context) {
			err := generateStylesheet(ctx, &s, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", err)
			}
		}

		watcher, err := watch.NewWatcher(cfg.IconDir(), cfg.WatchDebounce(), regenerate, rec)
		if err != nil {
			return err
		}
		regenerate(ctx)
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", cfg.IconDir())
		return watcher.Run(ctx)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.Banner(cmd.Root().Name()))
	},
}

func init() {
	sanitizeCmd.Flags().BoolVar(&sanitizeInline, "inline", false, "collapse whitespace and drop the root width and height")
	inlineCmd.Flags().StringVarP(&inlineOut, "out", "o", "", "write the page to this file instead of standard output")
	inlineCmd.Flags().BoolVar(&inlineList, "list", false, "only list the icons the page uses")
	previewCmd.Flags().StringVar(&previewTitle, "title", "", "page title (default \"Icon preview\")")

	rootCmd.AddCommand(sanitizeCmd, cssCmd, inlineCmd, previewCmd, watchCmd, versionCmd)
}

// readInput reads the file named by args[0], or the command's input when
// there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return "stdin", data, err
	}
	data, err := os.ReadFile(args[0])
	return args[0], data, err
}
