// Package cmd is the jqi command line: it loads the input document and the config, then
// runs the interactive console or, with --print, a single query.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/jqi/internal/config"
	"github.com/oakwood-commons/jqi/internal/query"
	"github.com/oakwood-commons/jqi/internal/ui"
	"github.com/oakwood-commons/jqi/pkg/loader"
	"github.com/oakwood-commons/jqi/pkg/logger"
	"github.com/oakwood-commons/jqi/pkg/settings"
)

// errNoInput is returned when there is neither a file argument nor piped stdin.
var errNoInput = errors.New("no input: pass a file or pipe a document on stdin")

// rootOptions are the flag values shared by the root command and its subcommands.
type rootOptions struct {
	query      string
	configFile string
	debug      bool
	logFile    string
	noColor    bool
	format     string
	print      bool
}

func bindRootFlags(fs *pflag.FlagSet, o *rootOptions) {
	fs.StringVarP(&o.query, "query", "q", "", "initial query (default from config, usually '.')")
	fs.BoolVarP(&o.print, "print", "p", false, "run the query once, print the result and exit")
	fs.StringVarP(&o.format, "format", "f", "", "result format: json|yaml (default from config)")
	fs.BoolVar(&o.noColor, "no-color", false, "disable colors and highlighting")
}

func bindPersistentFlags(fs *pflag.FlagSet, o *rootOptions) {
	fs.StringVar(&o.configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/jqi/config.yaml)")
	fs.BoolVar(&o.debug, "debug", false, "log at debug level")
	fs.StringVar(&o.logFile, "log-file", "", "append structured logs to this file")
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: "Interactive jq console with vi keys and context-aware autocomplete",
		Long: `jqi opens a JSON, YAML, TOML or NDJSON document and lets you build a jq query
against it interactively. Results update on every edit.

Keys: Esc for Normal mode (h l w b e 0 $ x X D C d c u ctrl+r i a I A),
Tab accepts a suggestion, Shift+Tab focuses the results pane (j k J K g G pgup pgdown),
Enter prints the results, Shift+Enter or Alt+Enter prints the query, Ctrl+C quits.`,
		Example: "  jqi data.json\n  curl -s https://api.github.com/repos/itchyny/gojq | jqi\n  jqi -p -q '.items[].name' data.yaml",
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupContext(cmd, o)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, o, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindRootFlags(cmd.Flags(), o)
	bindPersistentFlags(cmd.PersistentFlags(), o)

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.AddCommand(newVersionCmd(), newFieldsCmd(), newConfigCmd(o))
	return cmd
}

// Execute runs the jqi command line.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the jqi command line under ctx.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// setupContext builds the run settings and the logger and attaches both to the command
// context. Logs never go to the terminal the console draws on.
func setupContext(cmd *cobra.Command, o *rootOptions) error {
	run := settings.NewCliParams()
	run.LogFile = o.logFile
	run.NoColor = o.noColor
	if o.debug {
		run.MinLogLevel = -1
	}

	out, err := logger.OpenLogFile(run.LogFile)
	if err != nil {
		return err
	}
	var w io.Writer
	if out != nil {
		w = out
		cobra.OnFinalize(func() { _ = out.Close() })
	}
	lgr := logger.Get(run.MinLogLevel, w)
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = settings.IntoContext(ctx, run)
	ctx = logger.WithLogger(ctx, lgr)
	cmd.SetContext(ctx)
	return nil
}

// loadConfig merges the user config over the defaults and applies flag overrides.
func loadConfig(cmd *cobra.Command, o *rootOptions) (config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(o.configFile))
	if err != nil {
		return cfg, err
	}
	if o.format != "" {
		if _, err := query.ParseFormat(o.format); err != nil {
			return cfg, err
		}
		cfg.Results.Format = o.format
	}
	if o.noColor {
		cfg.Results.Highlight = false
	}
	logger.FromContext(cmd.Context()).V(1).Info("config loaded", "format", cfg.Results.Format, "style", cfg.Results.Style)
	return cfg, nil
}

// readDocument returns the input text from the file argument or piped stdin.
func readDocument(cmd *cobra.Command, args []string) (string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if run, ok := settings.FromContext(cmd.Context()); ok {
		run.Input.Path = path
		run.Input.FromStdin = path == ""
	}
	if path == "" && !stdinIsPiped() {
		return "", errNoInput
	}
	text, err := loader.ReadInput(path, cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return text, nil
}

func runRoot(cmd *cobra.Command, o *rootOptions, args []string) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)

	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}
	text, err := readDocument(cmd, args)
	if err != nil {
		if errors.Is(err, errNoInput) {
			_ = cmd.Help()
		}
		return err
	}
	sess, err := newSession(ctx, text, cfg, o.query)
	if err != nil {
		return err
	}
	lgr.V(1).Info("session ready", "input_format", string(sess.inputFormat), "fields", len(sess.index.AllFields()))

	if o.print {
		return printOnce(cmd.OutOrStdout(), sess, cfg)
	}

	progOpts, cleanup := getProgramOptions()
	defer cleanup()
	model := ui.NewModel(sess.ctrl, ui.Options{
		NoColor:   o.noColor,
		Highlight: cfg.Results.Highlight,
		Style:     cfg.Results.Style,
		Format:    sess.format,
		MaxItems:  cfg.Autocomplete.MaxItems,
	})
	final, err := ui.Run(model, progOpts...)
	if err != nil {
		return err
	}

	ctrl := final.Controller()
	lgr.V(1).Info("session ended", "output", ctrl.OutputMode().String())
	if out := ctrl.OutputText(); out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

// printOnce prints the initial query's result, highlighted when stdout is a terminal.
func printOnce(w io.Writer, sess *session, cfg config.Config) error {
	res := sess.ctrl.Result()
	if !res.OK() {
		return res.Err
	}
	out := res.Text
	if cfg.Results.Highlight && stdoutIsTerminal() {
		out = strings.TrimRight(query.Highlight(out, sess.format, cfg.Results.Style), "\n")
	}
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
