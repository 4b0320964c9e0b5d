package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/wordtree/internal/app"
	"github.com/heartmarshall/wordtree/internal/config"
	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/internal/render"
	"github.com/heartmarshall/wordtree/internal/service/lookup"
	"github.com/heartmarshall/wordtree/pkg/ctxutil"
	"github.com/heartmarshall/wordtree/ui/tui"
)

// errOperationFailed marks a command whose backend call failed after the
// message was already printed.
var errOperationFailed = errors.New("operation failed")

type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:           "wordtree",
		Short:         "Browse words and their parent/child relations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML); defaults to $CONFIG_PATH or ./config.yaml")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	cmd.AddCommand(
		queryCmd(&g),
		mutateCmd(&g, "add", "Add a word and its meaning"),
		mutateCmd(&g, "update", "Replace the meaning of an existing word"),
		speakCmd(&g),
		tuiCmd(&g),
		serveCmd(&g),
		versionCmd(),
	)
	return cmd
}

func loadConfig(g *globalFlags) (*config.Config, error) {
	load := config.Load
	if g.configPath != "" {
		load = func() (*config.Config, error) { return config.LoadFrom(g.configPath) }
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	return cfg, nil
}

// newCLIApp wires an App logging to stderr, for the one-shot commands.
func newCLIApp(g *globalFlags) (*app.App, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.NewLogger(cfg.Log)), nil
}

func queryCmd(g *globalFlags) *cobra.Command {
	var (
		output string
		expand bool
	)
	cmd := &cobra.Command{
		Use:   "query <word>",
		Short: "Look up a word and print its relation tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case "tree", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q (want tree, json or yaml)", output)
			}
			a, err := newCLIApp(g)
			if err != nil {
				return err
			}
			ctx := ctxutil.WithFrontend(cmd.Context(), "cli")
			res, err := a.Lookup.Lookup(ctx, lookup.LookupInput{Word: args[0]})
			if err != nil {
				return promptError(err)
			}
			if err := printQuery(cmd.OutOrStdout(), a, res, output, expand); err != nil {
				return err
			}
			return outcomeError(res)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "tree", "Output format: tree, json or yaml")
	cmd.Flags().BoolVar(&expand, "expand", false, "Print collapsed subtrees too (tree output)")
	return cmd
}

// queryOutput is the json/yaml shape of a lookup.
type queryOutput struct {
	Outcome string           `json:"outcome"           yaml:"outcome"`
	Message string           `json:"message,omitempty" yaml:"message,omitempty"`
	Word    *domain.WordNode `json:"word,omitempty"    yaml:"word,omitempty"`
}

func printQuery(w io.Writer, a *app.App, res lookup.Result, output string, expand bool) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(queryOutput{Outcome: string(res.Outcome), Message: res.Message, Word: res.Node})
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(queryOutput{Outcome: string(res.Outcome), Message: res.Message, Word: res.Node}); err != nil {
			return err
		}
		return enc.Close()
	}
	return render.WriteText(w, a.Lookup.Region().Snapshot(), render.TextOptions{
		All:    expand,
		Indent: strings.Repeat(" ", a.Config.TUI.Indent),
	})
}

func mutateCmd(g *globalFlags, op, short string) *cobra.Command {
	return &cobra.Command{
		Use:   op + " <word> <meaning...>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newCLIApp(g)
			if err != nil {
				return err
			}
			input := lookup.WordInput{Word: args[0], Meaning: strings.Join(args[1:], " ")}
			call := a.Lookup.Add
			if op == "update" {
				call = a.Lookup.Update
			}
			res, err := call(ctxutil.WithFrontend(cmd.Context(), "cli"), input)
			if err != nil {
				return promptError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return outcomeError(res)
		},
	}
}

func speakCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "speak <text...>",
		Short: "Synthesize text and hand the clip to the configured player",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newCLIApp(g)
			if err != nil {
				return err
			}
			path, err := a.Lookup.Speak(ctxutil.WithFrontend(cmd.Context(), "cli"), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}

func tuiCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal front-end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			logger, closer, err := app.NewFileLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer closer.Close()

			logger.Info("starting terminal front-end", slog.String("version", app.BuildVersion()))
			a := app.New(cfg, logger)
			return tui.Run(cmd.Context(), a.Lookup, logger, tui.Options{
				Indent:    cfg.TUI.Indent,
				Mouse:     cfg.TUI.Mouse,
				AltScreen: cfg.TUI.AltScreen,
			})
		},
	}
}

func serveCmd(g *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web front-end, probes and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			if addr != "" {
				if err := applyAddr(&cfg.Server, addr); err != nil {
					return err
				}
			}
			return app.Run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address host:port, overrides server.host and server.port")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wordtree %s\n", app.BuildVersion())
		},
	}
}

// applyAddr splits a host:port flag into the server config.
func applyAddr(cfg *config.ServerConfig, addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid --addr %q: port must be in 1..65535", addr)
	}
	cfg.Host, cfg.Port = host, p
	return nil
}

// promptError turns a validation failure into its user-facing prompt.
func promptError(err error) error {
	if p := domain.UserPrompt(err); p != "" {
		return errors.New(p)
	}
	return err
}

// outcomeError makes failed operations exit non-zero. Not-found is a
// normal answer.
func outcomeError(res lookup.Result) error {
	switch res.Outcome {
	case lookup.OutcomeFailed, lookup.OutcomeMalformed:
		return fmt.Errorf("%w: %s", errOperationFailed, res.Message)
	}
	return nil
}
