package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vjeantet/jodaTime"

	"github.com/njchilds90/cplxalg"
	"github.com/njchilds90/cplxalg/geometry"
	"github.com/njchilds90/cplxalg/internal/config"
	"github.com/njchilds90/cplxalg/internal/store"
)

const historyTimeLayout = "YYYY-MM-dd HH:mm:ss"

// app carries what every subcommand needs once the config is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	parser *cplxalg.Parser
	checks store.CheckRepo
}

type rootFlags struct {
	configPath string
	logLevel   string
	format     string
	atoms      string
	noHistory  bool
}

func rootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     app
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Complex-rational algebra for plane geometry",
		Long: `cplxalg manipulates rational expressions over complex variables with
Gaussian integer coefficients. Variables are single letters; by default they
lie on the unit circle, so conj(a) = 1/a.

Examples:
  cplxalg expand "(a+b)(a-b)"
  cplxalg check "a/b" "b'/a'"
  cplxalg collinear "a" "b" "(a+b)/2"`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVarP(&flags.format, "format", "f", "", "Output format (text, latex, json)")
	pf.StringVar(&flags.atoms, "atoms", "", "Kind of parsed variables (plain, real, unit)")
	pf.BoolVar(&flags.noHistory, "no-history", false, "Do not record checks")

	cmd.AddCommand(
		a.expandCmd(),
		a.conjCmd(),
		a.checkCmd(),
		a.collinearCmd(),
		a.concurrentCmd(),
		a.historyCmd(),
		a.serveCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command, flags rootFlags) error {
	bootstrap := newLogger(cmd.ErrOrStderr(), flags.logLevel)

	cfg, err := config.NewLoader(bootstrap).Load(flags.configPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	cfg.Merge(&config.Config{
		Log:    config.LogConfig{Level: flags.logLevel},
		Parser: config.ParserConfig{Atoms: flags.atoms},
		Output: config.OutputConfig{Format: flags.format},
	})
	if flags.noHistory {
		cfg.History.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	kind, err := cfg.AtomKind()
	if err != nil {
		return err
	}
	parser, err := cplxalg.NewParser(kind)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.parser = parser
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	slog.SetDefault(a.logger)
	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// ============================================================
// Algebra commands
// ============================================================

func (a *app) expandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand EXPR",
		Short: "Expand to a polynomial or a single quotient of polynomials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.parse(args[0])
			if err != nil {
				return err
			}
			ex, err := cplxalg.TryExpand(e)
			if err != nil {
				return err
			}
			a.logger.Debug("Expanded", slog.String("input", args[0]), slog.String("result", ex.String()))
			return a.write(cmd.OutOrStdout(), ex)
		},
	}
}

func (a *app) conjCmd() *cobra.Command {
	var expand bool
	cmd := &cobra.Command{
		Use:   "conj EXPR",
		Short: "Complex conjugate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.parse(args[0])
			if err != nil {
				return err
			}
			c, err := cplxalg.Safely(e.Conj)
			if err != nil {
				return err
			}
			if expand {
				if c, err = cplxalg.TryExpand(c); err != nil {
					return err
				}
			}
			return a.write(cmd.OutOrStdout(), c)
		},
	}
	cmd.Flags().BoolVarP(&expand, "expand", "e", false, "Expand the conjugate")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check EXPR [EXPR]",
		Short: "Test whether one expression is zero or two are equal",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			exprs, err := a.parseAll(args)
			if err != nil {
				return err
			}
			diff := exprs[0]
			if len(exprs) == 2 {
				diff = exprs[0].Sub(exprs[1])
			}
			ex, err := cplxalg.TryExpand(diff)
			if err != nil {
				return err
			}
			holds := ex.IsZero()
			input := strings.Join(args, " = ")
			if len(args) == 1 {
				input += " = 0"
			}
			return a.verdict(cmd, "check", input, ex.String(), holds)
		},
	}
}

// ============================================================
// Geometry commands
// ============================================================

func (a *app) collinearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collinear P Q R",
		Short: "Test whether three points lie on one line",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parseAll(args)
			if err != nil {
				return err
			}
			holds, err := geometry.Collinear(p[0], p[1], p[2])
			if err != nil {
				return err
			}
			return a.verdict(cmd, "collinear", strings.Join(args, ", "), "", holds)
		},
	}
}

func (a *app) concurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "concurrent P1 Q1 P2 Q2 P3 Q3",
		Short: "Test whether the lines P1Q1, P2Q2 and P3Q3 meet in one point",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parseAll(args)
			if err != nil {
				return err
			}
			holds, err := geometry.Concurrent(
				geometry.Through(p[0], p[1]),
				geometry.Through(p[2], p[3]),
				geometry.Through(p[4], p[5]),
			)
			if err != nil {
				return err
			}
			input := fmt.Sprintf("(%s, %s), (%s, %s), (%s, %s)", args[0], args[1], args[2], args[3], args[4], args[5])
			return a.verdict(cmd, "concurrent", input, "", holds)
		},
	}
}

// ============================================================
// History and tool server
// ============================================================

func (a *app) historyCmd() *cobra.Command {
	var (
		kind     string
		limit    int
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openHistory()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if clearAll {
				n, err := a.checks.Clear(ctx, db)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "removed %d checks\n", n)
				return nil
			}

			checks, err := a.checks.List(ctx, db, kind, limit)
			if err != nil {
				return err
			}
			for _, c := range checks {
				verdict := "fails"
				if c.Holds {
					verdict = "holds"
				}
				stamp := jodaTime.Format(historyTimeLayout, time.Unix(c.CreatedAt, 0))
				fmt.Fprintf(out, "%s  %-10s %-5s %s\n", stamp, c.Kind, verdict, c.Input)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only show checks of this kind (check, collinear, concurrent)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 = all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all recorded checks")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer JSON tool requests, one per line on stdin/stdout or over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return a.serveHTTP(ctx, addr)
			}
			return a.serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Serve over HTTP on this address (e.g. :8080) instead of stdin/stdout")
	return cmd
}

// handle fills in the configured atom kind and runs one tool call.
func (a *app) handle(req cplxalg.ToolRequest) cplxalg.ToolResponse {
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}
	if _, ok := req.Params["atoms"]; !ok {
		req.Params["atoms"] = a.cfg.Parser.Atoms
	}
	resp := cplxalg.HandleToolCall(req)
	if resp.Error != "" {
		a.logger.Warn("Tool call failed", slog.String("tool", req.Tool), slog.String("error", resp.Error))
	}
	return resp
}

func (a *app) serve(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	enc := json.NewEncoder(out)
	served := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var req cplxalg.ToolRequest
		var resp cplxalg.ToolResponse
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			resp = cplxalg.ToolResponse{Error: fmt.Sprintf("invalid request: %v", err)}
		} else {
			resp = a.handle(req)
		}
		if err := enc.Encode(resp); err != nil {
			return errors.Wrap(err, "write response")
		}
		served++
	}
	a.logger.Debug("Tool server finished", slog.Int("requests", served))
	return scanner.Err()
}

// ============================================================
// Helpers
// ============================================================

func (a *app) parse(s string) (cplxalg.Expr, error) { return a.parser.Parse(s) }

func (a *app) parseAll(args []string) ([]cplxalg.Expr, error) {
	exprs := make([]cplxalg.Expr, len(args))
	for i, s := range args {
		e, err := a.parse(s)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

func (a *app) write(w io.Writer, e cplxalg.Expr) error {
	switch a.cfg.Output.Format {
	case "latex":
		_, err := fmt.Fprintln(w, e.LaTeX())
		return err
	case "json":
		s, err := cplxalg.ToJSON(e)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	}
	_, err := fmt.Fprintln(w, e.String())
	return err
}

// verdict prints the outcome of a predicate and records it in the history.
func (a *app) verdict(cmd *cobra.Command, kind, input, result string, holds bool) error {
	out := cmd.OutOrStdout()
	if a.cfg.Output.Format == "json" {
		b, err := json.Marshal(map[string]interface{}{"kind": kind, "input": input, "result": result, "holds": holds})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	} else {
		fmt.Fprintln(out, holds)
		if !holds && result != "" {
			fmt.Fprintf(out, "difference: %s\n", result)
		}
	}

	if !a.cfg.History.Enabled {
		return nil
	}
	db, err := a.openHistory()
	if err != nil {
		a.logger.Warn("History unavailable", slog.String("error", err.Error()))
		return nil
	}
	defer db.Close()

	rec, err := a.checks.Record(cmd.Context(), db, store.Check{Kind: kind, Input: input, Result: result, Holds: holds})
	if err != nil {
		a.logger.Warn("Failed to record check", slog.String("error", err.Error()))
		return nil
	}
	a.logger.Debug("Recorded check", slog.String("id", rec.ID), slog.String("kind", kind))
	return nil
}

func (a *app) openHistory() (*sql.DB, error) {
	path := a.cfg.History.Path
	if path == "" {
		return nil, errors.New("history.path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "create history directory")
	}
	return store.NewDB(path)
}
