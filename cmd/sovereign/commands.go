package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sovereign/config"
	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/server"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		caller   map[string]string
		reqFlags map[string]string
		jsonOut  bool
		prefer   string
	)

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Answer a single query",
		Example: `  sovereign query "How should we structure the data pipeline?"
  sovereign query --caller professional_level=executive --require max_cost=0.02 "Plan our roadmap"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			reqs, err := parseRequirements(reqFlags)
			if err != nil {
				return err
			}
			callerContext := make(map[string]any, len(caller)+1)
			for k, v := range caller {
				callerContext[k] = v
			}
			if prefer != "" {
				callerContext[core.ContextPersonalityPreferences] = map[string]any{"personality": prefer}
			}

			s, closeFn, err := a.open()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeFn()) }()

			resp := s.ProcessAdvancedQuery(cmd.Context(), strings.Join(args, " "), callerContext, reqs)
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringToStringVar(&caller, "caller", nil, "Caller context entries (key=value)")
	cmd.Flags().StringToStringVar(&reqFlags, "require", nil, "Performance requirements (key=number)")
	cmd.Flags().StringVar(&prefer, "personality", "", "Ask for a specific personality")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full response as JSON")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Answer one query per line concurrently and print JSON lines",
		Long: `Reads queries from a file (or stdin with "-"), one per line, and prints one
JSON response per line in input order. Blank lines are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			queries, err := readQueries(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			s, closeFn, err := a.open()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeFn()) }()

			results := make([]*core.AdvancedResponse, len(queries))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(1, concurrency))
			for i, q := range queries {
				g.Go(func() error {
					results[i] = s.ProcessAdvancedQuery(ctx, q, nil, nil)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if a.logger != nil {
				a.logger.Info("batch complete", zap.Int("queries", len(queries)), zap.Int("concurrency", concurrency))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, r := range results {
				if err := enc.Encode(r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "n", 4, "Maximum queries in flight")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the orchestrator status as JSON",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, closeFn, err := a.open()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeFn()) }()
			return writeJSON(cmd.OutOrStdout(), s.Status())
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print a readable capability summary",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, closeFn, err := a.open()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeFn()) }()
			_, err = fmt.Fprint(cmd.OutOrStdout(), s.Summary())
			return err
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the orchestrator as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, closeFn, err := a.open()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeFn()) }()
			return server.ServeStdio(s)
		},
	}
}

func newInitConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default configuration unless the file exists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			} else if a.configPath != "" {
				path = a.configPath
			}
			if err := config.InitConfig(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "config: %s\n", path)
			return err
		},
	}
}

func parseRequirements(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("requirement %s: %w", k, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("requirement %s: %q is not a finite number", k, v)
		}
		out[k] = f
	}
	return out, nil
}

func readQueries(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open queries: %w", err)
		}
		defer f.Close()
		r = f
	}

	var queries []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if q := strings.TrimSpace(sc.Text()); q != "" {
			queries = append(queries, q)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return queries, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResponse(w io.Writer, resp *core.AdvancedResponse) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n-- %s via %s (confidence %.2f)\n",
		resp.ConsciousnessSignature,
		resp.Content,
		resp.PersonalityUsed,
		resp.ModelInfo.ModelName,
		resp.ConfidenceMetrics.OverallConfidence,
	)
	if err == nil && resp.IsFallback() {
		_, err = fmt.Fprintf(w, "fallback: %s\n", resp.ProcessingMetadata.FallbackReason)
	}
	return err
}
