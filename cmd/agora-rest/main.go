package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lorenzquack/agora-rest/internal/app"
	"github.com/lorenzquack/agora-rest/internal/config"
	"github.com/lorenzquack/agora-rest/internal/logger"
	"github.com/lorenzquack/agora-rest/pkg/requests"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "agora-rest: %v\n", err)
		os.Exit(1)
	}
}

type session struct {
	cfg    *config.Config
	runner *app.Runner
}

func setup() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	logger.DebugObj("agora-rest starting", "config", cfg)

	runner, err := app.NewRunner(cfg, nil, log)
	if err != nil {
		logger.ErrorObj("failed to initialize runner", "error", err)
		return nil, err
	}
	return &session{cfg: cfg, runner: runner}, nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "agora-rest",
		Short:         "Issue GET and POST calls against the agora REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGetCmd(out), newPostCmd(out), newBatchCmd(out))
	return root
}

func newGetCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "GET a path relative to BASE_URL and print the payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer logger.Close()
			return runSingle(out, rt.runner, requests.Definition{ID: "get", Method: requests.MethodGet, Path: args[0]})
		},
	}
}

func newPostCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "post <path> [key=value ...]",
		Short: "POST a body built from key=value pairs and print the payload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseBody(args[1:])
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer logger.Close()
			return runSingle(out, rt.runner, requests.Definition{ID: "post", Method: requests.MethodPost, Path: args[0], Body: body})
		},
	}
}

func newBatchCmd(out io.Writer) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch [id ...]",
		Short: "Run requests from the requests file concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer logger.Close()

			if file == "" {
				file = rt.cfg.RequestsFile
			}
			cat, err := requests.Load(file)
			if err != nil {
				logger.ErrorObj("failed to load requests file", "requests_file", file)
				return fmt.Errorf("load requests: %w", err)
			}
			logger.InfoObj("requests file loaded", "requests_meta", map[string]any{
				"file":  file,
				"count": len(cat.All()),
			})
			defs, err := cat.Select(args)
			if err != nil {
				return err
			}

			results, runErr := rt.runner.Run(defs)
			for _, res := range results {
				fmt.Fprintf(out, "%s\t%s %s\t%d\t%s\n",
					res.Request.ID, res.Request.Method, res.Request.Path,
					res.Outcome.StatusCode, strings.TrimSpace(string(res.Outcome.Payload)))
			}
			return runErr
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "requests file (defaults to REQUESTS_FILE)")
	return cmd
}

func runSingle(out io.Writer, runner *app.Runner, d requests.Definition) error {
	res, err := runner.Do(d)
	if len(res.Outcome.Payload) > 0 {
		fmt.Fprintln(out, strings.TrimSpace(string(res.Outcome.Payload)))
	}
	return err
}

// parseBody turns key=value arguments into a POST body.
func parseBody(args []string) (map[string]any, error) {
	body := make(map[string]any, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid body field %q (expected key=value)", arg)
		}
		body[k] = v
	}
	return body, nil
}
