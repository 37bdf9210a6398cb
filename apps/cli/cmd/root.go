package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/hitcurl/packages/core/config"
	"github.com/abdul-hamid-achik/hitcurl/packages/core/logging"
	"github.com/abdul-hamid-achik/hitcurl/packages/http"
	"github.com/abdul-hamid-achik/hitcurl/packages/output"
	"github.com/abdul-hamid-achik/hitcurl/packages/request"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

type rootFlags struct {
	method  string
	data    string
	json    string
	headers []string
	verbose bool
	noColor bool
	config  string
}

// reportedError marks an error already printed by the renderer.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// NewRootCmd builds the hitcurl command.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "hitcurl <url>",
		Short: "Send one HTTP request and print the response.",
		Long: `hitcurl sends a single HTTP request and prints the response.
JSON responses are pretty-printed with object keys sorted at every level.

Examples:
  hitcurl https://httpbin.org/get
  hitcurl -X DELETE https://api.example.com/items/1
  hitcurl -d "a=1&b=2" https://httpbin.org/post
  hitcurl --json '{"name":"hitcurl"}' https://httpbin.org/post`,
		Args:          cobra.ExactArgs(1),
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, args[0], flags)
		},
	}

	cmd.SetVersionTemplate("hitcurl version {{.Version}}\n")

	cmd.Flags().StringVarP(&flags.method, "method", "X", request.DefaultMethod, "HTTP method (POST is forced by --data and --json)")
	cmd.Flags().StringVarP(&flags.data, "data", "d", "", "Raw request body, sent as application/x-www-form-urlencoded")
	cmd.Flags().StringVar(&flags.json, "json", "", "JSON request body, sent as application/json with method POST")
	cmd.Flags().StringArrayVarP(&flags.headers, "header", "H", nil, "Extra request header \"Name: value\" (repeatable)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", getEnvBool("HITCURL_VERBOSE", false), "Log request diagnostics to stderr (env: HITCURL_VERBOSE)")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", getEnvBool("HITCURL_NO_COLOR", false), "Disable colored output (env: HITCURL_NO_COLOR)")
	cmd.Flags().StringVar(&flags.config, "config", getEnvString("HITCURL_CONFIG", ""), "Path to config file (env: HITCURL_CONFIG)")

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(v, bt string) int {
	version = v
	buildTime = bt
	return run(NewRootCmd(), os.Args[1:])
}

func run(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var reported *reportedError
	if errors.As(err, &reported) {
		return exitCode(reported.err)
	}

	// Argument and flag errors from cobra itself
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.Name())
	return ExitUsageError
}

func runRequest(cmd *cobra.Command, rawURL string, flags *rootFlags) error {
	overrides := &config.Config{}
	if flags.verbose {
		overrides.Verbose = config.BoolPtr(true)
	}
	if flags.noColor {
		overrides.NoColor = config.BoolPtr(true)
	}

	fileConfig, cfgErr := config.LoadConfig(flags.config)
	if cfgErr != nil {
		fileConfig = config.DefaultConfig()
	}
	cfg := fileConfig.Merge(overrides)

	renderer := output.NewConsoleRenderer(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrorWriter(cmd.ErrOrStderr()),
		output.WithNoColor(cfg.GetNoColor()),
		output.WithColorJSON(cfg.GetColorJSON()),
		output.WithIndent(cfg.IndentString()),
	)

	fail := func(err error) error {
		renderer.FormatError(err)
		return &reportedError{err: err}
	}

	if cfgErr != nil {
		return fail(cfgErr)
	}

	logger := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:   cfg.LogLevel,
		Verbose: cfg.GetVerbose(),
		NoColor: cfg.GetNoColor(),
		JSON:    cfg.LogJSON(),
	})

	opts := request.Options{
		URL:            rawURL,
		Method:         flags.method,
		Headers:        flags.headers,
		DefaultHeaders: cfg.Headers,
	}
	if cmd.Flags().Changed("data") {
		opts.Data = &flags.data
	}
	if cmd.Flags().Changed("json") {
		opts.JSON = &flags.json
	}

	spec, err := request.Build(opts)
	if err != nil {
		return fail(err)
	}

	if cmd.Flags().Changed("method") && spec.HasBody() && !strings.EqualFold(spec.Method, flags.method) {
		logger.Warn().Str("requested", flags.method).Str("method", spec.Method).Msg("request body forces method")
	}

	renderer.Trace(spec)

	client := http.NewClient(
		http.WithFollowRedirects(cfg.GetFollowRedirects()),
		http.WithMaxRedirects(cfg.MaxRedirects),
		http.WithProxy(cfg.Proxy),
		http.WithLogger(logger),
	)

	resp, err := client.Do(cmd.Context(), spec)
	if err := renderer.Render(resp, err); err != nil {
		logger.Debug().Err(err).Msg("request failed")
		return fail(err)
	}

	return nil
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
