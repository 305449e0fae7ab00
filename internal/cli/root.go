package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/enginecore/internal/app"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// RunFunc executes the host with a validated configuration.
type RunFunc func(ctx context.Context, outW io.Writer, cfg *app.Config) error

// RootOptions holds the flags shared by every command.
type RootOptions struct {
	ConfigPath      string
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Workers         int
	HandlerPolicy   string
	Cancellation    string
	Codec           string
}

// Config validates the options and converts them to an app.Config.
func (o *RootOptions) Config() (*app.Config, error) {
	return app.NewConfig(app.Config{
		ConfigPath:      o.ConfigPath,
		LogFormat:       o.LogFormat,
		LogLevel:        o.LogLevel,
		HealthcheckPort: o.HealthcheckPort,
		Workers:         o.Workers,
		HandlerPolicy:   o.HandlerPolicy,
		Cancellation:    o.Cancellation,
		Codec:           o.Codec,
	})
}

// NewRootCommand creates the enginecore command tree. Running the root
// command without a subcommand is the same as "run".
func NewRootCommand(outW io.Writer, run RunFunc) *cobra.Command {
	opts := &RootOptions{}

	runE := func(cmd *cobra.Command, _ []string) error {
		cfg, err := opts.Config()
		if err != nil {
			return usageError(err)
		}
		slog.Debug("CLI parser finished successfully.", "config", cfg)
		return run(cmd.Context(), outW, cfg)
	}

	cmd := &cobra.Command{
		Use:   "enginecore",
		Short: "enginecore - a host for task and event modules",
		Long: `enginecore loads its compiled-in modules, raises the start event,
executes the jobs declared in the configuration file and optionally relays
socket.io messages to cgrpc event handlers.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}
	cmd.SetOut(outW)
	cmd.SetErr(outW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to an .hcl or .yaml configuration file.")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.IntVar(&opts.HealthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	flags.IntVar(&opts.Workers, "workers", 0, "Number of concurrent job workers. 0 uses the configuration file.")
	flags.StringVar(&opts.HandlerPolicy, "handler-policy", "", "Duplicate handler policy: 'reject', 'overwrite' or 'append'.")
	flags.StringVar(&opts.Cancellation, "cancellation", "", "Cancellation policy: 'advisory' or 'stop'.")
	flags.StringVar(&opts.Codec, "codec", "", "Payload codec: 'msgpack' or 'cbor'.")

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Load modules and run configured jobs (default)",
		Args:  cobra.NoArgs,
		RunE:  runE,
	})
	cmd.AddCommand(newModulesCommand(outW))
	cmd.AddCommand(newVersionCommand(outW))

	return cmd
}

// Execute runs the command tree against args.
func Execute(ctx context.Context, outW io.Writer, args []string, run RunFunc) error {
	cmd := NewRootCommand(outW, run)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
