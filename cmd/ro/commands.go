package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prajwalch/ro/internal/associate"
	"github.com/prajwalch/ro/internal/config"
	"github.com/prajwalch/ro/internal/discovery"
	"github.com/prajwalch/ro/internal/live"
	"github.com/prajwalch/ro/internal/logging"
	"github.com/prajwalch/ro/internal/router"
	"github.com/prajwalch/ro/internal/ui"
	"github.com/prajwalch/ro/internal/version"
)

// options holds the command line flags
type options struct {
	configPath string
	router     string
	user       string
	password   string
	interval   time.Duration

	scan    bool
	reboot  bool
	reset   bool
	connect string
	yes     bool

	maxAttempts int
	retryDelay  time.Duration
	timeout     time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ro [--scan | --reboot | --reset | --connect SSID [PWD]]",
		Short: "Live status client for goform Wi-Fi routers",
		Long: `A terminal client for consumer Wi-Fi routers with a goform web interface.

Without a mode flag, ro shows the router's uplink SSID, its signal and the
current throughput, redrawn in place every second. Press Ctrl-C to quit.

The router is found at the default gateway unless --router is given, and
ro logs in with admin/admin unless other credentials are configured.`,
		Example: `  # Live status
  ro

  # Live list of nearby networks
  ro --scan

  # Join a network as a repeater (prompts for the password)
  ro --connect HomeNet

  # Router on a non-standard address
  ro --router 192.168.0.1 --password secret`,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.InitializeFromEnv(); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	// Disable automatic completion command generation
	cmd.CompletionOptions.DisableDefaultCmd = true

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/ro/config.yaml)")
	pf.StringVar(&opts.router, "router", "", "Router address, host or host:port (default: the default gateway)")
	pf.StringVar(&opts.user, "user", "", "Web interface user (default: admin)")
	pf.StringVar(&opts.password, "password", "", "Web interface password (default: admin)")

	f := cmd.Flags()
	f.DurationVar(&opts.interval, "interval", 0, "Pause between live frames (default: 1s for status, 8s for --scan)")
	f.BoolVar(&opts.scan, "scan", false, "Show a live list of nearby networks")
	f.BoolVar(&opts.reboot, "reboot", false, "Reboot the router")
	f.BoolVar(&opts.reset, "reset", false, "Reset the router to factory defaults")
	f.StringVar(&opts.connect, "connect", "", "Join `SSID` as a repeater; its password may follow as an argument")
	f.BoolVarP(&opts.yes, "yes", "y", false, "Do not ask for confirmation before --reset")
	f.IntVar(&opts.maxAttempts, "max-attempts", 0, "Scans before --connect gives up (default: 30)")
	f.DurationVar(&opts.retryDelay, "retry-delay", 0, "Pause between --connect scans (default: 2s)")
	f.DurationVar(&opts.timeout, "timeout", 0, "Overall limit for --connect (default: none)")
	cmd.MarkFlagsMutuallyExclusive("scan", "reboot", "reset", "connect")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if len(args) > 0 && opts.connect == "" {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	var key string
	if opts.connect != "" {
		if key, err = associationKey(cmd, opts.connect, args); err != nil {
			return err
		}
		if errs := router.ValidateAssociationTarget(opts.connect, key); len(errs) > 0 {
			return errors.Join(errs...)
		}
	}

	target := discovery.NewResolver().Resolve(cfg.Router.Address)
	logging.Debug("Resolved router", zap.Stringer("router", target))

	if opts.reset && !opts.yes {
		if !ui.ResetConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), target.Address) {
			return nil
		}
	}

	client, err := openSession(cfg, target)
	if err != nil {
		return err
	}

	switch {
	case opts.scan:
		return runScan(cmd.OutOrStdout(), client, cfg)
	case opts.reboot:
		return runReboot(cmd.OutOrStdout(), client, target)
	case opts.reset:
		return runReset(cmd.OutOrStdout(), client, target)
	case opts.connect != "":
		return runConnect(cmd.OutOrStdout(), client, cfg, associate.Target{SSID: opts.connect, Key: key})
	default:
		return runStatus(cmd.OutOrStdout(), client, cfg)
	}
}

// loadConfig merges the config file, environment and flags, in increasing
// order of precedence.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.LookupEnv)

	flags := cmd.Flags()
	if flags.Changed("router") {
		cfg.Router.Address = opts.router
	}
	if flags.Changed("user") {
		cfg.Router.Username = opts.user
	}
	if flags.Changed("password") {
		cfg.Router.Password = opts.password
	}
	if flags.Changed("interval") {
		cfg.Display.StatusInterval = opts.interval
		cfg.Display.ScanInterval = opts.interval
	}
	if flags.Changed("max-attempts") {
		cfg.Association.MaxAttempts = opts.maxAttempts
	}
	if flags.Changed("retry-delay") {
		cfg.Association.RetryDelay = opts.retryDelay
	}
	if flags.Changed("timeout") {
		cfg.Association.Timeout = opts.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// associationKey returns the password given on the command line, or prompts for it
func associationKey(cmd *cobra.Command, ssid string, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	prompt := fmt.Sprintf("Password for %s (empty for an open network): ", ssid)
	return ui.ReadPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
}

func openSession(cfg *config.Config, target *discovery.Router) (*router.Client, error) {
	client := router.NewClient(target.Address)
	client.SetTimeout(cfg.Router.Timeout)

	if err := client.Login(cfg.Router.Username, cfg.Router.Password); err != nil {
		if router.IsTransportError(err) && target.Source != discovery.SourceConfigured {
			return nil, fmt.Errorf("no router answered at %s, set its address with --router: %w", target, err)
		}
		return nil, fmt.Errorf("failed to login to %s: %w", target, err)
	}
	return client, nil
}

// runLive drives a live display until the first error, which is returned
// after the cursor is moved below the last frame.
func runLive(out io.Writer, mode string, interval time.Duration, fetch live.FetchFunc) error {
	loop := &live.Loop{
		Screen:   live.NewScreen(out),
		Interval: interval,
		Mode:     mode,
	}

	var fatal error
	loop.Run(fetch, func(err error) {
		fatal = err
		_, _ = fmt.Fprintln(out)
	})
	return fatal
}

func runStatus(out io.Writer, client *router.Client, cfg *config.Config) error {
	fallback, err := live.ParseFallbackPolicy(cfg.Display.SSIDFallback)
	if err != nil {
		return err
	}

	view := &live.StatusView{
		Gateway:     client,
		SignalEvery: cfg.Display.SignalEvery,
		Fallback:    fallback,
	}
	return runLive(out, "status", cfg.Display.StatusInterval, view.Fetch)
}

func runScan(out io.Writer, client *router.Client, cfg *config.Config) error {
	view := &live.ListView{Gateway: client}
	return runLive(out, "scan", cfg.Display.ScanInterval, view.Fetch)
}

func runReboot(out io.Writer, client *router.Client, target *discovery.Router) error {
	if err := client.Reboot(); err != nil {
		return fmt.Errorf("failed to reboot router: %w", err)
	}

	ui.NewPrinter(out).PrintSuccess("Router is rebooting",
		ui.Detail{Key: "Router", Value: target.String()},
		ui.Detail{Key: "Back in", Value: "about a minute"},
	)
	return nil
}

func runReset(out io.Writer, client *router.Client, target *discovery.Router) error {
	if err := client.ResetToDefaults(); err != nil {
		return fmt.Errorf("failed to reset router: %w", err)
	}

	ui.NewPrinter(out).PrintSuccess("Router restored to factory defaults",
		ui.Detail{Key: "Router", Value: target.String()},
		ui.Detail{Key: "Address", Value: router.DefaultAddress},
		ui.Detail{Key: "Login", Value: router.DefaultUsername + "/" + router.DefaultPassword},
	)
	return nil
}

func runConnect(out io.Writer, client *router.Client, cfg *config.Config, target associate.Target) error {
	progress := ui.NewAssociationProgress(target.SSID, cfg.Association.MaxAttempts)
	screen := live.NewScreen(out)
	draw := func(line string) {
		if err := screen.Draw(live.Frame{line}); err != nil {
			logging.Debug("Failed to draw association progress", zap.Error(err))
		}
	}

	retrier := &associate.Retrier{
		Gateway: client,
		Policy: associate.Policy{
			MaxAttempts:          cfg.Association.MaxAttempts,
			Delay:                cfg.Association.RetryDelay,
			Timeout:              cfg.Association.Timeout,
			SecondaryKeyFallback: cfg.Association.SecondaryKeyFallback,
		},
		OnAttempt: func(attempt int, entries []router.ScanEntry) {
			draw(progress.Line(attempt, len(entries)))
		},
	}

	printer := ui.NewPrinter(out)
	result, err := retrier.Run(target)
	if err != nil {
		printer.PrintError(connectFailureTitle(target.SSID, retrier.State(), err), err, router.GetTroubleshootingHint(err))
		return &reportedError{err: err}
	}
	draw(progress.FoundLine(result.Attempts))

	details := []ui.Detail{
		{Key: "Network", Value: ui.Printable(result.Entry.SSID)},
		{Key: "BSSID", Value: ui.Printable(result.Entry.BSSID)},
		{Key: "Channel", Value: ui.Printable(result.Entry.Channel)},
		{Key: "Security", Value: ui.Printable(result.Entry.Security)},
		{Key: "Scans", Value: fmt.Sprintf("%d", result.Attempts)},
	}

	// The router drops the web session after an association request
	if err := client.Login(cfg.Router.Username, cfg.Router.Password); err != nil {
		logging.Warn("Login after association failed", zap.Error(err))
		printer.PrintWarning("Association submitted, but logging in again failed",
			append(details, ui.Detail{Key: "Error", Value: router.GetShortErrorMessage(err)})...)
		return nil
	}

	printer.PrintSuccess("Association submitted", details...)
	return nil
}

// connectFailureTitle names the step at which joining ssid failed
func connectFailureTitle(ssid string, state associate.State, err error) string {
	ssid = ui.Printable(ssid)
	switch {
	case router.IsNotFoundError(err):
		return ssid + " did not appear in any scan"
	case router.IsAuthError(err):
		return "Router session ended while searching for " + ssid
	case router.IsTransportError(err):
		return "Lost contact with the router while joining " + ssid
	case state == associate.Found && router.IsProtocolError(err):
		return "Router rejected the request to join " + ssid
	default:
		return "Could not join " + ssid
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			path, err := configPath(opts)
			if err != nil {
				return err
			}
			if err := config.InitAt(path, force); err != nil {
				return err
			}

			ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration written",
				ui.Detail{Key: "Path", Value: path},
			)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after the file, environment (RO_ROUTER,
RO_USER, RO_PASSWORD) and flags have been applied. The password is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.Router.Password != "" {
				cfg.Router.Password = "********"
			}

			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd, showCmd)
	return cmd
}

func configPath(opts *options) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return config.GetConfigPath()
}
