package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sorana/internal/counter"
	"sorana/internal/logging"
	"sorana/internal/signup"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
)

func getVersion() string {
	if version != "" {
		return version
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok && buildInfo.Main.Version != "" {
		return buildInfo.Main.Version
	}
	return "(devel)"
}

func getCommit() string {
	if commit != "" {
		return commit
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			if setting.Key == "vcs.revision" {
				if len(setting.Value) > 7 {
					return setting.Value[:7]
				}
				return setting.Value
			}
		}
	}
	return "unknown"
}

// app carries what every command shares once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	config *Config
	logs   *logging.Manager
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.config = cfg
	a.logs = logging.NewManager()
	a.logs.Setup(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

func (a *app) logger() *slog.Logger {
	if a.logs == nil {
		return slog.Default()
	}
	return a.logs.Logger()
}

func (a *app) close() {
	if a.logs != nil {
		_ = a.logs.Close()
	}
}

// NewRootCmd creates the root command. Without a subcommand it runs the
// interactive page.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "sorana",
		Short: "The Sorana landing page in your terminal",
		Long: `Sorana renders the decentralized-web landing page as a terminal UI:
a scroll-linked roadmap, an animated globe, a live SRT counter and a
crossfading slideshow.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.soranarc)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newFramesCmd(a))
	cmd.AddCommand(newCountCmd(a))
	cmd.AddCommand(newSignupCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func (a *app) newSynchronizer() (*counter.Synchronizer, error) {
	fetcher := counter.NewHTTPFetcher(a.config.APIBaseURL, a.config.CounterTimeout)
	return counter.New(fetcher,
		counter.WithInterval(a.config.CounterInterval),
		counter.WithLogger(a.logger()),
	)
}

// runTUI runs the interactive page with its own session log.
func (a *app) runTUI(ctx context.Context) error {
	return a.session(func(logger *slog.Logger) error {
		return a.runProgram(ctx, logger)
	})
}

// session logs to a fresh file for the duration of fn and closes it however
// fn returns.
func (a *app) session(fn func(*slog.Logger) error) error {
	path, err := a.logs.SetupFile(a.config.LogsDir, "sorana", a.config.LogLevel, time.Now())
	if err != nil {
		a.logs.Setup(io.Discard, a.config.LogLevel)
	}
	defer a.close()

	logger := a.logger()
	logger.Info("session started", "version", getVersion(), "log", path)
	if err := fn(logger); err != nil {
		logger.Error("session failed", "error", err)
		return err
	}
	logger.Info("session ended")
	return nil
}

// runProgram owns the process-wide counter for the lifetime of the program;
// every view reads it through one subscription.
func (a *app) runProgram(ctx context.Context, logger *slog.Logger) error {
	sync, err := a.newSynchronizer()
	if err != nil {
		return fmt.Errorf("creating counter: %w", err)
	}
	stopSync, err := sync.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting counter: %w", err)
	}
	defer stopSync()
	feed, unsubscribe := sync.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(
		initialModel(a.config, logger, feed),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if fm, ok := final.(model); ok {
		fm.deactivate()
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func newFramesCmd(a *app) *cobra.Command {
	var (
		scene string
		opts  frameOptions
	)
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Render animation frames to PNG",
		Long: `Render a sequence of frames of the globe, the icons or the slideshow
to numbered PNG files. Frame i is drawn at elapsed time i × interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := parseScene(scene)
			if err != nil {
				return err
			}
			opts.Scene = s
			if opts.Dir == "" {
				if opts.Dir, err = a.config.GetExportPath(string(s)); err != nil {
					return err
				}
			}
			paths, err := exportFrames(cmd.Context(), a.config, opts, a.logger())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", len(paths), opts.Dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&scene, "scene", "s", string(SceneGlobe), "scene to render: globe, slideshow or icons")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 30, "number of frames")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 100*time.Millisecond, "elapsed time between frames")
	cmd.Flags().IntVar(&opts.Width, "width", 512, "frame width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 512, "frame height in pixels")
	cmd.Flags().StringVarP(&opts.Dir, "out", "o", "", "output directory (default <exportDirectory>/<scene>)")
	cmd.Flags().BoolVar(&opts.Caption, "caption", true, "stamp the scene and time on each frame")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the total SRT earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sync, err := a.newSynchronizer()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !watch {
				st := sync.Sync(cmd.Context())
				if !st.LastSyncOK {
					return errors.New("counter unavailable")
				}
				fmt.Fprintf(out, "%s SRT\n", humanize.Comma(st.Value))
				return nil
			}
			return watchCount(cmd.Context(), sync, out)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling and print every change")
	return cmd
}

// watchCount prints each distinct synced total until ctx ends.
func watchCount(ctx context.Context, sync *counter.Synchronizer, out io.Writer) error {
	feed, unsubscribe := sync.Subscribe()
	defer unsubscribe()
	stop, err := sync.Start(ctx)
	if err != nil {
		return err
	}
	defer stop()

	var last *counter.State
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-feed:
			if !ok {
				return nil
			}
			if !st.LastSyncOK || (last != nil && *last == st) {
				continue
			}
			fmt.Fprintf(out, "%s SRT\n", humanize.Comma(st.Value))
			last = &st
		}
	}
}

func newSignupCmd(a *app) *cobra.Command {
	var form signup.Form
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Join the Sorana alpha",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := signup.NewClient(a.config.APIBaseURL, a.config.CounterTimeout, a.logger())
			if err := client.Submit(cmd.Context(), form); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "you're on the list. welcome to the revolution.")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&form.Name, "name", "", "your name")
	cmd.Flags().StringVar(&form.GithubLink, "github", "", "GitHub profile URL")
	cmd.Flags().StringVar(&form.LinkedinLink, "linkedin", "", "LinkedIn profile URL")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sorana version %s\n", getVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", getCommit())
		},
	}
}
