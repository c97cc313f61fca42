package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/drivecli/internal/adapters/cli"
	logAdapter "github.com/bft-labs/drivecli/internal/adapters/log"
	"github.com/bft-labs/drivecli/internal/adapters/tcp"
	"github.com/bft-labs/drivecli/internal/app"
	"github.com/bft-labs/drivecli/internal/cliconfig"
	"github.com/bft-labs/drivecli/internal/domain"
)

const longHelp = `
Interactive client for the drive server.

Each line you type is sent to the server as one request; the server's
reply is printed exactly as received. The first word is the command and
everything after the first space is passed through untouched.

An empty line prints "400 Bad Request" without contacting the server.
The session ends when input ends, on Ctrl-C, or when the server goes away.
`

var exampleUsage = strings.TrimSpace(`
  drivecli localhost 5555
  drivecli drive-server 5555 --log-level debug
  printf 'add notes.txt hello\nget notes.txt\n' | drivecli 127.0.0.1 5555
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// errSessionEnded marks errors that end a session in the ordinary way
// (peer closed, peer stopped reading, unreadable reply). They are not
// reported to the terminal.
var errSessionEnded = errors.New("session ended")

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "drivecli <host> <port>",
		Short:         "Interactive client for the drive server",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ApplyArgs(args); err != nil {
				return err
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			haveFile := cfgFile != "" && cliconfig.FileExists(cfgFile)
			if haveFile {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// DRIVECLI_* override file config but are overridden by flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log = cliconfig.NewLogger(os.Stderr, cfg.LogFormat)
			if err := cliconfig.SetLogLevel(cfg.LogLevel); err != nil {
				return err
			}
			log.Debug().Interface("config", cfg).Msg("configuration")

			logger := logAdapter.NewZerologAdapter(log)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.WatchConfig && haveFile {
				w := cliconfig.NewWatcher(cfgFile, cliconfig.DefaultDebounceDelay, logger, func(fc cliconfig.FileConfig) {
					// flag and env values still win over the file
					if changed["log-level"] || os.Getenv("DRIVECLI_LOG_LEVEL") != "" || fc.LogLevel == "" {
						return
					}
					if err := cliconfig.SetLogLevel(strings.ToLower(fc.LogLevel)); err != nil {
						log.Warn().Err(err).Msg("ignoring log_level from reloaded config")
					}
				})
				if err := w.Start(ctx); err != nil {
					log.Warn().Err(err).Str("path", cfgFile).Msg("config watcher disabled")
				} else {
					defer w.Stop()
				}
			}

			console := cli.NewConsole(os.Stdin, os.Stdout)
			dialer := &tcp.Dialer{
				Timeout:       cfg.DialTimeout,
				ReadChunkSize: cfg.ReadChunkSize,
				Logger:        logger,
			}
			session := app.NewSession(app.SessionConfig{Host: cfg.Host, Port: cfg.Port},
				dialer, console, console, logger, nil)

			// Run blocks on stdin as well as the socket; a signal closes the
			// connection and returns without waiting for the next input line.
			errCh := make(chan error, 1)
			go func() { errCh <- session.Run(ctx) }()

			select {
			case err := <-errCh:
				return classify(err)
			case <-ctx.Done():
				log.Debug().Msg("received signal, closing session")
				return session.Close()
			}
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.drivecli/config.toml)")
	root.Flags().DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "timeout for connecting to the server")
	root.Flags().IntVar(&cfg.ReadChunkSize, "read-chunk", cfg.ReadChunkSize, "maximum bytes requested per socket read")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error, disabled)")
	root.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format on stderr (console or json)")
	root.Flags().BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "reload log_level when the config file changes")

	if err := root.Execute(); err != nil {
		if errors.Is(err, errSessionEnded) {
			log.Debug().Err(err).Msg("drivecli")
		} else {
			log.Error().Err(err).Msg("drivecli")
		}
		os.Exit(1)
	}
}

// classify marks the transport failures that end a session without a
// user-facing report; anything else is returned unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConnectionClosed),
		errors.Is(err, domain.ErrTransportWrite),
		errors.Is(err, domain.ErrDecoding),
		errors.Is(err, domain.ErrInvalidHeader):
		return fmt.Errorf("%w: %w", errSessionEnded, err)
	default:
		return err
	}
}
