package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"

	"fundraise-backend/cmd"
	"fundraise-backend/internal/api"
	"fundraise-backend/internal/config"
	"fundraise-backend/internal/render"

	"github.com/spf13/cobra"
)

// errReported marks a failure that has already been printed to the user.
var errReported = errors.New("reported")

type app struct {
	envFile string
	verbose bool
	cfg     *config.Config

	in       io.Reader
	out      io.Writer
	progress io.Writer
	logs     io.Writer
	renderer *render.Renderer

	loadConfig func(envFile string) (*config.Config, error)
	connect    func(ctx context.Context, cfg *config.Config, onGeneration func()) (api.Assistant, error)
}

func newApp() *app {
	return &app{
		in:         os.Stdin,
		out:        os.Stdout,
		progress:   os.Stderr,
		logs:       os.Stderr,
		renderer:   render.New(os.Stdout, 80),
		loadConfig: config.Load,
		connect: func(ctx context.Context, cfg *config.Config, onGeneration func()) (api.Assistant, error) {
			assistant, _, err := cmd.NewAssistant(ctx, cfg, onGeneration)
			if err != nil {
				return nil, err
			}
			return assistant, nil
		},
	}
}

// setupLogging keeps the terminal to rendered output only, unless the user
// asks for logs with --verbose or an explicit LOG_LEVEL.
func (a *app) setupLogging() {
	if level, ok := os.LookupEnv("LOG_LEVEL"); a.verbose || (ok && level != "") {
		a.cfg.SetupLoggingTo(a.logs)
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fundraise",
		Short:         "Fundraising assistant for fund managers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if a.verbose {
				log.SetOutput(a.logs)
			} else {
				log.SetOutput(io.Discard)
			}

			cfg, err := a.loadConfig(a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.setupLogging()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env", "", "path to load env from")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "write logs to stderr")

	root.AddCommand(
		trackCmd(a),
		sentimentCmd(a),
		pitchCmd(a),
		carryCmd(a),
		vintageCmd(a),
		simulateCmd(a),
	)

	return root
}

func main() {
	a := newApp()
	if err := newRootCmd(a).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			a.renderer.Error(err)
		}
		os.Exit(1)
	}
}
