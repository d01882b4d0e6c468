package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/EdgeApp/edge-gift-cards/internal/generator"
	"github.com/EdgeApp/edge-gift-cards/internal/layout"
	"github.com/EdgeApp/edge-gift-cards/internal/network"
	"github.com/EdgeApp/edge-gift-cards/pkg/appcfg"
	"github.com/EdgeApp/edge-gift-cards/pkg/i18n"
	"github.com/EdgeApp/edge-gift-cards/pkg/logx"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// ExitCode maps a batch error to the process status.
func ExitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, generator.ErrUnknownNetwork), errors.As(err, &ue):
		return ExitUsage
	default:
		return ExitFailure
	}
}

type Runner struct {
	configPath   string
	output       string
	printToCard  bool
	sheets       int
	logLevel     string
	discriminant string
}

func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the command line and returns the exit status.
func (r *Runner) Run(args []string, stdout, stderr io.Writer) int {
	cmd := r.Command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()

	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, "Error:", ue.err)
		fmt.Fprintln(stderr, cmd.UsageString())
	}
	return ExitCode(err)
}

func (r *Runner) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "giftcards <network>",
		Short: "Generate printable paper-wallet cards and their key manifest",
		Long: "Generates one sheet of key pairs for the given network, lays them out as QR codes on a\n" +
			"PDF (label sheet or duplex gift cards) and writes a JSON manifest next to it.\n\n" +
			"Networks: " + strings.Join(network.Names(), ", "),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          r.generate,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	f := cmd.Flags()
	f.StringVarP(&r.configPath, "config", "c", "config.json", "config file (.json or .yaml)")
	f.StringVarP(&r.output, "output", "o", "", "output directory (overrides cardsFullpath)")
	f.BoolVar(&r.printToCard, "print-to-card", true, "gift-card sheet instead of a label sheet")
	f.IntVar(&r.sheets, "sheets", 1, "number of sheets to generate")
	f.StringVar(&r.logLevel, "log-level", "", "debug|info|warn|error")
	f.StringVar(&r.discriminant, "discriminator", "", "counter|timestamp")
	return cmd
}

func (r *Runner) generate(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()
	red := color.New(color.FgRed)

	cfg, err := appcfg.Load(r.configPath)
	if err == nil {
		r.applyFlags(cmd, cfg)
		err = cfg.Validate()
	}
	if err != nil {
		// no config, no language: fall back to English
		red.Fprintf(stderr, i18n.Get("en").ConfigNotLoaded+"\n", err)
		return err
	}
	msgs := i18n.Get(cfg.Language)

	params, err := network.Lookup(args[0])
	if err != nil {
		red.Fprintf(stderr, msgs.InvalidNetwork+"\n", args[0])
		fmt.Fprintf(stderr, msgs.SupportedNetworks+"\n", strings.Join(network.Names(), ", "))
		return err
	}

	if err := logx.Init(logx.Config{
		Level:                cfg.LogLevel,
		FilePath:             cfg.LogFile,
		HideSecretsInConsole: cfg.HideSecretsInConsole,
	}); err != nil {
		return fmt.Errorf("log init: %w", err)
	}
	defer logx.Close()

	logx.S().Infow("giftcards started",
		"network", params.Name,
		"config", r.configPath,
		"output", cfg.CardsFullpath,
		"print_to_card", cfg.PrintToCard,
	)

	frontOffset, backOffset := layout.Offset(cfg.FrontOffset), layout.Offset(cfg.BackOffset)
	if strategy, err := layout.New(cfg.PrintToCard, frontOffset, backOffset, cfg.MirrorBack); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), msgs.Generating+"\n",
			cfg.Sheets*strategy.Spec().PerSheet(), params.Name, strategy.Name())
	}

	ctx, stop := withInterrupt(cmd.Context())
	defer stop()

	res, err := generator.Run(ctx, generator.Options{
		Network:       params.Name,
		OutputDir:     cfg.CardsFullpath,
		PrintToCard:   cfg.PrintToCard,
		Sheets:        cfg.Sheets,
		Scheme:        cfg.URIScheme,
		Discriminator: cfg.Discriminator,
		FrontTemplate: cfg.FrontTemplate,
		BackTemplate:  cfg.BackTemplate,
		FrontOffset:   frontOffset,
		BackOffset:    backOffset,
		MirrorBack:    cfg.MirrorBack,
		HideSecrets:   cfg.HideSecretsInConsole,
	})
	switch {
	case errors.Is(err, context.Canceled):
		red.Fprintln(stderr, msgs.Interrupted)
		return err
	case err != nil:
		logx.S().Errorw("generation error", "err", err)
		red.Fprintf(stderr, msgs.BatchFailed+"\n", err)
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), msgs.BatchDone+"\n", res.Cards, res.PDFPath, res.ManifestPath)
	return nil
}

// applyFlags lets explicitly set flags win over file and environment.
func (r *Runner) applyFlags(cmd *cobra.Command, cfg *appcfg.Config) {
	f := cmd.Flags()
	if f.Changed("output") {
		cfg.CardsFullpath = r.output
	}
	if f.Changed("print-to-card") {
		cfg.PrintToCard = r.printToCard
	}
	if f.Changed("sheets") {
		cfg.Sheets = r.sheets
	}
	if f.Changed("log-level") {
		cfg.LogLevel = r.logLevel
	}
	if f.Changed("discriminator") {
		cfg.Discriminator = r.discriminant
	}
}

func withInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
