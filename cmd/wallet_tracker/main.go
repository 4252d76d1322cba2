package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"wallet_tracker/internal/app/provider"
	"wallet_tracker/internal/app/service"
	"wallet_tracker/internal/infrastructure/addrvalidator"
	"wallet_tracker/internal/infrastructure/configloader"
	"wallet_tracker/internal/infrastructure/metrics"
	networkdefinition "wallet_tracker/internal/infrastructure/network/definition"
	"wallet_tracker/internal/infrastructure/resultwriter"
	"wallet_tracker/internal/infrastructure/simulator"
	"wallet_tracker/internal/pkg/logger"
	"wallet_tracker/internal/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// verbosity counts repeated -v flags.
type verbosity int

func (v *verbosity) String() string { return strconv.Itoa(int(*v)) }

func (v *verbosity) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v++
	}
	return nil
}

func (v *verbosity) IsBoolFlag() bool { return true }

func (v verbosity) level() string {
	switch {
	case v >= 2:
		return "debug"
	case v == 1:
		return "info"
	default:
		return "warn"
	}
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("wallet_tracker", flag.ContinueOnError)
	var verbose verbosity
	configPath := fs.String("config", utils.GetEnv("CONFIG_PATH", "config/config.yml"), "path to the settings file")
	walletsPath := fs.String("wallets", utils.GetEnv("WALLETS_PATH", "data/wallets.sample.json"), "path to the wallet list (.json, .yaml or .txt)")
	outputPath := fs.String("output", utils.GetEnv("OUTPUT_PATH", "data/sample_output.json"), "path of the JSON results file")
	fs.Var(&verbose, "v", "increase verbosity (-v info, -v -v debug)")
	debug := fs.Bool("vv", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *debug {
		verbose = 2
	}

	zapLogger, err := logger.Init(logger.Options{Level: verbose.level(), Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer zapLogger.Sync()
	appLogger := logger.FromZap(zapLogger)

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		appLogger.Error("Failed to load settings", "path", *configPath, "error", err)
		return 1
	}

	requests, err := provider.NewWalletProvider(*walletsPath, appLogger).GetWallets()
	if err != nil {
		return 1
	}

	chains := networkdefinition.NewChainDefinitionProvider(appLogger, cfg.SupportedChains)
	analyzer := service.NewWalletAnalyzer(
		simulator.New(appLogger),
		chains,
		addrvalidator.New(cfg.Analysis.StrictAddressValidation),
		metrics.NewRecorder(prometheus.NewRegistry()),
		appLogger,
		cfg,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := analyzer.AnalyzeWallets(ctx, requests)
	if err != nil {
		appLogger.Error("Analysis aborted", "error", err)
		return 1
	}

	if err := resultwriter.New(appLogger).WriteResults(*outputPath, stats); err != nil {
		appLogger.Error("Failed to write results", "path", *outputPath, "error", err)
		return 1
	}

	appLogger.Info("Analysis completed", "output", *outputPath, "records", len(stats))
	return 0
}
