package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/freakmaxi/rdrelay/basics/config"
	"github.com/freakmaxi/rdrelay/basics/log"
	"github.com/freakmaxi/rdrelay/basics/terminal"
	"github.com/freakmaxi/rdrelay/redirector/origin"
	"github.com/freakmaxi/rdrelay/redirector/routing"
	"github.com/freakmaxi/rdrelay/redirector/service"
	"github.com/freakmaxi/rdrelay/redirector/services"
	"go.uber.org/zap"
)

var version = "XX.X.XXXX"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && strings.Compare(args[0], "--version") == 0 {
		fmt.Println(version)
		return
	}

	fc := defineFlags()

	logger, console := log.NewLogger("redirector")
	os.Exit(run(fc, logger, console))
}

func run(fc *flagContainer, logger *zap.Logger, console bool) int {
	defer func() { _ = logger.Sync() }()

	printWelcome(console)

	logger.Info("------------ Starting Redirector ------------")

	cfg, err := loadConfig(fc)
	if err != nil {
		logger.Error("Configuration is not valid", zap.Error(err))
		return 10
	}

	sugar := logger.Sugar()
	sugar.Infof("SOURCE_URL: %s", cfg.SourceURL)
	sugar.Infof("BIND_ADDRESS: %s", cfg.BindAddress)
	sugar.Infof("STATUS_BIND_ADDRESS: %s", cfg.StatusAddress)
	sugar.Infof("IO_TIMEOUT: %s", cfg.Timeout)
	sugar.Infof("CHUNK_SIZE: %d", cfg.ChunkSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o, err := origin.New(ctx, cfg.SourceURL, cfg.Timeout)
	if err != nil {
		logger.Error("Origin is not accessible", zap.Error(err))
		return 11
	}
	defer func() { _ = o.Close() }()

	tracker := service.NewTracker()
	relay := service.NewRelay(cfg, o, tracker, terminal.NewStdOut(), logger)

	server, err := service.NewServer(cfg.BindAddress, relay, logger)
	if err != nil {
		logger.Error("Server is not created", zap.Error(err))
		return 12
	}

	if err := server.Bind(); err != nil {
		logger.Error("Unable to bind", zap.String("address", cfg.BindAddress), zap.Error(err))
		return 13
	}

	if len(cfg.StatusAddress) > 0 {
		routerManager := routing.NewManager()
		routerManager.Add(routing.NewStatusRouter(tracker, logger))

		proxy := services.NewProxy(cfg.StatusAddress, routerManager, logger)
		go func() { _ = proxy.Start(ctx) }()
	}

	if err := server.Listen(ctx); err != nil {
		logger.Error("Redirector is failed", zap.Error(err))
		return 14
	}

	logger.Info("Redirector is stopped", zap.Uint64("served", tracker.Status().Served))
	return 0
}

func loadConfig(fc *flagContainer) (config.Redirector, error) {
	cfg := config.DefaultRedirector()

	if len(fc.configPath) > 0 {
		var err error
		cfg, err = config.LoadRedirectorFile(fc.configPath)
		if err != nil {
			return cfg, err
		}
	}

	config.LoadDotEnv()
	if err := cfg.LoadFromEnv(); err != nil {
		return cfg, err
	}

	cfg = fc.apply(cfg)
	return cfg, cfg.Validate()
}

func printWelcome(console bool) {
	if !console {
		fmt.Printf("rdrelay redirector, version %s\n", version)
		return
	}

	fmt.Println()
	fmt.Println("  ┬─┐┌┬┐┬─┐┌─┐┬  ┌─┐┬ ┬")
	fmt.Println("  ├┬┘ ││├┬┘├┤ │  ├─┤└┬┘")
	fmt.Println("  ┴└──┴┘┴└─└─┘┴─┘┴ ┴ ┴ ")
	fmt.Printf("  redirector, version %s\n", version)
	fmt.Println()
}
