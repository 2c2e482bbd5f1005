package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/freakmaxi/rdrelay/basics/common"
	"github.com/freakmaxi/rdrelay/basics/config"
	rderrors "github.com/freakmaxi/rdrelay/basics/errors"
	"github.com/freakmaxi/rdrelay/basics/log"
	"github.com/freakmaxi/rdrelay/basics/terminal"
	"github.com/freakmaxi/rdrelay/receiver/transfer"
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

	logger, _ := log.NewLogger("receiver")
	os.Exit(run(fc, logger))
}

func run(fc *flagContainer, logger *zap.Logger) int {
	defer func() { _ = logger.Sync() }()

	output := terminal.NewStdOut()

	cfg, err := loadConfig(fc)
	if err != nil {
		output.Failure("Configuration is not valid: %s", err.Error())
		return 10
	}

	sugar := logger.Sugar()
	sugar.Debugf("REDIRECTOR_ADDRESS: %s", cfg.RedirectorAddress)
	sugar.Debugf("TARGET_PATH: %s", cfg.Directory)
	sugar.Debugf("IO_TIMEOUT: %s", cfg.Timeout)
	sugar.Debugf("CHUNK_SIZE: %d", cfg.ChunkSize)
	sugar.Debugf("SYNC_WRITES: %t", cfg.SyncWrites)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := transfer.NewReceiver(cfg, output, logger).Receive(ctx)
	if err != nil {
		output.Failure("Download is failed at %s: %s", common.SizeToString(session.Transferred), err.Error())
		return exitCode(err)
	}

	return 0
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return 130
	case errors.Is(err, rderrors.ErrHandshake), errors.Is(err, rderrors.ErrInvalidName):
		return 21
	case errors.Is(err, rderrors.ErrRecordAhead), errors.Is(err, rderrors.ErrRecord), errors.Is(err, rderrors.ErrDestinationExists):
		return 22
	}
	return 20
}

func loadConfig(fc *flagContainer) (config.Receiver, error) {
	cfg := config.DefaultReceiver()

	if len(fc.configPath) > 0 {
		var err error
		cfg, err = config.LoadReceiverFile(fc.configPath)
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
