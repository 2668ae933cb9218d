// Команда snipscan запускает веб-интерфейс сокращения ссылок.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/InQaaaaGit/snipscan.git/internal/app"
	"github.com/InQaaaaGit/snipscan.git/internal/buildinfo"
	"github.com/InQaaaaGit/snipscan.git/internal/config"
	"github.com/InQaaaaGit/snipscan.git/internal/server"
)

// Значения задаются при сборке:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X 'main.buildDate=$(date)' -X main.buildCommit=$(git rev-parse HEAD)"
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		log.Fatalf("snipscan: %v", err)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	info := buildinfo.New(buildVersion, buildDate, buildCommit)
	if err := info.Print(stdout); err != nil {
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger, cleanup, err := server.InitLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Starting SnipScan", info.Fields()...)

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
