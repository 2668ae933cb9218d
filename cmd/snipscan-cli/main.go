// Команда snipscan-cli запускает терминальный интерфейс сокращения ссылок.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/InQaaaaGit/snipscan.git/internal/app"
	"github.com/InQaaaaGit/snipscan.git/internal/buildinfo"
	"github.com/InQaaaaGit/snipscan.git/internal/clipboard"
	"github.com/InQaaaaGit/snipscan.git/internal/config"
	"github.com/InQaaaaGit/snipscan.git/internal/server"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// defaultLogLevel уровень логов терминального клиента, если он не задан явно
const defaultLogLevel = "warn"

var showQR = flag.Bool("qr", true, "Выводить QR код короткой ссылки")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("snipscan-cli: %v", err)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer) error {
	info := buildinfo.New(buildVersion, buildDate, buildCommit)

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger, cleanup, err := server.InitConsoleLogger(logLevel(cfg))
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Debug("Starting SnipScan CLI", info.Fields()...)
	fmt.Fprintf(out, "SnipScan %s\n", info.Version)

	opts := app.TerminalOptions{
		In:     in,
		Out:    out,
		QRCode: *showQR,
	}
	if clip, err := clipboard.NewSystem(); err == nil {
		opts.Clipboard = clip
	} else {
		logger.Warn("System clipboard is not available", zap.Error(err))
	}

	repl, err := app.NewTerminal(cfg, logger, opts)
	if err != nil {
		return err
	}
	return repl.Run(ctx)
}

// logLevel возвращает уровень логов из конфигурации, если он задан флагом или
// переменной окружения, иначе defaultLogLevel
func logLevel(cfg *config.Config) string {
	if _, ok := os.LookupEnv("LOG_LEVEL"); ok {
		return cfg.LogLevel
	}
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "l" {
			explicit = true
		}
	})
	if explicit {
		return cfg.LogLevel
	}
	return defaultLogLevel
}
