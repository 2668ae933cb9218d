package app

import (
	"fmt"
	"io"

	"github.com/InQaaaaGit/snipscan.git/internal/clipboard"
	"github.com/InQaaaaGit/snipscan.git/internal/config"
	"github.com/InQaaaaGit/snipscan.git/internal/form"
	"github.com/InQaaaaGit/snipscan.git/internal/service"
	"github.com/InQaaaaGit/snipscan.git/internal/terminal"
	"go.uber.org/zap"
)

// TerminalOptions параметры терминального клиента
type TerminalOptions struct {
	In        io.Reader
	Out       io.Writer
	Clipboard clipboard.Writer // nil отключает команду копирования
	QRCode    bool             // выводить QR код под результатом
}

// NewTerminal собирает терминальный клиент: одна форма, выводимая в opts.Out
func NewTerminal(cfg *config.Config, logger *zap.Logger, opts TerminalOptions, clientOpts ...service.ClientOption) (*terminal.REPL, error) {
	client, err := service.NewAPIClient(cfg, logger, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("error creating shortener client: %w", err)
	}

	renderer := terminal.NewRenderer(opts.Out, opts.QRCode)
	formOpts := []form.Option{form.WithObserver(renderer.Observe)}
	if opts.Clipboard != nil {
		formOpts = append(formOpts, form.WithClipboard(opts.Clipboard))
	}

	f := form.New(client, logger, formOpts...)
	return terminal.NewREPL(f, renderer, opts.In, opts.Out, logger), nil
}
