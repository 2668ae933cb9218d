package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/InQaaaaGit/snipscan.git/internal/clipboard"
	"github.com/InQaaaaGit/snipscan.git/internal/form"
	"go.uber.org/zap"
)

// Команды REPL
const (
	CommandCopy = ":copy"
	CommandQuit = ":quit"
	CommandHelp = ":help"
)

const (
	prompt   = "> "
	helpText = `Enter a URL starting with http:// or https:// to shorten it.
  :copy  copy the short URL to the clipboard
  :quit  exit
`
)

// REPL читает строки из входного потока и передает их форме
type REPL struct {
	form     *form.Form
	renderer *Renderer
	in       io.Reader
	out      io.Writer
	logger   *zap.Logger
}

// NewREPL создает REPL для формы f
func NewREPL(f *form.Form, renderer *Renderer, in io.Reader, out io.Writer, logger *zap.Logger) *REPL {
	return &REPL{
		form:     f,
		renderer: renderer,
		in:       in,
		out:      out,
		logger:   logger,
	}
}

// Run обрабатывает ввод до команды :quit, конца входного потока или отмены ctx
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)

	fmt.Fprint(r.out, helpText)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case CommandQuit:
			return nil
		case CommandHelp:
			fmt.Fprint(r.out, helpText)
		case CommandCopy:
			r.copy()
		default:
			if err := r.submit(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (r *REPL) submit(ctx context.Context, line string) error {
	r.form.SetInput(line)

	err := r.form.Submit(ctx)
	switch {
	case errors.Is(err, form.ErrEmptyInput):
		return nil
	case err != nil && !errors.Is(err, form.ErrInvalidURL):
		r.logger.Debug("Submit failed", zap.Error(err))
	}

	return r.renderer.Render(r.form.State())
}

func (r *REPL) copy() {
	state := r.form.State()
	if state.Result == nil || state.Result.ShortURL == "" {
		fmt.Fprintln(r.out, "Nothing to copy yet.")
		return
	}

	notice, err := r.form.CopyShortURL(state.Result.ShortURL)
	if err != nil {
		if errors.Is(err, clipboard.ErrUnavailable) {
			fmt.Fprintln(r.out, "Clipboard is not available.")
			return
		}
		fmt.Fprintf(r.out, "Copy failed: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, notice)
}
