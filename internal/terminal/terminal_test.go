package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/InQaaaaGit/snipscan.git/internal/clipboard/clipboardtest"
	"github.com/InQaaaaGit/snipscan.git/internal/form"
	"github.com/InQaaaaGit/snipscan.git/internal/models"
	"github.com/InQaaaaGit/snipscan.git/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testShortURL = "https://snip.sc/abc123"

func TestRendererRender(t *testing.T) {
	qr, err := QRBlock(testShortURL)
	require.NoError(t, err)

	tests := []struct {
		name     string
		state    form.State
		withQR   bool
		want     string
		contains []string
	}{
		{
			name:  "empty state",
			state: form.State{},
			want:  "",
		},
		{
			name:  "error message",
			state: form.State{}.SetInput("example.com").Fail(),
			want:  "Error: " + form.RetryMessage + "\n",
		},
		{
			name:  "result without QR",
			state: form.State{}.Succeed(models.ShortenResult{ShortURL: testShortURL}),
			want:  "Short code: abc123\nShort URL:  " + testShortURL + "\n",
		},
		{
			name:     "result with QR",
			state:    form.State{}.Succeed(models.ShortenResult{ShortURL: testShortURL}),
			withQR:   true,
			contains: []string{"Short code: abc123\n", qr},
		},
		{
			name:  "empty short URL",
			state: form.State{}.Succeed(models.ShortenResult{}),
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := NewRenderer(&out, tt.withQR)

			require.NoError(t, r.Render(tt.state))

			if tt.contains == nil {
				assert.Equal(t, tt.want, out.String())
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestRendererObserve(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)

	r.Observe(form.State{}.SetInput("https://example.com"))
	assert.Empty(t, out.String())

	s, _, err := form.State{}.SetInput("https://example.com").Submit()
	require.NoError(t, err)
	r.Observe(s)
	assert.Equal(t, LoadingMessage+"\n", out.String())
}

func TestQRBlock(t *testing.T) {
	block, err := QRBlock(testShortURL)
	require.NoError(t, err)
	assert.NotEmpty(t, block)
	assert.Greater(t, strings.Count(block, "\n"), 10)

	again, err := QRBlock(testShortURL)
	require.NoError(t, err)
	assert.Equal(t, block, again)
}

type replFixture struct {
	calls     int
	clipboard *clipboardtest.Memory
	out       bytes.Buffer
}

func newREPL(t *testing.T, input string, result models.ShortenResult, shortenErr error) (*REPL, *replFixture) {
	t.Helper()
	fx := &replFixture{clipboard: &clipboardtest.Memory{}}

	shortener := servicetest.ShortenerFunc(func(ctx context.Context, originalURL string) (models.ShortenResult, error) {
		fx.calls++
		return result, shortenErr
	})
	renderer := NewRenderer(&fx.out, false)
	f := form.New(shortener, zap.NewNop(),
		form.WithClipboard(fx.clipboard),
		form.WithObserver(renderer.Observe),
	)
	return NewREPL(f, renderer, strings.NewReader(input), &fx.out, zap.NewNop()), fx
}

func TestREPLShortenAndCopy(t *testing.T) {
	repl, fx := newREPL(t, "https://example.com/page\n:copy\n:quit\nhttps://ignored.example\n",
		models.ShortenResult{ShortURL: testShortURL}, nil)

	require.NoError(t, repl.Run(context.Background()))

	assert.Equal(t, 1, fx.calls)
	assert.Equal(t, testShortURL, fx.clipboard.Text())

	out := fx.out.String()
	assert.Contains(t, out, LoadingMessage)
	assert.Contains(t, out, "Short code: abc123")
	assert.Contains(t, out, form.CopiedMessage)
	assert.NotContains(t, out, "ignored")
}

func TestREPLRejectedInput(t *testing.T) {
	repl, fx := newREPL(t, "\n   \nexample.com\nftp://x\n", models.ShortenResult{}, nil)

	require.NoError(t, repl.Run(context.Background()))

	assert.Zero(t, fx.calls)
	assert.Equal(t, 2, strings.Count(fx.out.String(), "Error: "+form.InvalidURLMessage))
	assert.NotContains(t, fx.out.String(), LoadingMessage)
}

func TestREPLServiceFailure(t *testing.T) {
	repl, fx := newREPL(t, "https://example.com\n:copy\n", models.ShortenResult{}, errors.New("boom"))

	require.NoError(t, repl.Run(context.Background()))

	out := fx.out.String()
	assert.Equal(t, 1, fx.calls)
	assert.Contains(t, out, "Error: "+form.RetryMessage)
	assert.NotContains(t, out, "boom")
	assert.Contains(t, out, "Nothing to copy yet.")
	assert.Empty(t, fx.clipboard.Text())
}

func TestREPLCopyWithoutClipboard(t *testing.T) {
	var out bytes.Buffer
	shortener := servicetest.ShortenerFunc(func(ctx context.Context, originalURL string) (models.ShortenResult, error) {
		return models.ShortenResult{ShortURL: testShortURL}, nil
	})
	renderer := NewRenderer(&out, false)
	f := form.New(shortener, zap.NewNop())
	repl := NewREPL(f, renderer, strings.NewReader("https://example.com\n:copy\n"), &out, zap.NewNop())

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "Clipboard is not available.")
}

func TestREPLHelpAndCanceledContext(t *testing.T) {
	repl, fx := newREPL(t, ":help\n", models.ShortenResult{}, nil)
	require.NoError(t, repl.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(fx.out.String(), CommandCopy))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repl, fx = newREPL(t, "https://example.com\n", models.ShortenResult{ShortURL: testShortURL}, nil)
	require.NoError(t, repl.Run(ctx))
	assert.Zero(t, fx.calls)
}
