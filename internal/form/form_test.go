package form

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/InQaaaaGit/snipscan.git/internal/clipboard"
	"github.com/InQaaaaGit/snipscan.git/internal/clipboard/clipboardtest"
	"github.com/InQaaaaGit/snipscan.git/internal/models"
	"github.com/InQaaaaGit/snipscan.git/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeShortener возвращает заранее заданный результат и считает вызовы
type fakeShortener struct {
	calls  atomic.Int32
	urls   []string
	mu     sync.Mutex
	result models.ShortenResult
	err    error
}

func (f *fakeShortener) Shorten(_ context.Context, originalURL string) (models.ShortenResult, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.urls = append(f.urls, originalURL)
	f.mu.Unlock()
	return f.result, f.err
}

// blockingShortener держит запрос до закрытия release
type blockingShortener struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newBlockingShortener() *blockingShortener {
	return &blockingShortener{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (b *blockingShortener) Shorten(ctx context.Context, _ string) (models.ShortenResult, error) {
	b.calls.Add(1)
	b.started <- struct{}{}
	select {
	case <-b.release:
		return sampleResult, nil
	case <-ctx.Done():
		return models.ShortenResult{}, ctx.Err()
	}
}

type failingClipboard struct{}

func (failingClipboard) WriteAll(string) error {
	return errors.New("no display")
}

func TestFormSubmitSuccess(t *testing.T) {
	shortener := &fakeShortener{result: sampleResult}
	f := New(shortener, zap.NewNop())

	f.SetInput("  https://example.com/page ")
	require.NoError(t, f.Submit(context.Background()))

	s := f.State()
	assert.Equal(t, int32(1), shortener.calls.Load())
	assert.Equal(t, []string{"https://example.com/page"}, shortener.urls)
	assert.Equal(t, StateSettled, s.Request)
	require.NotNil(t, s.Result)
	assert.Equal(t, "https://snip.sc/abc123", s.Result.ShortURL)
	assert.Equal(t, sampleResult.QRCodeImg, s.Result.QRCodeImg)
	assert.Empty(t, s.ErrorMessage)
	assert.Equal(t, "abc123", ExtractShortCode(s.Result.ShortURL))
}

func TestFormSubmitBlankInput(t *testing.T) {
	for _, input := range []string{"", " ", "\t\n "} {
		shortener := &fakeShortener{result: sampleResult}
		f := New(shortener, zap.NewNop())
		f.SetInput(input)

		err := f.Submit(context.Background())

		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Zero(t, shortener.calls.Load())
		assert.Empty(t, f.State().ErrorMessage)
		assert.Equal(t, StateIdle, f.State().Request)
	}
}

func TestFormSubmitInvalidURL(t *testing.T) {
	for _, input := range []string{"not a url", "example.com", "ftp://example.com"} {
		t.Run(input, func(t *testing.T) {
			shortener := &fakeShortener{result: sampleResult}
			f := New(shortener, zap.NewNop())

			f.SetInput(input)
			err := f.Submit(context.Background())

			assert.ErrorIs(t, err, ErrInvalidURL)
			assert.Zero(t, shortener.calls.Load())
			assert.Equal(t, InvalidURLMessage, f.State().ErrorMessage)
			assert.Nil(t, f.State().Result)
		})
	}
}

func TestFormSubmitInvalidURLClearsPreviousResult(t *testing.T) {
	f := New(&fakeShortener{result: sampleResult}, zap.NewNop())
	f.SetInput("https://example.com/page")
	require.NoError(t, f.Submit(context.Background()))
	require.NotNil(t, f.State().Result)

	f.SetInput("example.com")
	assert.ErrorIs(t, f.Submit(context.Background()), ErrInvalidURL)

	s := f.State()
	assert.Nil(t, s.Result)
	assert.Equal(t, InvalidURLMessage, s.ErrorMessage)
}

func TestFormSubmitServiceFailure(t *testing.T) {
	cause := errors.New("connection refused")
	shortener := &fakeShortener{err: cause}
	f := New(shortener, zap.NewNop())

	f.SetInput("https://example.com/page")
	err := f.Submit(context.Background())

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.ErrorIs(t, err, cause)

	s := f.State()
	assert.Equal(t, StateSettled, s.Request)
	assert.Nil(t, s.Result)
	assert.Equal(t, RetryMessage, s.ErrorMessage)
	assert.NotContains(t, s.ErrorMessage, cause.Error(), "причина ошибки не показывается пользователю")
}

func TestFormSubmitFailureAfterSuccessClearsResult(t *testing.T) {
	shortener := &fakeShortener{result: sampleResult}
	f := New(shortener, zap.NewNop())
	f.SetInput("https://example.com/page")
	require.NoError(t, f.Submit(context.Background()))

	shortener.err = service.ErrRequestFailed
	require.Error(t, f.Submit(context.Background()))

	s := f.State()
	assert.Nil(t, s.Result)
	assert.Equal(t, RetryMessage, s.ErrorMessage)
	assert.Equal(t, int32(2), shortener.calls.Load())
}

func TestFormSubmitWhileInFlight(t *testing.T) {
	shortener := newBlockingShortener()
	f := New(shortener, zap.NewNop())
	f.SetInput("https://example.com/page")

	done := make(chan error, 1)
	go func() {
		done <- f.Submit(context.Background())
	}()

	select {
	case <-shortener.started:
	case <-time.After(time.Second):
		t.Fatal("first request was not issued")
	}

	s := f.State()
	assert.Equal(t, StateInFlight, s.Request)
	assert.False(t, s.CanSubmit())

	assert.ErrorIs(t, f.Submit(context.Background()), ErrInFlight)
	assert.Equal(t, int32(1), shortener.calls.Load(), "second request must not be issued")

	close(shortener.release)
	require.NoError(t, <-done)

	s = f.State()
	assert.Equal(t, StateSettled, s.Request)
	assert.NotNil(t, s.Result)
}

func TestFormSubmitConcurrent(t *testing.T) {
	shortener := newBlockingShortener()
	f := New(shortener, zap.NewNop())
	f.SetInput("https://example.com/page")

	const workers = 20
	var (
		wg       sync.WaitGroup
		inFlight atomic.Int32
	)
	first := make(chan error, 1)
	go func() {
		first <- f.Submit(context.Background())
	}()
	<-shortener.started

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if errors.Is(f.Submit(context.Background()), ErrInFlight) {
				inFlight.Add(1)
			}
		}()
	}
	wg.Wait()
	close(shortener.release)
	require.NoError(t, <-first)

	assert.Equal(t, int32(workers), inFlight.Load())
	assert.Equal(t, int32(1), shortener.calls.Load())
}

func TestFormSubmitContextCanceled(t *testing.T) {
	shortener := newBlockingShortener()
	f := New(shortener, zap.NewNop())
	f.SetInput("https://example.com")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.Submit(ctx)
	}()
	<-shortener.started
	cancel()

	err := <-done
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateSettled, f.State().Request)
	assert.Equal(t, RetryMessage, f.State().ErrorMessage)
}

func TestFormObserver(t *testing.T) {
	var seen []RequestState
	f := New(&fakeShortener{result: sampleResult}, zap.NewNop(), WithObserver(func(s State) {
		seen = append(seen, s.Request)
	}))

	f.SetInput("https://example.com")
	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, []RequestState{StateIdle, StateInFlight, StateSettled}, seen)
}

func TestFormObserverNotCalledForSilentRefusal(t *testing.T) {
	calls := 0
	f := New(&fakeShortener{}, zap.NewNop(), WithObserver(func(State) {
		calls++
	}))

	assert.ErrorIs(t, f.Submit(context.Background()), ErrEmptyInput)
	assert.Zero(t, calls)
}

func TestFormStateIsCopy(t *testing.T) {
	f := New(&fakeShortener{result: sampleResult}, zap.NewNop())
	f.SetInput("https://example.com")
	require.NoError(t, f.Submit(context.Background()))

	s := f.State()
	s.Result.ShortURL = "changed"
	s.Input = "changed"

	assert.Equal(t, "https://snip.sc/abc123", f.State().Result.ShortURL)
	assert.Equal(t, "https://example.com", f.State().Input)
}

func TestFormCopyShortURL(t *testing.T) {
	t.Run("copies and returns notice", func(t *testing.T) {
		cb := &clipboardtest.Memory{}
		f := New(&fakeShortener{}, zap.NewNop(), WithClipboard(cb))
		before := f.State()

		notice, err := f.CopyShortURL("https://snip.sc/abc123")
		require.NoError(t, err)

		assert.Equal(t, CopiedMessage, notice)
		assert.Equal(t, "https://snip.sc/abc123", cb.Text())
		assert.Equal(t, before, f.State(), "копирование не меняет состояние")
	})

	t.Run("without clipboard", func(t *testing.T) {
		f := New(&fakeShortener{}, zap.NewNop())
		_, err := f.CopyShortURL("https://snip.sc/abc123")
		assert.ErrorIs(t, err, clipboard.ErrUnavailable)
	})

	t.Run("clipboard error", func(t *testing.T) {
		f := New(&fakeShortener{}, zap.NewNop(), WithClipboard(failingClipboard{}))
		notice, err := f.CopyShortURL("https://snip.sc/abc123")
		assert.Error(t, err)
		assert.Empty(t, notice)
	})
}
