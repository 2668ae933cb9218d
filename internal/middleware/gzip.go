package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// GzipMiddleware обрабатывает сжатие и распаковку gzip
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Если запрос сжат, распаковываем его
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			if r.Body == nil || r.Body == http.NoBody {
				http.Error(w, "Empty request body", http.StatusBadRequest)
				return
			}

			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip body", http.StatusBadRequest)
				return
			}
			defer gz.Close()
			r.Body = gz
			r.Header.Del("Content-Encoding")
			r.Header.Del("Content-Length")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.Close()

		next.ServeHTTP(gw, r)
	})
}

// gzipResponseWriter сжимает тело ответа. Код состояния откладывается до первой записи,
// поэтому ответы без тела (редиректы, 204) уходят без сжатия.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz         *gzip.Writer
	statusCode int
	sentHeader bool
}

// WriteHeader запоминает код состояния HTTP ответа
func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.statusCode == 0 {
		w.statusCode = statusCode
	}
}

// Write записывает данные в сжатый поток
func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if w.gz == nil {
		h := w.Header()
		h.Set("Content-Encoding", "gzip")
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")
		w.gz = gzip.NewWriter(w.ResponseWriter)
		w.sendHeader()
	}
	return w.gz.Write(b)
}

func (w *gzipResponseWriter) sendHeader() {
	if w.sentHeader {
		return
	}
	w.sentHeader = true
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(w.statusCode)
}

// Close завершает сжатый поток или отправляет отложенный код состояния ответа без тела
func (w *gzipResponseWriter) Close() {
	if w.gz != nil {
		_ = w.gz.Close()
		return
	}
	if w.statusCode != 0 {
		w.sendHeader()
	}
}
