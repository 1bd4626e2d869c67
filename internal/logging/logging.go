package logging

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

var Slog *slog.Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

type (
	responseData struct {
		status int
		size   int
	}

	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// WriteLogging logs one line per request.
func WriteLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &responseData{}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}

		h.ServeHTTP(&lw, r)

		Slog.Info(
			"request",
			slog.String("method", r.Method),
			slog.String("uri", r.RequestURI),
			slog.Duration("duration", time.Since(start)),
			slog.Int("status", responseData.status),
			slog.Int("size", responseData.size),
			slog.String("encoding", w.Header().Get("Content-Encoding")),
		)
	})
}
