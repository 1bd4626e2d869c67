package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteLogging(t *testing.T) {
	var buf bytes.Buffer
	old := Slog
	Slog = slog.New(slog.NewJSONHandler(&buf, nil))
	t.Cleanup(func() { Slog = old })

	tests := []struct {
		name   string
		h      http.HandlerFunc
		status int
		size   int
	}{
		{
			name:   "implicitOK",
			h:      func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("hello")) },
			status: http.StatusOK,
			size:   5,
		},
		{
			name:   "explicitStatus",
			h:      func(w http.ResponseWriter, _ *http.Request) { http.Error(w, "no order", http.StatusNotFound) },
			status: http.StatusNotFound,
			size:   9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			rec := httptest.NewRecorder()
			WriteLogging(tt.h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/7", nil))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			require.Equal(t, "request", line["msg"])
			require.Equal(t, "GET", line["method"])
			require.Equal(t, "/api/orders/7", line["uri"])
			require.EqualValues(t, tt.status, line["status"])
			require.EqualValues(t, tt.size, line["size"])
		})
	}
}
