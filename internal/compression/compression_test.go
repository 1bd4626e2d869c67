package compression

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func gz(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestGzipResponses(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		accept      string
		compressed  bool
	}{
		{name: "json", contentType: "application/json", accept: "gzip", compressed: true},
		{name: "jsonCharset", contentType: "application/json; charset=utf-8", accept: "gzip, deflate", compressed: true},
		{name: "pdf", contentType: "application/pdf", accept: "gzip", compressed: false},
		{name: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", accept: "gzip", compressed: false},
		{name: "noAccept", contentType: "application/json", accept: "", compressed: false},
	}

	body := `{"lines": 42}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := GzipCompressDecompress(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(body))
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if !tt.compressed {
				require.Empty(t, rec.Header().Get("Content-Encoding"))
				require.Equal(t, body, rec.Body.String())
				return
			}
			require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			got, err := io.ReadAll(zr)
			require.NoError(t, err)
			require.Equal(t, body, string(got))
		})
	}
}

func TestGzipRequestBody(t *testing.T) {
	var got string
	h := GzipCompressDecompress(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got = string(b)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(gz(t, `{"qty":3}`)))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"qty":3}`, got)

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("plain")))
	req.Header.Set("Content-Encoding", "gzip")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
