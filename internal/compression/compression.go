package compression

import (
	"compress/gzip"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"
)

var allowedCompressTypes = []string{"text/html", "text/csv", "text/plain", "application/json"}

// gzipResponseWriter decides on compression at the first header write,
// once the handler has set Content-Type.
type gzipResponseWriter struct {
	w       http.ResponseWriter
	zw      *gzip.Writer
	decided bool
}

func NewCompressWriter(w http.ResponseWriter) *gzipResponseWriter {
	return &gzipResponseWriter{
		w: w,
	}
}

func (c *gzipResponseWriter) Header() http.Header {
	return c.w.Header()
}

func (c *gzipResponseWriter) decide() {
	if c.decided {
		return
	}
	c.decided = true
	if c.w.Header().Get("Content-Encoding") != "" {
		return
	}
	mt, _, _ := mime.ParseMediaType(c.w.Header().Get("Content-Type"))
	if !slices.Contains(allowedCompressTypes, mt) {
		return
	}
	c.w.Header().Set("Content-Encoding", "gzip")
	c.w.Header().Del("Content-Length")
	c.zw = gzip.NewWriter(c.w)
}

func (c *gzipResponseWriter) Write(p []byte) (int, error) {
	if !c.decided {
		if c.w.Header().Get("Content-Type") == "" {
			c.w.Header().Set("Content-Type", http.DetectContentType(p))
		}
		c.decide()
	}
	if c.zw == nil {
		return c.w.Write(p)
	}
	return c.zw.Write(p)
}

func (c *gzipResponseWriter) WriteHeader(statusCode int) {
	c.decide()
	c.w.WriteHeader(statusCode)
}

func (c *gzipResponseWriter) Close() error {
	if c.zw == nil {
		return nil
	}
	return c.zw.Close()
}

type gzipReadCloser struct {
	r  io.ReadCloser
	zr *gzip.Reader
}

func NewCompressReader(r io.ReadCloser) (*gzipReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &gzipReadCloser{
		r:  r,
		zr: zr,
	}, nil
}

func (c *gzipReadCloser) Read(p []byte) (n int, err error) {
	return c.zr.Read(p)
}

func (c *gzipReadCloser) Close() error {
	if err := c.r.Close(); err != nil {
		return err
	}
	return c.zr.Close()
}

// GzipCompressDecompress compresses text responses for clients that accept gzip
// and inflates gzip request bodies. PDF and xlsx downloads pass through as is.
func GzipCompressDecompress(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ow := w

		if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			cw := NewCompressWriter(w)
			ow = cw
			defer cw.Close()
		}

		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			cr, err := NewCompressReader(r.Body)
			if err != nil {
				http.Error(w, "bad gzip body", http.StatusBadRequest)
				return
			}
			r.Body = cr
			defer cr.Close()
		}

		h.ServeHTTP(ow, r)
	})
}
