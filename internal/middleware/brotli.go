// middleware/brotli.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

type BrotliConfig struct {
	Quality   int
	Skipper   func(c *gin.Context) bool
	MinLength int
}

var DefaultBrotliConfig = BrotliConfig{
	Quality:   brotli.DefaultCompression,
	MinLength: 1024,
	Skipper:   nil,
}

// Bodies of these types are already compressed.
var precompressedTypes = []string{
	"application/vnd.openxmlformats-officedocument.",
	"application/zip",
	"application/gzip",
	"image/",
	"audio/",
	"video/",
}

type encoding int

const (
	encodingPending encoding = iota
	encodingBrotli
	encodingIdentity
)

// brotliWriter buffers the start of a body until MinLength bytes arrive, then
// settles on an encoding from the headers the handler has set by then.
type brotliWriter struct {
	gin.ResponseWriter
	quality   int
	minLength int
	buf       []byte
	encoding  encoding
	writer    *brotli.Writer
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	switch bw.encoding {
	case encodingBrotli:
		return bw.writer.Write(data)
	case encodingIdentity:
		return bw.ResponseWriter.Write(data)
	}

	bw.buf = append(bw.buf, data...)
	if len(bw.buf) < bw.minLength {
		return len(data), nil
	}
	if err := bw.settle(); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

func (bw *brotliWriter) settle() error {
	h := bw.ResponseWriter.Header()
	if h.Get("Content-Encoding") != "" || isPrecompressed(h.Get("Content-Type")) {
		bw.encoding = encodingIdentity
	} else {
		bw.encoding = encodingBrotli
		h.Set("Content-Encoding", "br")
		h.Del("Content-Length")
		bw.writer = brotli.NewWriterLevel(bw.ResponseWriter, bw.quality)
	}

	pending := bw.buf
	bw.buf = nil
	_, err := bw.Write(pending)
	return err
}

// Flush sends a still-pending body uncompressed; a started brotli stream is
// flushed in place.
func (bw *brotliWriter) Flush() {
	switch bw.encoding {
	case encodingPending:
		bw.encoding = encodingIdentity
		if len(bw.buf) > 0 {
			_, _ = bw.ResponseWriter.Write(bw.buf)
			bw.buf = nil
		}
	case encodingBrotli:
		_ = bw.writer.Flush()
	}
	bw.ResponseWriter.Flush()
}

// finish ends the response: short bodies go out as-is, brotli streams are closed.
func (bw *brotliWriter) finish() error {
	switch bw.encoding {
	case encodingPending:
		if len(bw.buf) == 0 {
			return nil
		}
		bw.encoding = encodingIdentity
		_, err := bw.ResponseWriter.Write(bw.buf)
		bw.buf = nil
		return err
	case encodingBrotli:
		return bw.writer.Close()
	}
	return nil
}

func Brotli() gin.HandlerFunc {
	return BrotliWithConfig(DefaultBrotliConfig)
}

func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < 0 || cfg.Quality > 11 {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	return func(c *gin.Context) {
		if shouldSkip(c) || (cfg.Skipper != nil && cfg.Skipper(c)) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			quality:        cfg.Quality,
			minLength:      cfg.MinLength,
		}
		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Writer = bw
		c.Next()
	}
}

// shouldSkip returns true for requests whose response must stream or has no body.
func shouldSkip(c *gin.Context) bool {
	// SSE requires immediate streaming, buffering breaks it
	if strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
		return true
	}
	return c.Request.Method == http.MethodHead
}

func isPrecompressed(contentType string) bool {
	for _, prefix := range precompressedTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		// "br;q=0.8" still names brotli
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
