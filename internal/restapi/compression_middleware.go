package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressionConfig holds configuration options for response compression
type CompressionConfig struct {
	// MinSize is the minimum response size in bytes to compress (default: 1024)
	MinSize int
	// Level is the compression level 1-9 (default: 6)
	Level int
	// ContentTypes limits compression to these media types. Empty compresses everything.
	ContentTypes []string
}

// DefaultCompressionConfig compresses the JSON envelopes and the debug pages.
// Single overlay responses usually stay under MinSize and go out as-is.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:      1024, // 1KB minimum
		Level:        6,
		ContentTypes: []string{"application/json", "text/html"},
	}
}

// NewCompressionMiddleware creates a compression middleware with the given configuration
func NewCompressionMiddleware(config CompressionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		handler, err := gzipHandler(next, config)
		if err != nil {
			// Fall back to library defaults on a bad level
			return gzhttp.GzipHandler(next)
		}
		return handler
	}
}

func gzipHandler(next http.Handler, config CompressionConfig) (http.Handler, error) {
	if len(config.ContentTypes) == 0 {
		wrapper, err := gzhttp.NewWrapper(
			gzhttp.MinSize(config.MinSize),
			gzhttp.CompressionLevel(config.Level),
		)
		if err != nil {
			return nil, err
		}
		return wrapper(next), nil
	}

	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(config.MinSize),
		gzhttp.CompressionLevel(config.Level),
		gzhttp.ContentTypes(config.ContentTypes),
	)
	if err != nil {
		return nil, err
	}
	return wrapper(next), nil
}

// CompressionMiddleware applies gzip compression with default settings
func CompressionMiddleware(next http.Handler) http.Handler {
	return NewCompressionMiddleware(DefaultCompressionConfig())(next)
}
