package main

import (
	"github.com/matthewgream/iotdata/compress"
	"github.com/matthewgream/iotdata/internal/options"
)

// Config holds the tunables a deployment picks when wiring a Gateway:
// which compression algorithm to publish JSON payloads under, and how
// many recent (station, sequence) identities to remember for duplicate
// suppression on a lossy radio link.
type Config struct {
	Compression    compress.CompressionType
	DedupWindow    int
	DropDuplicates bool
}

// Option configures a Config.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		Compression:    compress.CompressionS2,
		DedupWindow:    256,
		DropDuplicates: true,
	}
}

// WithCompression selects the compression algorithm applied to each
// published JSON payload.
func WithCompression(ct compress.CompressionType) Option {
	return options.NoError[*Config](func(c *Config) {
		c.Compression = ct
	})
}

// WithDedupWindow sets how many recent (station, sequence) identities
// the gateway remembers when filtering repeats.
func WithDedupWindow(n int) Option {
	return options.New[*Config](func(c *Config) error {
		if n < 1 {
			return errConfigDedupWindow
		}
		c.DedupWindow = n
		return nil
	})
}

// WithDuplicatesAllowed disables duplicate suppression, passing every
// decoded packet through regardless of repeats.
func WithDuplicatesAllowed() Option {
	return options.NoError[*Config](func(c *Config) {
		c.DropDuplicates = false
	})
}
