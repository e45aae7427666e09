package config

import "github.com/rs/zerolog"

type PNGConfig struct {
	LogLevel zerolog.Level

	// InflateChunkSize is both the initial capacity of the inflate output
	// buffer and the amount it grows by each time it fills up.
	InflateChunkSize int

	// AllowMissingIEND accepts files that end without an IEND chunk.
	AllowMissingIEND bool
}

const DefaultInflateChunkSize = 256 * 1024

var Config = PNGConfig{
	LogLevel:         zerolog.InfoLevel,
	InflateChunkSize: DefaultInflateChunkSize,
}
