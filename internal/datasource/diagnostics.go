package datasource

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Diagnostics records every outbound fetch to a structured JSON file. This is
// separate from the application log: it exists so a misbehaving crawl can be
// reconstructed request by request when debugging EDGAR throttling.
type Diagnostics struct {
	log *zap.Logger
}

// NewDiagnostics creates a diagnostics recorder writing to dir/fetch.log.
func NewDiagnostics(dir string) (*Diagnostics, error) {
	if dir == "" {
		dir = "logs/datasource"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "fetch.log")}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Diagnostics{log: log}, nil
}

// Fetch records a single outbound request.
func (d *Diagnostics) Fetch(url string, cached bool, bytes int, duration time.Duration, err error) {
	if d == nil || d.log == nil {
		return
	}
	fields := []zap.Field{
		zap.String("url", url),
		zap.Bool("cached", cached),
		zap.Int("bytes", bytes),
		zap.Duration("duration", duration),
	}
	if err != nil {
		d.log.Warn("fetch failed", append(fields, zap.Error(err))...)
		return
	}
	d.log.Info("fetch", fields...)
}

// Close flushes buffered entries.
func (d *Diagnostics) Close() {
	if d == nil || d.log == nil {
		return
	}
	d.log.Sync()
}
