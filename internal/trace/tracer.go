package trace

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Tracer receives trace events. Implementations must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// Format selects the zap encoder.
type Format uint8

const (
	FormatAuto Format = iota // by output extension
	FormatText
	FormatJSON
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "json", "ndjson":
		return FormatJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|json)", s)
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "-" or "" for stderr
	MaxSizeMB  int       // rotation threshold for file outputs, default 16
	MaxBackups int
}

// New creates a Tracer for cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".json") || strings.HasSuffix(cfg.OutputPath, ".ndjson") {
			format = FormatJSON
		}
	}

	ws, closer := openOutput(cfg)
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.MessageKey = "name"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == FormatJSON {
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, ws, zapcore.DebugLevel)
	return &ZapTracer{
		log:    zap.New(core),
		level:  cfg.Level,
		closer: closer,
	}, nil
}

// openOutput returns the sink and, for files, the rotating logger that owns it.
func openOutput(cfg Config) (zapcore.WriteSyncer, io.Closer) {
	if cfg.Output != nil {
		return zapcore.AddSync(cfg.Output), nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return zapcore.Lock(os.Stderr), nil
	}
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 16
	}
	rot := &lumberjack.Logger{
		Filename:   cfg.OutputPath,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
	}
	return zapcore.AddSync(rot), rot
}

// ZapTracer writes each event as one zap entry.
type ZapTracer struct {
	log    *zap.Logger
	level  Level
	closer io.Closer
	closed atomic.Bool
}

func (t *ZapTracer) Emit(ev *Event) {
	if t.closed.Load() {
		return
	}
	if ev.Kind != KindError && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}

	fields := make([]zap.Field, 0, 6+len(ev.Extra))
	fields = append(fields,
		zap.Uint64("seq", ev.Seq),
		zap.Stringer("kind", ev.Kind),
		zap.Stringer("scope", ev.Scope),
		zap.Uint64("span", ev.SpanID),
	)
	if ev.ParentID != 0 {
		fields = append(fields, zap.Uint64("parent", ev.ParentID))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	if ev.Kind == KindSpanEnd {
		fields = append(fields, zap.Duration("elapsed", ev.Elapsed))
	}
	keys := make([]string, 0, len(ev.Extra))
	for k := range ev.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, ev.Extra[k]))
	}

	if ev.Kind == KindError {
		t.log.Error(ev.Name, fields...)
		return
	}
	t.log.Debug(ev.Name, fields...)
}

func (t *ZapTracer) Flush() error {
	// stderr/stdout не поддерживают fsync
	if err := t.log.Sync(); err != nil && !isSyncUnsupported(err) {
		return err
	}
	return nil
}

func (t *ZapTracer) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := t.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (t *ZapTracer) Level() Level  { return t.level }
func (t *ZapTracer) Enabled() bool { return t.level > LevelOff }

func isSyncUnsupported(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}
