// Package logger owns the process-wide zerolog root. Commands log to stderr so
// stdout stays free for tables and JSON output.
package logger

import (
	"io"
	"maps"
	"os"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type handed around the codebase
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level        string
	Format       string // console or json
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// EnvPrefix namespaces the logger's environment keys
const EnvPrefix = "GROCER_LOG_"

// FromEnv reads GROCER_LOG_* directly. config imports logger, so it cannot be used here
func FromEnv() Options {
	get := func(key, def string) string {
		if v := strings.TrimSpace(os.Getenv(EnvPrefix + key)); v != "" {
			return v
		}
		return def
	}
	caller, _ := strconv.ParseBool(get("CALLER", "false"))
	sample, _ := strconv.Atoi(get("SAMPLE_EVERY", "0"))
	return Options{
		Level:       strings.ToLower(get("LEVEL", "info")),
		Format:      strings.ToLower(get("FORMAT", "console")),
		Service:     get("SERVICE", "grocer"),
		Component:   get("COMPONENT", ""),
		WithCaller:  caller,
		SampleEvery: sample,
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init installs the root logger. Only the first call has any effect
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// SetLevel replaces the root with a copy at level; used by --verbose and config overrides
func SetLevel(level string) {
	l := Get().Level(parseLevel(level))
	root.Store(&l)
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

func build(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stderr
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	fields := map[string]string{
		"service":   opt.Service,
		"component": opt.Component,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fields["go_version"] = bi.GoVersion
	}
	for k, v := range opt.StaticFields {
		fields[k] = v
	}

	c := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if v := fields[k]; v != "" {
			c = c.Str(k, v)
		}
	}
	if opt.WithCaller {
		c = c.Caller()
	}
	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel accepts zerolog's names plus "warning"; anything else is info
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
