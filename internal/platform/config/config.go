// Package config reads settings from the environment, with an optional YAML
// file underneath. A set environment variable always beats the file.
package config

import (
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"grocer/internal/platform/logger"
)

// Conf is a prefixed view over the environment plus a file overlay.
// Keys passed to the accessors are relative to the prefix.
type Conf struct {
	prefix  string
	overlay map[string]string
}

// New returns the root view
func New() Conf { return Conf{} }

// Prefix scopes c further, cfg.Prefix("GROCER_").Prefix("FILTER_") reads GROCER_FILTER_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, overlay: c.overlay} }

// WithOverlay layers fully-qualified values under the environment. Later overlays win over earlier ones
func (c Conf) WithOverlay(values map[string]string) Conf {
	merged := maps.Clone(c.overlay)
	if merged == nil {
		merged = make(map[string]string, len(values))
	}
	maps.Copy(merged, values)
	return Conf{prefix: c.prefix, overlay: merged}
}

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string {
	full := c.key(k)
	if v := strings.TrimSpace(os.Getenv(full)); v != "" {
		return v
	}
	return strings.TrimSpace(c.overlay[full])
}

// MayString returns the value of key, or def when unset
func (c Conf) MayString(key, def string) string { return c.MayFirst(def, key) }

// MayFirst returns the first set key, or def. GEMINI_API_KEY then GOOGLE_API_KEY, say
func (c Conf) MayFirst(def string, keys ...string) string {
	for _, k := range keys {
		if v := c.get(k); v != "" {
			return v
		}
	}
	return def
}

// MayPath is MayString with a leading ~ expanded to the home directory
func (c Conf) MayPath(key, def string) string {
	p := c.MayString(key, def)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", c.key(key)).Msg("config: no home dir, path left unexpanded")
		return p
	}
	return filepath.Join(home, p[1:])
}

// MayInt parses key as an int. Unparseable values are logged and replaced by def
func (c Conf) MayInt(key string, def int) int { return mayParse(c, key, def, strconv.Atoi) }

// MayDuration parses key with time.ParseDuration, falling back like MayInt
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return mayParse(c, key, def, time.ParseDuration)
}

// MayCSV splits key on commas, dropping blanks. def is used when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.get(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func mayParse[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Msg("config: invalid value, using default")
		return def
	}
	return v
}
