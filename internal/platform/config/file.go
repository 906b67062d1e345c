package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/validate"

	"gopkg.in/yaml.v3"
)

// File mirrors the optional YAML config file
type File struct {
	DataDir string `yaml:"data_dir"`

	Filter struct {
		Websites   []string `yaml:"websites"`
		Categories []string `yaml:"categories"`
		Sellers    []string `yaml:"sellers"`
	} `yaml:"filter"`

	Normalizer struct {
		Provider      string `yaml:"provider" validate:"omitempty,oneof=openai gemini static"`
		OpenAIModel   string `yaml:"openai_model"`
		OpenAIBaseURL string `yaml:"openai_base_url" validate:"omitempty,url"`
		GeminiModel   string `yaml:"gemini_model"`
		Timeout       string `yaml:"timeout"`
	} `yaml:"normalizer"`

	Serve struct {
		Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
	} `yaml:"serve"`
}

// LoadFile parses and validates the YAML file at path.
// A missing file is reported as NotFound so callers can treat it as optional
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "config file %s not found", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeStorageIO, "read config file %s", path)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse config file %s", path)
	}
	if err := validate.Struct(f); err != nil {
		return nil, perr.WithOp(err, "config.LoadFile")
	}
	return &f, nil
}

// Overlay flattens the file into fully-qualified keys under prefix (e.g. "GROCER_")
func (f *File) Overlay(prefix string) map[string]string {
	out := map[string]string{}
	put := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			out[prefix+k] = v
		}
	}
	put("DATA_DIR", f.DataDir)
	put("FILTER_WEBSITES", strings.Join(f.Filter.Websites, ","))
	put("FILTER_CATEGORIES", strings.Join(f.Filter.Categories, ","))
	put("FILTER_SELLERS", strings.Join(f.Filter.Sellers, ","))
	put("NORMALIZER", f.Normalizer.Provider)
	put("OPENAI_MODEL", f.Normalizer.OpenAIModel)
	put("OPENAI_BASE_URL", f.Normalizer.OpenAIBaseURL)
	put("GEMINI_MODEL", f.Normalizer.GeminiModel)
	put("NORMALIZE_TIMEOUT", f.Normalizer.Timeout)
	put("SERVE_ADDR", f.Serve.Addr)
	return out
}

// WithFile layers the YAML file at path under the env; a missing file is not an error
func (c Conf) WithFile(path, prefix string) (Conf, error) {
	f, err := LoadFile(path)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return c, nil
		}
		return c, err
	}
	return c.WithOverlay(f.Overlay(prefix)), nil
}
