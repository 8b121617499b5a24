package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/step"
)

// Format is an instructions document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf returns the encoding implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported instructions file %q (want .json, .yaml or .toml)", path)
}

// ReadInstructions decodes an instructions document from r.
//
// YAML and TOML documents are converted to JSON before decoding, so the
// field names are the JSON ones in every encoding. ReadInstructions does not
// validate the result and does not close r.
func ReadInstructions(r io.Reader, format Format) (*step.Instructions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	switch format {
	case FormatJSON:
	case FormatYAML:
		if data, err = yamlToJSON(data); err != nil {
			return nil, err
		}
	case FormatTOML:
		if data, err = tomlToJSON(data); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}

	var inst step.Instructions
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&inst); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode instructions")
	}
	return &inst, nil
}

// ImportInstructions reads the instructions file at path, choosing the
// decoder from its extension.
func ImportInstructions(path string) (*step.Instructions, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInstructions(f, format)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "convert yaml")
	}
	return out, nil
}

func tomlToJSON(data []byte) ([]byte, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "convert toml")
	}
	return out, nil
}
