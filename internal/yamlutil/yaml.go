// Package yamlutil wraps goccy/go-yaml so callers share one set of decoding
// limits and encoding options.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds YAML input (config files are tiny; 256KB is generous).
var MaxInputSize = 256 << 10

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func checkInput(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict decodes data into v and rejects unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	if err := checkInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v with two-space indentation and indented sequences,
// the layout used for reports and generated config files.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
