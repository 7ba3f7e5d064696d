package benchmark

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadFile reads a YAML snapshot and returns a Provider serving it. Keys not
// present in the file keep the built-in Default values.
func LoadFile(ctx context.Context, path string) (Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadSnapshot, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSnapshot, path, err)
	}

	stats := Default()
	if err := k.UnmarshalWithConf("", &stats, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSnapshot, path, err)
	}
	if k.Exists("outliers") {
		stats.Outliers = k.Float64s("outliers")
	}
	stats.Source = SourceFile
	if err := stats.Validate(); err != nil {
		return nil, err
	}
	return Static(stats), nil
}
