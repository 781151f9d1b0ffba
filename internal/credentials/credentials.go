// Package credentials resolves API credentials from an ordered list of
// sources. A source that fails is logged and skipped, never fatal; only an
// exhausted source list is an error.
package credentials

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrNotFound means no configured source yielded a credential.
var ErrNotFound = errors.New("credential not found in any source")

// Source is a single named credential lookup. A lookup error or an empty
// value both mean "not present here".
type Source struct {
	Name   string
	Lookup func() (string, error)
}

// Resolver tries each source in order and returns the first non-empty value.
type Resolver struct {
	log     *slog.Logger
	sources []Source
}

// NewResolver builds a resolver over the given sources, tried in order.
func NewResolver(log *slog.Logger, sources ...Source) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{log: log, sources: sources}
}

// Resolve walks the sources and short-circuits on the first non-empty value.
// Individual source failures are logged for operator debugging and treated
// as absence. Returns ErrNotFound when every source comes up empty.
func (r *Resolver) Resolve() (string, error) {
	for _, src := range r.sources {
		value, err := src.Lookup()
		if err != nil {
			r.log.Debug("credential source failed", "source", src.Name, "err", err)
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
	}
	return "", ErrNotFound
}

// SecretsFile reads key from a TOML secrets file, the structured store used
// in managed hosting. A missing or unparsable file is a lookup error, which
// the resolver downgrades to absence.
func SecretsFile(path, key string) Source {
	return Source{
		Name: "secrets-file",
		Lookup: func() (string, error) {
			var secrets map[string]any
			if _, err := toml.DecodeFile(path, &secrets); err != nil {
				return "", fmt.Errorf("read secrets file %s: %w", path, err)
			}
			value, ok := secrets[key].(string)
			if !ok {
				return "", nil
			}
			return value, nil
		},
	}
}

// Env reads key from the process environment.
func Env(key string) Source {
	return Source{
		Name: "env",
		Lookup: func() (string, error) {
			return os.Getenv(key), nil
		},
	}
}
