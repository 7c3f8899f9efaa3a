package pools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/domain/pool"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var extensions = []string{".yaml", ".yml", ".json"}

// StoreAdapter reads pool definitions from the project's pools directory
type StoreAdapter struct {
	dir string
}

// NewStoreAdapter creates a new pool config store
func NewStoreAdapter(cfg *config.RuntimeConfig) *StoreAdapter {
	return &StoreAdapter{
		dir: filepath.Join(cfg.ProjectRoot, cfg.Project.Paths.WithDefaults().Pools),
	}
}

// List returns the pool names found in the pools directory
func (s *StoreAdapter) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !lo.Contains(extensions, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	names = lo.Uniq(names)
	sort.Strings(names)
	return names, nil
}

// Load reads config/pools/<name>.yaml, .yml or .json, in that order
func (s *StoreAdapter) Load(ctx context.Context, name string) (*pool.Config, error) {
	for _, ext := range extensions {
		path := filepath.Join(s.dir, name+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var cfg pool.Config
		if ext == ".json" {
			err = json.Unmarshal(data, &cfg)
		} else {
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if cfg.Name == "" {
			cfg.Name = name
		}
		if cfg.Kind == "" {
			cfg.Kind = inferKind(cfg)
		}
		return &cfg, nil
	}
	return nil, fmt.Errorf("pool config %s in %s: %w", name, s.dir, domain.ErrNotFound)
}

// inferKind guesses the pool kind from the fields present
func inferKind(cfg pool.Config) string {
	switch {
	case cfg.Root3Alpha != "":
		return pool.KindThreeCLP
	case len(cfg.Bounds) > 0:
		return pool.KindTwoCLP
	default:
		return pool.KindWeighted
	}
}

// Ensure the adapter implements the interface
var _ usecase.PoolConfigStore = (*StoreAdapter)(nil)
