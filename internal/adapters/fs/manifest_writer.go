package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

// ManifestFileName is written to the artifacts directory after each compile
const ManifestFileName = "compiler-profiles.json"

// CompileManifest maps every compiled source to the profile used for it
type CompileManifest struct {
	GeneratedAt time.Time                         `json:"generatedAt"`
	Sources     map[string]config.CompilerProfile `json:"sources"`
}

// ManifestWriterAdapter writes compile manifests
type ManifestWriterAdapter struct {
	projectRoot string
}

// NewManifestWriterAdapter creates a new manifest writer
func NewManifestWriterAdapter(cfg *config.RuntimeConfig) *ManifestWriterAdapter {
	return &ManifestWriterAdapter{projectRoot: cfg.ProjectRoot}
}

// WriteManifest writes the manifest for plan and returns its project-relative path
func (m *ManifestWriterAdapter) WriteManifest(ctx context.Context, plan *usecase.CompilePlan) (string, error) {
	manifest := CompileManifest{
		GeneratedAt: time.Now().UTC(),
		Sources:     make(map[string]config.CompilerProfile),
	}
	for _, unit := range plan.Units {
		for _, source := range unit.Sources {
			manifest.Sources[source] = unit.Profile
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	rel := filepath.Join(plan.OutDir, ManifestFileName)
	path := filepath.Join(m.projectRoot, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return rel, nil
}

// Ensure the adapter implements the interface
var _ usecase.CompileManifestWriter = (*ManifestWriterAdapter)(nil)
