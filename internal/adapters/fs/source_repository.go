package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

// nodeModules is where package imports such as @balancer-labs/... are found
const nodeModules = "node_modules"

var (
	commentPattern = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)
	importPattern  = regexp.MustCompile(`(?m)^\s*import\s+(?:[^"';]*?\bfrom\s+)?["']([^"']+)["']`)
)

// SourceRepositoryAdapter reads Solidity sources from the project tree.
// Paths are project-relative with forward slashes, the form compiler overrides are keyed by.
type SourceRepositoryAdapter struct {
	projectRoot string
}

// NewSourceRepositoryAdapter creates a new source repository
func NewSourceRepositoryAdapter(cfg *config.RuntimeConfig) *SourceRepositoryAdapter {
	return &SourceRepositoryAdapter{projectRoot: cfg.ProjectRoot}
}

// ListSources returns every .sol file under dir, sorted
func (s *SourceRepositoryAdapter) ListSources(ctx context.Context, dir string) ([]string, error) {
	root := filepath.Join(s.projectRoot, dir)
	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".sol" {
			return nil
		}
		rel, err := filepath.Rel(s.projectRoot, path)
		if err != nil {
			return err
		}
		sources = append(sources, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(sources)
	return sources, nil
}

// Locate returns the project-relative file for a source name. The project
// tree wins over node_modules.
func (s *SourceRepositoryAdapter) Locate(ctx context.Context, name string) (string, error) {
	for _, candidate := range []string{name, path.Join(nodeModules, name)} {
		info, err := os.Stat(filepath.Join(s.projectRoot, filepath.FromSlash(candidate)))
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("source %s: %w", name, domain.ErrNotFound)
}

// ReadSource returns the content of a source by name
func (s *SourceRepositoryAdapter) ReadSource(ctx context.Context, name string) (string, error) {
	file, err := s.Locate(ctx, name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(s.projectRoot, filepath.FromSlash(file)))
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(data), nil
}

// CollectSources reads entries and follows their imports until the set is closed
func (s *SourceRepositoryAdapter) CollectSources(ctx context.Context, entries []string) (map[string]string, error) {
	sources := make(map[string]string)
	queue := append([]string(nil), entries...)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := queue[0]
		queue = queue[1:]
		if _, seen := sources[name]; seen {
			continue
		}

		content, err := s.ReadSource(ctx, name)
		if err != nil {
			return nil, err
		}
		sources[name] = content
		for _, imported := range parseImports(content) {
			queue = append(queue, resolveImport(name, imported))
		}
	}
	return sources, nil
}

func parseImports(content string) []string {
	stripped := commentPattern.ReplaceAllString(content, "")
	var imports []string
	for _, m := range importPattern.FindAllStringSubmatch(stripped, -1) {
		imports = append(imports, m[1])
	}
	return imports
}

// resolveImport names an import the way solc does: relative paths are joined
// to the importing unit, anything else is already a source name.
func resolveImport(from, imported string) string {
	if strings.HasPrefix(imported, "./") || strings.HasPrefix(imported, "../") {
		return path.Join(path.Dir(from), imported)
	}
	return imported
}

// Ensure the adapter implements the interface
var _ usecase.SourceRepository = (*SourceRepositoryAdapter)(nil)
