package toolchain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

var (
	semverPattern  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	versionPattern = regexp.MustCompile(`Version:\s*(\d+\.\d+\.\d+\+commit\.[0-9a-f]+)`)
)

// SvmToolchain finds solc binaries installed by svm under <dir>/<version>/solc-<version>
type SvmToolchain struct {
	dir string
	log *slog.Logger

	mu          sync.Mutex
	longVersion map[string]string
}

// NewSvmToolchain creates a toolchain reading the configured svm directory,
// or ~/.svm when none is set
func NewSvmToolchain(cfg *config.RuntimeConfig, log *slog.Logger) *SvmToolchain {
	dir := cfg.Project.Toolchain.SvmDir
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".svm")
		}
	}
	return &SvmToolchain{
		dir:         dir,
		log:         log.With("component", "SvmToolchain"),
		longVersion: make(map[string]string),
	}
}

// InstalledVersions lists installed versions in ascending semver order
func (s *SvmToolchain) InstalledVersions(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		s.log.Debug("svm directory not found", "dir", s.dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.dir, err)
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() || !semverPattern.MatchString(entry.Name()) {
			continue
		}
		if _, err := os.Stat(s.binary(entry.Name())); err != nil {
			continue
		}
		versions = append(versions, entry.Name())
	}
	sort.Slice(versions, func(i, j int) bool { return lessVersion(versions[i], versions[j]) })
	return versions, nil
}

// BinaryPath returns the solc binary for version
func (s *SvmToolchain) BinaryPath(ctx context.Context, version string) (string, error) {
	bin := s.binary(version)
	if _, err := os.Stat(bin); err != nil {
		available, _ := s.InstalledVersions(ctx)
		return "", &domain.ToolchainMissingVersionError{Version: version, Available: available}
	}
	return bin, nil
}

// LongVersion runs solc --version and returns e.g. v0.7.1+commit.8d00100c
func (s *SvmToolchain) LongVersion(ctx context.Context, version string) (string, error) {
	s.mu.Lock()
	cached, ok := s.longVersion[version]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	bin, err := s.BinaryPath(ctx, version)
	if err != nil {
		return "", err
	}
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s --version: %w", bin, err)
	}
	long, err := parseLongVersion(string(out))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.longVersion[version] = long
	s.mu.Unlock()
	return long, nil
}

func (s *SvmToolchain) binary(version string) string {
	return filepath.Join(s.dir, version, "solc-"+version)
}

// parseLongVersion extracts the build string from solc --version output
func parseLongVersion(output string) (string, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", fmt.Errorf("unrecognised solc --version output: %q", strings.TrimSpace(output))
	}
	return "v" + m[1], nil
}

func lessVersion(a, b string) bool {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < 3; i++ {
		x, _ := strconv.Atoi(pa[i])
		y, _ := strconv.Atoi(pb[i])
		if x != y {
			return x < y
		}
	}
	return false
}

// Ensure the adapter implements the interface
var _ usecase.CompilerToolchain = (*SvmToolchain)(nil)
