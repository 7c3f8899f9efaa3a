package toolchain

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// installSolc creates <dir>/<version>/solc-<version> as an executable script
func installSolc(t *testing.T, dir, version, script string) {
	t.Helper()
	vdir := filepath.Join(dir, version)
	require.NoError(t, os.MkdirAll(vdir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(vdir, "solc-"+version), []byte("#!/bin/sh\n"+script+"\n"), 0755))
}

func newToolchain(dir string) *SvmToolchain {
	cfg := &config.RuntimeConfig{Project: &config.ProjectConfig{Toolchain: config.ToolchainConfig{SvmDir: dir}}}
	return NewSvmToolchain(cfg, discardLogger())
}

func TestSvmToolchain_InstalledVersions(t *testing.T) {
	dir := t.TempDir()
	installSolc(t, dir, "0.8.10", "exit 0")
	installSolc(t, dir, "0.7.1", "exit 0")
	installSolc(t, dir, "0.8.4", "exit 0")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "0.6.12"), 0755)) // no binary
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".global-version"), 0755))

	versions, err := newToolchain(dir).InstalledVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0.7.1", "0.8.4", "0.8.10"}, versions)
}

func TestSvmToolchain_MissingDir(t *testing.T) {
	versions, err := newToolchain(filepath.Join(t.TempDir(), "nope")).InstalledVersions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestSvmToolchain_BinaryPath(t *testing.T) {
	dir := t.TempDir()
	installSolc(t, dir, "0.7.1", "exit 0")
	tc := newToolchain(dir)

	bin, err := tc.BinaryPath(context.Background(), "0.7.1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "0.7.1", "solc-0.7.1"), bin)

	_, err = tc.BinaryPath(context.Background(), "0.8.0")
	assert.ErrorIs(t, err, domain.ErrToolchainMissingVersion)
}

func TestSvmToolchain_LongVersion(t *testing.T) {
	dir := t.TempDir()
	installSolc(t, dir, "0.7.1", `echo "solc, the solidity compiler commandline interface"; echo "Version: 0.7.1+commit.f4a555be.Linux.g++"`)

	long, err := newToolchain(dir).LongVersion(context.Background(), "0.7.1")
	require.NoError(t, err)
	assert.Equal(t, "v0.7.1+commit.f4a555be", long)
}

func TestParseLongVersion(t *testing.T) {
	_, err := parseLongVersion("garbage")
	assert.Error(t, err)

	long, err := parseLongVersion("Version: 0.8.4+commit.c7e474f2.Darwin.appleclang")
	require.NoError(t, err)
	assert.Equal(t, "v0.8.4+commit.c7e474f2", long)
}
