package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vend/internal/adapters/fs"
	"go.trai.ch/vend/internal/core/domain"
)

func packageNames(pkgs []domain.VendorPackage) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Name)
	}
	return out
}

func TestScanner_NoVendorDirectory(t *testing.T) {
	pkgs, err := fs.NewScanner().Scan(t.TempDir(), domain.PhaseBuild)
	require.NoError(t, err)
	assert.Empty(t, pkgs)
}

func TestScanner_VendorIsAFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "vendor"), "not a directory")

	pkgs, err := fs.NewScanner().Scan(root, domain.PhaseBuild)
	require.NoError(t, err)
	assert.Empty(t, pkgs)
}

func TestScanner_WalkFindsPackageRoots(t *testing.T) {
	root := t.TempDir()
	vendor := filepath.Join(root, "vendor")

	// Known host depth: root even without Go files at that level.
	writeFile(t, filepath.Join(vendor, "github.com", "a", "b", "sub", "x.go"), "package sub")
	writeFile(t, filepath.Join(vendor, "github.com", "a", "b", "vendor", "github.com", "c", "d", "d.go"), "package d")
	writeFile(t, filepath.Join(vendor, "golang.org", "x", "text", "README"), "text")
	writeFile(t, filepath.Join(vendor, "gopkg.in", "yaml.v3", "yaml.go"), "package yaml")
	// Unknown host: root is the first directory holding Go files.
	writeFile(t, filepath.Join(vendor, "example.com", "lib", "lib.go"), "package lib")
	writeFile(t, filepath.Join(vendor, "example.com", "lib", "inner", "inner.go"), "package inner")
	// Test-only package.
	writeFile(t, filepath.Join(vendor, "example.com", "testonly", "x_test.go"), "package testonly")
	// Skipped directories.
	writeFile(t, filepath.Join(vendor, ".cache", "c.go"), "package c")
	writeFile(t, filepath.Join(vendor, "_old", "o.go"), "package o")
	writeFile(t, filepath.Join(vendor, "testdata", "t.go"), "package t")

	scanner := fs.NewScanner()

	pkgs, err := scanner.Scan(root, domain.PhaseBuild)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"example.com/lib",
		"github.com/a/b",
		"golang.org/x/text",
		"gopkg.in/yaml.v3",
	}, packageNames(pkgs))
	assert.Equal(t, filepath.Join(vendor, "example.com", "lib"), pkgs[0].Dir)

	pkgs, err = scanner.Scan(root, domain.PhaseTest)
	require.NoError(t, err)
	assert.Contains(t, packageNames(pkgs), "example.com/testonly")
}

func TestScanner_ModulesTxt(t *testing.T) {
	root := t.TempDir()
	vendor := filepath.Join(root, "vendor")

	writeFile(t, filepath.Join(vendor, "modules.txt"), `# github.com/z/z v1.0.0
## explicit; go 1.21
github.com/z/z
# example.com/a v0.1.0
## explicit
example.com/a
example.com/a/sub
# example.com/missing v0.2.0
# example.com/a v0.1.0
`)
	writeFile(t, filepath.Join(vendor, "github.com", "z", "z", "z.go"), "package z")
	writeFile(t, filepath.Join(vendor, "example.com", "a", "a.go"), "package a")
	// Not listed in modules.txt, so not a package root.
	writeFile(t, filepath.Join(vendor, "example.com", "extra", "e.go"), "package e")

	pkgs, err := fs.NewScanner().Scan(root, domain.PhaseBuild)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com/a", "github.com/z/z"}, packageNames(pkgs))
}

func TestScanner_ModulesTxtInvalidPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "vendor", "modules.txt"), "# ../escape v1.0.0\n")

	_, err := fs.NewScanner().Scan(root, domain.PhaseBuild)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVendorScanFailed)
}
