package fs

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/mod/module"
)

const modulesTxt = "modules.txt"

// hostDepth is the number of path segments of a repository root on well-known code hosts.
var hostDepth = map[string]int{
	"github.com":    3,
	"gitlab.com":    3,
	"bitbucket.org": 3,
	"golang.org":    3,
	"gopkg.in":      2,
}

// Scanner implements ports.VendorScanner on the local file system.
type Scanner struct{}

var _ ports.VendorScanner = (*Scanner)(nil)

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns the package roots found in the vendor directory of rootDir.
//
// When vendor/modules.txt exists the modules it lists are the package roots.
// Otherwise the vendor directory is walked and a directory is a package root
// when it holds Go files or sits at the repository depth of a known code host.
func (s *Scanner) Scan(rootDir string, phase domain.BuildPhase) ([]domain.VendorPackage, error) {
	vendorDir := filepath.Join(rootDir, domain.VendorDirectory)

	info, err := os.Stat(vendorDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrVendorScanFailed, err), "dir", vendorDir)
	}
	if !info.IsDir() {
		return nil, nil
	}

	pkgs, found, err := s.scanModulesTxt(vendorDir)
	if err != nil {
		return nil, err
	}
	if !found {
		pkgs, err = s.walk(vendorDir, phase)
		if err != nil {
			return nil, err
		}
	}

	slices.SortFunc(pkgs, func(a, b domain.VendorPackage) int {
		return strings.Compare(a.Name, b.Name)
	})
	return pkgs, nil
}

// scanModulesTxt reads the module list written by "go mod vendor".
func (s *Scanner) scanModulesTxt(vendorDir string) ([]domain.VendorPackage, bool, error) {
	p := filepath.Join(vendorDir, modulesTxt)
	f, err := os.Open(p) //nolint:gosec // Path is built from the dependency root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(errors.Join(domain.ErrVendorScanFailed, err), "file", p)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	var (
		pkgs []domain.VendorPackage
		seen = make(map[string]struct{})
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		// Module lines look like "# path version"; "## explicit" lines carry annotations.
		if len(fields) < 2 || fields[0] != "#" {
			continue
		}
		name := fields[1]
		if _, dup := seen[name]; dup {
			continue
		}
		if err := module.CheckImportPath(name); err != nil {
			return nil, false, zerr.With(errors.Join(domain.ErrVendorScanFailed, err), "module", name)
		}
		dir := filepath.Join(vendorDir, filepath.FromSlash(name))
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			continue
		}
		seen[name] = struct{}{}
		pkgs = append(pkgs, domain.VendorPackage{Name: name, Dir: dir})
	}
	if err := sc.Err(); err != nil {
		return nil, false, zerr.With(errors.Join(domain.ErrVendorScanFailed, err), "file", p)
	}
	return pkgs, true, nil
}

// walk discovers package roots by walking the vendor directory.
func (s *Scanner) walk(vendorDir string, phase domain.BuildPhase) ([]domain.VendorPackage, error) {
	var pkgs []domain.VendorPackage

	err := filepath.WalkDir(vendorDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == vendorDir {
			return nil
		}
		if skipDir(d.Name()) {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(vendorDir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		root, err := isPackageRoot(p, name, phase)
		if err != nil {
			return err
		}
		if !root {
			return nil
		}

		pkgs = append(pkgs, domain.VendorPackage{Name: name, Dir: p})
		return filepath.SkipDir
	})
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrVendorScanFailed, err), "dir", vendorDir)
	}
	return pkgs, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata"
}

func isPackageRoot(dir, name string, phase domain.BuildPhase) (bool, error) {
	segments := strings.Split(name, "/")
	if depth, ok := hostDepth[segments[0]]; ok {
		if segments[0] == "golang.org" && (len(segments) < 2 || segments[1] != "x") {
			return hasGoFiles(dir, phase)
		}
		if len(segments) == depth {
			return true, nil
		}
		if len(segments) < depth {
			return false, nil
		}
	}
	return hasGoFiles(dir, phase)
}

func hasGoFiles(dir string, phase domain.BuildPhase) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".go" {
			continue
		}
		if strings.HasSuffix(e.Name(), "_test.go") && phase != domain.PhaseTest {
			continue
		}
		return true, nil
	}
	return false, nil
}
