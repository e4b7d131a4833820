package ports

import "go.trai.ch/vend/internal/core/domain"

// VendorScanner lists the packages stored in a vendor directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type VendorScanner interface {
	// Scan returns the packages found in the vendor directory of rootDir,
	// sorted by name. A missing vendor directory yields no packages.
	Scan(rootDir string, phase domain.BuildPhase) ([]domain.VendorPackage, error)
}
