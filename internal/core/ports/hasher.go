package ports

// TreeHasher defines the interface for fingerprinting directory trees.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type TreeHasher interface {
	// HashTree computes a hash over the files below root.
	HashTree(root string) (string, error)
}
