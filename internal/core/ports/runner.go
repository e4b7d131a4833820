package ports

import "context"

// CommandRunner runs external commands such as git or hg.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes name with args in dir and waits for it to finish.
	Run(ctx context.Context, dir, name string, args ...string) error
}
