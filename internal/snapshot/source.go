// Package snapshot loads the immutable JSON snapshot documents the
// dashboard consumes: transactions, the department summary, the specialty
// allowlist and the forecast series. Snapshots are fetched once; the
// resulting Store is read-only.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot document names, as deposited by the upstream export batch.
const (
	TransactionsFile = "transactions.json"
	SummaryFile      = "summary.json"
	SpecialtyFile    = "specialty.json"
	ForecastFile     = "forecast.json"
)

// Source fetches one named snapshot document from wherever the upstream
// batch deposits them.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads snapshots from a local directory.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot dir %s: not a directory", dir)
	}
	return &DirSource{dir: dir}, nil
}

func (s *DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	return data, nil
}
