package scan

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/droverhq/drover/internal/ctxutil"
)

// MultiScanner runs several scanners concurrently and merges their findings.
type MultiScanner struct {
	scanners []DiffScanner
}

// Ensure MultiScanner implements DiffScanner.
var _ DiffScanner = (*MultiScanner)(nil)

// NewMultiScanner creates a MultiScanner over the given scanners.
func NewMultiScanner(scanners ...DiffScanner) *MultiScanner {
	return &MultiScanner{scanners: scanners}
}

// NewDefaultScanner creates the standard review scanner: secrets,
// injection phrasing, and external URLs.
func NewDefaultScanner() *MultiScanner {
	return NewMultiScanner(
		NewSecretScanner(),
		NewInjectionScanner(),
		NewURLScanner(),
	)
}

// Name identifies the scanner in reports.
func (m *MultiScanner) Name() string {
	return "multi"
}

// Scan fans the diff out to every scanner and merges the results. The merged
// order is deterministic: blocking findings first, then by rule name, so
// reports are stable across runs regardless of scheduling.
func (m *MultiScanner) Scan(ctx context.Context, diff string) ([]Finding, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var merged []Finding

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range m.scanners {
		g.Go(func() error {
			findings, err := s.Scan(gctx, diff)
			if err != nil {
				return err
			}
			mu.Lock()
			merged = append(merged, findings...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Severity != merged[j].Severity {
			return merged[i].Severity == SeverityBlock
		}
		return merged[i].Rule < merged[j].Rule
	})
	return merged, nil
}
