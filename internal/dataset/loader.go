package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"hrdash/internal"
	"hrdash/internal/errors"
	"hrdash/ports"
)

// Loader reads the employee table once per process. The first Load call does
// the I/O; every later call returns the same *Table (or the same error).
type Loader struct {
	source ports.TableSourcePort
	logger *internal.Logger

	once  sync.Once
	table *Table
	err   error
	reads atomic.Int32
}

// NewLoader creates a loader over a table source
func NewLoader(source ports.TableSourcePort, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{source: source, logger: logger.With("Loader")}
}

// Load returns the cached table, reading the source on first use
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	l.once.Do(func() {
		l.table, l.err = l.read(ctx)
	})
	return l.table, l.err
}

// Reads reports how many times the source was read (0 or 1)
func (l *Loader) Reads() int {
	return int(l.reads.Load())
}

func (l *Loader) read(ctx context.Context) (*Table, error) {
	start := time.Now()
	l.reads.Add(1)

	raw, err := l.source.ReadTable(ctx)
	if err != nil {
		l.logger.Error("failed to read %s: %v", l.source.Describe(), err)
		return nil, errors.DataUnavailable("failed to read "+l.source.Describe(), err)
	}

	table, err := NewTable(raw, l.source.Describe())
	if err != nil {
		l.logger.Error("rejected %s: %v", l.source.Describe(), err)
		return nil, err
	}

	l.logger.Info("loaded %d employees x %d columns from %s in %.2fms (fingerprint %s)",
		table.Len(), len(table.Columns()), l.source.Describe(),
		float64(time.Since(start).Nanoseconds())/1e6, table.Hash().Short())
	return table, nil
}
