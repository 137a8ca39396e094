package sink

import (
	"context"

	"github.com/wonny/kabuscan/internal/universe"
)

// fileUniverse decorates a Sink so the ticker list comes from a local
// file instead of the sink itself. Writes still go to the wrapped sink.
type fileUniverse struct {
	Sink
	path string
}

// WithFileUniverse overrides a sink's ticker source with a file.
func WithFileUniverse(s Sink, path string) Sink {
	return &fileUniverse{Sink: s, path: path}
}

func (f *fileUniverse) Tickers(ctx context.Context) ([]string, error) {
	return universe.LoadFile(f.path)
}
