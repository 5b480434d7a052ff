package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dts/internal/adapters/detector"
	"go.trai.ch/dts/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return newForEnvironment(detector.DetectEnvironment()), nil
		},
	})
}

// newForEnvironment creates a logger whose format matches the detected environment until the
// build command applies --log-format, so that failures before that point are formatted alike.
func newForEnvironment(format detector.LogFormat) *Logger {
	l := New().(*Logger)
	if format == detector.FormatJSON {
		l.SetJSON(true)
	}
	return l
}
