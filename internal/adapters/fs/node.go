package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dts/internal/core/ports"
)

const (
	// FileSystemNodeID is the unique identifier for the filesystem Graft node.
	FileSystemNodeID graft.ID = "adapter.fs"
	// WriterNodeID is the unique identifier for the output writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewOSFS(), nil
		},
	})

	graft.Register(graft.Node[ports.OutputWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputWriter, error) {
			return NewWriter(), nil
		},
	})
}
