package encoder

import "sync/atomic"

// SnapshotContainer publishes the latest encoded scene buffer to readers.
// The encoder is the single writer, publishing a complete buffer before a
// frame begins; pixel tasks only ever observe fully written buffers.
type SnapshotContainer struct {
	latest atomic.Pointer[SceneBuffer]
}

// Publish replaces the current snapshot
func (c *SnapshotContainer) Publish(buf *SceneBuffer) {
	c.latest.Store(buf)
}

// Latest returns the most recently published snapshot, or nil if no frame
// has been encoded yet
func (c *SnapshotContainer) Latest() *SceneBuffer {
	return c.latest.Load()
}
