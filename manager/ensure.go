package manager

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/vfs/core"
)

// maxConcurrentCreates bounds the directory trees created at once.
const maxConcurrentCreates = 4

// EnsureDirectories creates every writable directory of the layout that
// does not exist yet. Trees are created concurrently; the first failure
// cancels the trees not yet started and is returned.
func (m *Manager) EnsureDirectories(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCreates)

	for _, dir := range m.layout.WritableDirectories() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := core.DirectoryTreeCreate(m.backend, dir); err != nil {
				return err
			}
			m.logger.Debug("directory ensured", zap.String("path", dir))
			return nil
		})
	}

	return g.Wait()
}
