package layout

import "github.com/matzehuels/dockyard/pkg/scene"

// Container is the host-owned slot a surface's table is mounted into.
type Container interface {
	Mount(t *scene.Table)
	Unmount(t *scene.Table)
}

// Slot is a minimal [Container] that holds at most one table. Hosts embed it
// in their panel chrome; tests use it directly.
type Slot struct {
	table *scene.Table
}

// Mount implements Container.
func (s *Slot) Mount(t *scene.Table) { s.table = t }

// Unmount implements Container. Unmounting a table that is not mounted is a
// no-op.
func (s *Slot) Unmount(t *scene.Table) {
	if s.table == t {
		s.table = nil
	}
}

// Table returns the mounted table, or nil.
func (s *Slot) Table() *scene.Table { return s.table }
