package registry

import "soundeck/internal/types"

// Board holds the current clip sequence together with a monotonically
// increasing revision. Every mutation and every load bumps the revision,
// which is what lets the sync engine tell a freshly loaded snapshot apart
// from a genuine local edit, even one that reproduces the loaded values.
type Board struct {
	clips    []types.Clip
	revision uint64
}

func NewBoard(clips []types.Clip) *Board {
	return &Board{clips: clips, revision: 1}
}

// Clips returns the current sequence. Callers must treat it as read-only
// and mutate through Apply.
func (b *Board) Clips() []types.Clip {
	return b.clips
}

// Revision identifies the current sequence instance.
func (b *Board) Revision() uint64 {
	return b.revision
}

// Apply replaces the sequence with the result of op and bumps the revision.
func (b *Board) Apply(op func(clips []types.Clip) []types.Clip) {
	b.clips = op(b.clips)
	b.revision++
}

// Load replaces the sequence with remotely loaded clips and returns the new
// revision, which the caller records as its clean snapshot.
func (b *Board) Load(clips []types.Clip) uint64 {
	b.clips = clips
	b.revision++
	return b.revision
}

func (b *Board) Len() int {
	return len(b.clips)
}
