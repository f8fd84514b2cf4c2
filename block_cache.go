package frost

import (
	"sync/atomic"

	"github.com/gogpu/frost/internal/cache"
)

type cachedBlock struct {
	component VisualComponent
	screen    Vec2
	block     ParameterBlock
}

// BlockCache keeps the last ParameterBlock built for each component id and
// rebuilds it only when the component or the screen size changed.
//
// BlockCache is safe for concurrent use.
type BlockCache struct {
	entries *cache.Cache[string, cachedBlock]

	reused  atomic.Uint64
	rebuilt atomic.Uint64
}

// NewBlockCache returns a cache holding at most capacity blocks; zero or
// less means unlimited.
func NewBlockCache(capacity int) *BlockCache {
	return &BlockCache{entries: cache.New[string, cachedBlock](capacity)}
}

// Block returns the block for c, reusing the cached one when c is unchanged
// since the last call with the same id.
func (bc *BlockCache) Block(id string, c *VisualComponent, screen Vec2) ParameterBlock {
	if e, ok := bc.entries.Get(id); ok && e.screen == screen && e.component.Equal(c) {
		bc.reused.Add(1)
		return e.block
	}
	bc.rebuilt.Add(1)
	b := NewParameterBlock(c, screen)
	bc.entries.Put(id, cachedBlock{component: *c, screen: screen, block: b})
	return b
}

// Invalidate drops the cached block for id.
func (bc *BlockCache) Invalidate(id string) {
	bc.entries.Delete(id)
}

// Len returns the number of cached blocks.
func (bc *BlockCache) Len() int {
	return bc.entries.Len()
}

// Stats returns how many blocks were reused and how many were built.
func (bc *BlockCache) Stats() (reused, rebuilt uint64) {
	return bc.reused.Load(), bc.rebuilt.Load()
}
