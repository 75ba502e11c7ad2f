package api

import (
	"sync"

	"github.com/google/btree"

	"github.com/openalpha/amm-dex/api/types"
)

const btreeDegree = 32 // B-tree degree, affects node size and cache efficiency

// poolItem wraps a pool view for use in btree
// Implements btree.Item interface
type poolItem struct {
	poolID string
	pool   *types.Pool
}

// Less implements btree.Item interface - ascending order by pool ID
func (a *poolItem) Less(b btree.Item) bool {
	return a.poolID < b.(*poolItem).poolID
}

// PoolIndex keeps pool views ordered by pool ID so listings paginate with a
// stable cursor. All operations are O(log n).
type PoolIndex struct {
	tree *btree.BTree
	mu   sync.RWMutex
}

// NewPoolIndex creates an empty pool index
func NewPoolIndex() *PoolIndex {
	return &PoolIndex{
		tree: btree.New(btreeDegree),
	}
}

// Upsert adds or replaces a pool view
func (idx *PoolIndex) Upsert(pool *types.Pool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree.ReplaceOrInsert(&poolItem{poolID: pool.PoolID, pool: pool})
}

// Remove drops a pool from the index
func (idx *PoolIndex) Remove(poolID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree.Delete(&poolItem{poolID: poolID})
}

// Get returns the pool with the given ID, or nil if not indexed
func (idx *PoolIndex) Get(poolID string) *types.Pool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	item := idx.tree.Get(&poolItem{poolID: poolID})
	if item == nil {
		return nil
	}
	return item.(*poolItem).pool
}

// Len returns the number of indexed pools
func (idx *PoolIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Len()
}

// Page returns up to limit pools with IDs after the cursor, in ID order,
// plus the cursor for the next page. An empty cursor starts at the
// beginning; an empty next cursor means the listing is exhausted.
func (idx *PoolIndex) Page(cursor string, limit int) ([]*types.Pool, string) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	pools := make([]*types.Pool, 0, limit)
	iter := func(item btree.Item) bool {
		pi := item.(*poolItem)
		if pi.poolID == cursor {
			// AscendGreaterOrEqual includes the pivot itself
			return true
		}
		if len(pools) >= limit {
			return false
		}
		pools = append(pools, pi.pool)
		return true
	}

	if cursor == "" {
		idx.tree.Ascend(iter)
	} else {
		idx.tree.AscendGreaterOrEqual(&poolItem{poolID: cursor}, iter)
	}

	var nextCursor string
	if len(pools) == limit && limit > 0 {
		nextCursor = pools[len(pools)-1].PoolID
	}
	return pools, nextCursor
}

// All returns every indexed pool in ID order
func (idx *PoolIndex) All() []*types.Pool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	pools := make([]*types.Pool, 0, idx.tree.Len())
	idx.tree.Ascend(func(item btree.Item) bool {
		pools = append(pools, item.(*poolItem).pool)
		return true
	})
	return pools
}

// listFromIndex answers a pool listing request from the index. The
// controller filter walks all pools; unfiltered listings page through the
// tree directly.
func listFromIndex(idx *PoolIndex, req *types.ListPoolsRequest) *types.ListPoolsResponse {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	if req.Controller != "" {
		var pools []*types.Pool
		for _, pool := range idx.All() {
			if pool.Controller != req.Controller {
				continue
			}
			pools = append(pools, pool)
		}
		total := len(pools)
		if len(pools) > limit {
			pools = pools[:limit]
		}
		var nextCursor string
		if len(pools) == limit && total > limit {
			nextCursor = pools[len(pools)-1].PoolID
		}
		return &types.ListPoolsResponse{
			Pools:      pools,
			NextCursor: nextCursor,
			Total:      total,
		}
	}

	pools, nextCursor := idx.Page(req.Cursor, limit)
	return &types.ListPoolsResponse{
		Pools:      pools,
		NextCursor: nextCursor,
		Total:      idx.Len(),
	}
}
