package keeper

import (
	"encoding/binary"
	"sort"
	"sync"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/huandu/skiplist"
)

// scheduleLevel holds every smart pool whose gradual update ends at the same
// block. IDs stay sorted so iteration order matches a rebuild from the store.
type scheduleLevel struct {
	EndBlock     int64
	SmartPoolIDs []string
}

func (l *scheduleLevel) add(smartPoolID string) {
	for _, id := range l.SmartPoolIDs {
		if id == smartPoolID {
			return
		}
	}
	l.SmartPoolIDs = append(l.SmartPoolIDs, smartPoolID)
	sort.Strings(l.SmartPoolIDs)
}

func (l *scheduleLevel) remove(smartPoolID string) {
	for i, id := range l.SmartPoolIDs {
		if id == smartPoolID {
			l.SmartPoolIDs = append(l.SmartPoolIDs[:i], l.SmartPoolIDs[i+1:]...)
			return
		}
	}
}

func (l *scheduleLevel) isEmpty() bool {
	return len(l.SmartPoolIDs) == 0
}

// blockKeyAsc is a comparator for ascending block order
type blockKeyAsc struct{}

func (k blockKeyAsc) Compare(lhs, rhs interface{}) int {
	l := lhs.(int64)
	r := rhs.(int64)
	if l < r {
		return -1
	}
	if l > r {
		return 1
	}
	return 0
}

func (k blockKeyAsc) CalcScore(key interface{}) float64 {
	return float64(key.(int64))
}

// updateSchedule is an in-memory index of smart pools with an active gradual
// weight update, ordered by end block. It is a cache over the ScheduleKeyPrefix
// records: rebuilt lazily after a restart, advisory otherwise. Pokes always
// consult the persisted smart pool record, so a stale entry costs one no-op.
type updateSchedule struct {
	list  *skiplist.SkipList
	ready bool
	mu    sync.RWMutex
}

func newUpdateSchedule() *updateSchedule {
	return &updateSchedule{
		list: skiplist.New(blockKeyAsc{}),
	}
}

// add inserts a smart pool under its update end block - O(log n)
func (s *updateSchedule) add(endBlock int64, smartPoolID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem := s.list.Get(endBlock)
	var level *scheduleLevel
	if elem != nil {
		level = elem.Value.(*scheduleLevel)
	} else {
		level = &scheduleLevel{EndBlock: endBlock}
		s.list.Set(endBlock, level)
	}
	level.add(smartPoolID)
}

// remove drops a smart pool from its end block level - O(log n)
func (s *updateSchedule) remove(endBlock int64, smartPoolID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem := s.list.Get(endBlock)
	if elem == nil {
		return
	}
	level := elem.Value.(*scheduleLevel)
	level.remove(smartPoolID)
	if level.isEmpty() {
		s.list.Remove(endBlock)
	}
}

// scheduledUpdate pairs a smart pool with its update end block.
type scheduledUpdate struct {
	EndBlock    int64
	SmartPoolID string
}

// active returns every scheduled update in end-block order. Updates in
// flight are poked each block, so the whole index is the due set.
func (s *updateSchedule) active() []scheduledUpdate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []scheduledUpdate
	for elem := s.list.Front(); elem != nil; elem = elem.Next() {
		level := elem.Value.(*scheduleLevel)
		for _, id := range level.SmartPoolIDs {
			entries = append(entries, scheduledUpdate{EndBlock: level.EndBlock, SmartPoolID: id})
		}
	}
	return entries
}

func (s *updateSchedule) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *updateSchedule) markReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// reset drops the cache so the next use rebuilds from the store
func (s *updateSchedule) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = skiplist.New(blockKeyAsc{})
	s.ready = false
}

// ============ Keeper Schedule Index ============

// scheduleKey builds the persisted index key: prefix | big-endian end block |
// smart pool ID. Iteration order is end block then ID.
func scheduleKey(endBlock int64, smartPoolID string) []byte {
	key := make([]byte, 0, len(ScheduleKeyPrefix)+8+len(smartPoolID))
	key = append(key, ScheduleKeyPrefix...)
	var block [8]byte
	binary.BigEndian.PutUint64(block[:], uint64(endBlock))
	key = append(key, block[:]...)
	key = append(key, []byte(smartPoolID)...)
	return key
}

// scheduleUpdate records an active gradual update in the store index and the
// in-memory schedule.
func (k *Keeper) scheduleUpdate(ctx sdk.Context, smartPoolID string, endBlock int64) {
	k.ensureSchedule(ctx)
	store := k.GetStore(ctx)
	store.Set(scheduleKey(endBlock, smartPoolID), []byte(smartPoolID))
	k.schedule.add(endBlock, smartPoolID)
}

// unscheduleUpdate removes a gradual update from the store index and the
// in-memory schedule.
func (k *Keeper) unscheduleUpdate(ctx sdk.Context, smartPoolID string, endBlock int64) {
	store := k.GetStore(ctx)
	store.Delete(scheduleKey(endBlock, smartPoolID))
	k.schedule.remove(endBlock, smartPoolID)
}

// ensureSchedule rebuilds the in-memory schedule from the persisted index
// after a restart. No-op once ready.
func (k *Keeper) ensureSchedule(ctx sdk.Context) {
	if k.schedule.isReady() {
		return
	}

	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, ScheduleKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		if len(key) < len(ScheduleKeyPrefix)+8 {
			continue
		}
		endBlock := int64(binary.BigEndian.Uint64(key[len(ScheduleKeyPrefix) : len(ScheduleKeyPrefix)+8]))
		k.schedule.add(endBlock, string(iterator.Value()))
	}
	k.schedule.markReady()
}

// activeUpdates returns the scheduled gradual updates, ordered by end block
// then smart pool ID.
func (k *Keeper) activeUpdates(ctx sdk.Context) []scheduledUpdate {
	k.ensureSchedule(ctx)
	return k.schedule.active()
}
