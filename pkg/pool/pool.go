// Package pool provides object pooling to reduce GC pressure on the
// per-message scan paths
package pool

import (
	"sync"
)

// MapPool pools map[string]interface{} for JSON output
var MapPool = sync.Pool{
	New: func() interface{} {
		return make(map[string]interface{}, 8)
	},
}

// OffsetPool pools the []int offset maps rebuilt on every mention scan
var OffsetPool = sync.Pool{
	New: func() interface{} {
		return make([]int, 0, 512)
	},
}

// GetMap gets a cleared map from pool
func GetMap() map[string]interface{} {
	m := MapPool.Get().(map[string]interface{})
	for k := range m {
		delete(m, k)
	}
	return m
}

// PutMap returns a map to pool
func PutMap(m map[string]interface{}) {
	MapPool.Put(m)
}

// GetOffsets gets an empty offset buffer from pool
func GetOffsets() []int {
	return OffsetPool.Get().([]int)[:0]
}

// PutOffsets returns an offset buffer to pool
func PutOffsets(s []int) {
	OffsetPool.Put(s)
}
