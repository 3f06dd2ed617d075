// Package cache provides the bounded memo used for palette lookups.
//
// Nearest-color searches over brand palettes are linear in the palette size
// and repeat heavily for the same few colors, so results are memoised per
// palette:
//
//	m := cache.New[uint32, int](256)
//	idx := m.GetOrCreate(color, func() int { return search(color) })
//
// A Memo is safe for concurrent use and must not be copied after creation.
package cache
