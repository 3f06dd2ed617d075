package stitch

import (
	"math"

	"github.com/gogpu/stitch/internal/cache"
)

// NearestColorIndex returns the index of the thread in palette whose color
// is closest to c under ColorDistanceRedMean, or -1 if palette is empty.
// Ties resolve to the later entry.
func NearestColorIndex(c uint32, palette []Thread) int {
	return nearestMasked(c, palette, nil)
}

// nearestMasked is NearestColorIndex skipping entries where used[i] is true.
func nearestMasked(c uint32, palette []Thread, used []bool) int {
	best := -1
	bestDist := math.MaxInt
	for i, t := range palette {
		if used != nil && used[i] {
			continue
		}
		d := ColorDistanceRedMean(c, t.Color)
		if d <= bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Palette is a fixed machine thread chart with memoised nearest-color lookup.
// Format writers that store thread indices into a brand chart use it to map
// arbitrary pattern threads onto the chart.
type Palette struct {
	threads []Thread
	nearest *cache.Memo[uint32, int]
}

// NewPalette creates a palette over a copy of threads.
func NewPalette(threads []Thread) *Palette {
	return &Palette{
		threads: append([]Thread(nil), threads...),
		nearest: cache.New[uint32, int](1024),
	}
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int { return len(p.threads) }

// Thread returns the palette entry at index i.
func (p *Palette) Thread(i int) Thread { return p.threads[i] }

// Nearest returns the index of the palette entry closest to c, or -1 if the
// palette is empty.
func (p *Palette) Nearest(c uint32) int {
	c &= 0xFFFFFF
	return p.nearest.GetOrCreate(c, func() int {
		return NearestColorIndex(c, p.threads)
	})
}

// PaletteStats reports how nearest-color lookups were served.
type PaletteStats struct {
	Cached int    // colors currently memoised
	Hits   uint64 // lookups answered from the memo
	Misses uint64 // lookups that searched the palette
}

// Stats returns the lookup counters of p.
func (p *Palette) Stats() PaletteStats {
	s := p.nearest.Stats()
	return PaletteStats{Cached: s.Len, Hits: s.Hits, Misses: s.Misses}
}

// Build maps every thread to its nearest palette index.
func (p *Palette) Build(threads []Thread) []int {
	out := make([]int, len(threads))
	for i, t := range threads {
		out[i] = p.Nearest(t.Color)
	}
	return out
}

// BuildUnique maps threads so that distinct threads claim distinct palette
// entries while the palette has room. Each distinct thread, in first-seen
// order, reserves its nearest free entry; every thread then maps to the
// nearest reserved entry.
func (p *Palette) BuildUnique(threads []Thread) []int {
	used := make([]bool, len(p.threads))
	chart := make([]Thread, 0, len(p.threads))
	chartIndex := make([]int, 0, len(p.threads))
	seen := make(map[Thread]bool, len(threads))
	for _, t := range threads {
		if seen[t] {
			continue
		}
		seen[t] = true
		idx := nearestMasked(t.Color, p.threads, used)
		if idx < 0 {
			break
		}
		used[idx] = true
		chart = append(chart, t)
		chartIndex = append(chartIndex, idx)
	}

	out := make([]int, len(threads))
	for i, t := range threads {
		j := NearestColorIndex(t.Color, chart)
		if j < 0 {
			out[i] = -1
			continue
		}
		out[i] = chartIndex[j]
	}
	return out
}

// BuildNonRepeat maps threads so that two different consecutive threads
// never share a palette index, which would make the color change invisible.
func (p *Palette) BuildNonRepeat(threads []Thread) []int {
	out := make([]int, len(threads))
	last := -1
	var lastThread Thread
	for i, t := range threads {
		idx := p.Nearest(t.Color)
		if i > 0 && idx == last && t != lastThread {
			used := make([]bool, len(p.threads))
			used[idx] = true
			if alt := nearestMasked(t.Color, p.threads, used); alt >= 0 {
				idx = alt
			}
		}
		out[i] = idx
		last = idx
		lastThread = t
	}
	return out
}
