package bpe

import (
	"golang.org/x/sync/errgroup"
)

// minShardLen is the smallest number of pair positions a shard is given.
// Shorter sequences are counted on the calling goroutine.
const minShardLen = 1 << 15

// countPairs counts every adjacent ordered pair in seq.
func countPairs(seq []Symbol) map[Pair]int {
	counts := make(map[Pair]int)
	countRange(seq, 0, len(seq)-1, counts)
	return counts
}

// countRange adds the pairs starting at positions [lo, hi) to counts.
func countRange(seq []Symbol, lo, hi int, counts map[Pair]int) {
	for i := lo; i < hi; i++ {
		counts[Pair{seq[i], seq[i+1]}]++
	}
}

// countPairsSharded splits the pair positions of seq across up to shards
// goroutines and sums the partial counts.
func countPairsSharded(seq []Symbol, shards int) map[Pair]int {
	positions := len(seq) - 1
	if shards > positions/minShardLen {
		shards = positions / minShardLen
	}
	if shards <= 1 {
		return countPairs(seq)
	}

	partial := make([]map[Pair]int, shards)
	step := (positions + shards - 1) / shards

	var g errgroup.Group
	for s := range shards {
		lo := s * step
		hi := min(lo+step, positions)
		g.Go(func() error {
			m := make(map[Pair]int)
			countRange(seq, lo, hi, m)
			partial[s] = m
			return nil
		})
	}
	_ = g.Wait()

	counts := partial[0]
	for _, m := range partial[1:] {
		for p, c := range m {
			counts[p] += c
		}
	}
	return counts
}

// selectPair returns the most frequent pair. Ties go to the smallest pair
// in (First, Second) order so the result never depends on map iteration.
func selectPair(counts map[Pair]int) (Pair, int) {
	var (
		best      Pair
		bestCount int
	)
	for p, c := range counts {
		if c > bestCount || (c == bestCount && p.Less(best)) {
			best, bestCount = p, c
		}
	}
	return best, bestCount
}

// rewrite writes src into dst with every non-overlapping occurrence of p,
// scanned left to right, replaced by sym. dst must not alias src.
func rewrite(dst, src []Symbol, p Pair, sym Symbol) []Symbol {
	dst = dst[:0]
	for i := 0; i < len(src); {
		if i+1 < len(src) && src[i] == p.First && src[i+1] == p.Second {
			dst = append(dst, sym)
			i += 2
			continue
		}
		dst = append(dst, src[i])
		i++
	}
	return dst
}
