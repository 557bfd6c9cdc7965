package tokenizer

import (
	"github.com/emirpasic/gods/trees/binaryheap"
)

// TokenCount is a token and the number of times it occurred.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// TopTokens returns the n most frequent tokens, most frequent first. Equal
// counts are ordered by token so the result is stable across runs.
func TopTokens(tokens []string, n int) []TokenCount {
	if n <= 0 || len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}

	heap := binaryheap.NewWith(byFrequency)
	for tok, c := range counts {
		heap.Push(TokenCount{Token: tok, Count: c})
	}

	top := make([]TokenCount, 0, min(n, len(counts)))
	for len(top) < n {
		v, ok := heap.Pop()
		if !ok {
			break
		}
		top = append(top, v.(TokenCount))
	}
	return top
}

func byFrequency(a, b interface{}) int {
	x, y := a.(TokenCount), b.(TokenCount)
	switch {
	case x.Count > y.Count:
		return -1
	case x.Count < y.Count:
		return 1
	case x.Token < y.Token:
		return -1
	case x.Token > y.Token:
		return 1
	default:
		return 0
	}
}
