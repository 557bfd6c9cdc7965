package corpus

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidRatio is returned for split ratios outside [0,1] or summing
// above 1.
var ErrInvalidRatio = errors.New("invalid split ratio")

// SplitOptions controls Split. The test share is whatever train and
// validation leave over.
type SplitOptions struct {
	Seed       uint64
	TrainRatio float64
	ValRatio   float64
}

// DefaultSplitOptions returns the 80/10/10 split with seed 42.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{Seed: 42, TrainRatio: 0.8, ValRatio: 0.1}
}

// Validate checks the ratios.
func (o SplitOptions) Validate() error {
	if o.TrainRatio < 0 || o.TrainRatio > 1 || math.IsNaN(o.TrainRatio) {
		return fmt.Errorf("%w: train ratio %v", ErrInvalidRatio, o.TrainRatio)
	}
	if o.ValRatio < 0 || o.ValRatio > 1 || math.IsNaN(o.ValRatio) {
		return fmt.Errorf("%w: validation ratio %v", ErrInvalidRatio, o.ValRatio)
	}
	if o.TrainRatio+o.ValRatio > 1 {
		return fmt.Errorf("%w: train %v + validation %v exceeds 1", ErrInvalidRatio, o.TrainRatio, o.ValRatio)
	}
	return nil
}

// Partition holds three disjoint subsequences of the input lines.
type Partition struct {
	Train []string
	Val   []string
	Test  []string
}

// Len returns the total number of lines across the partitions.
func (p Partition) Len() int {
	return len(p.Train) + len(p.Val) + len(p.Test)
}

// Split shuffles a copy of lines with a PCG source seeded from opts.Seed
// and cuts it at floor(TrainRatio*n) and floor(TrainRatio*n)+floor(ValRatio*n).
// The same lines and options always give the same partition. Small inputs
// may leave some partitions empty.
func Split(lines []string, opts SplitOptions) (Partition, error) {
	if err := opts.Validate(); err != nil {
		return Partition{}, err
	}

	shuffled := append([]string(nil), lines...)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	trainEnd := min(int(math.Floor(opts.TrainRatio*float64(n))), n)
	valEnd := min(trainEnd+int(math.Floor(opts.ValRatio*float64(n))), n)

	// Full-capacity slicing keeps appends on one partition from
	// overwriting the next.
	return Partition{
		Train: shuffled[:trainEnd:trainEnd],
		Val:   shuffled[trainEnd:valEnd:valEnd],
		Test:  shuffled[valEnd:],
	}, nil
}
