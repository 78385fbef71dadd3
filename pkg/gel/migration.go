package gel

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// Sentinel errors for migration input validation.
var (
	// ErrNoFragments is returned when Migrate is called with no sample lengths.
	ErrNoFragments = errors.New("no sample fragments")

	// ErrNonPositiveLength is returned for a zero or negative fragment length.
	ErrNonPositiveLength = errors.New("fragment length must be a positive integer")
)

// Migrate computes normalized and real-world migration distances for the
// given sample lengths in base pairs.
//
// A control of 0 means no control fragment. When control is positive it
// participates in the min-max normalization together with the samples and is
// returned separately in Result.Control; by convention it is rendered in
// lane 1.
//
// When every fragment has the same mobility the normalized distance is fixed
// at 0.5 for all of them (real distance GelLengthCM/2). This is a policy
// choice, not physics: it keeps a single-band gel away from the degenerate
// 0/0 normalization.
func Migrate(lengths []int, control int) (Result, error) {
	if len(lengths) == 0 {
		return Result{}, ErrNoFragments
	}
	if control < 0 {
		return Result{}, fmt.Errorf("control: %w", ErrNonPositiveLength)
	}

	all := make([]int, 0, len(lengths)+1)
	all = append(all, lengths...)
	hasControl := control > 0
	if hasControl {
		all = append(all, control)
	}

	mobility := make(stats.Float64Data, len(all))
	for i, length := range all {
		if length <= 0 {
			return Result{}, fmt.Errorf("fragment %d (%d bp): %w", i+1, length, ErrNonPositiveLength)
		}
		mobility[i] = 1.0 / (float64(length) + epsilon)
	}

	// mobility is non-empty here, so Min/Max cannot fail.
	minMob, err := stats.Min(mobility)
	if err != nil {
		return Result{}, fmt.Errorf("mobility min: %w", err)
	}
	maxMob, err := stats.Max(mobility)
	if err != nil {
		return Result{}, fmt.Errorf("mobility max: %w", err)
	}

	bands := make([]Band, len(all))
	for i, m := range mobility {
		norm := 0.5
		if maxMob != minMob {
			norm = (m - minMob) / (maxMob - minMob)
		}
		bands[i] = Band{
			LengthBP: all[i],
			Norm:     norm,
			RealCM:   GelLengthCM * (1 - norm),
		}
	}

	res := Result{Samples: bands}
	if hasControl {
		last := bands[len(bands)-1]
		res.Samples = bands[:len(bands)-1]
		res.Control = &last
	}
	return res, nil
}
