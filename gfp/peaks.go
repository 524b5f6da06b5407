package gfp

import (
	"fmt"
	"sort"
)

// FindPeaks returns the indices of the local maxima of signal that survive
// the minimum-distance constraint, in ascending order. A flat plateau
// counts as one maximum at its midpoint (rounded down), and the first and
// last samples never qualify. Whenever two maxima lie closer than
// minDistance samples, the smaller one is dropped.
func FindPeaks(signal []float64, minDistance int) ([]int, error) {
	if minDistance < 1 {
		return nil, fmt.Errorf("%w: %d", ErrPeakDistance, minDistance)
	}
	peaks := localMaxima(signal)
	if minDistance > 1 {
		peaks = selectByDistance(signal, peaks, minDistance)
	}
	return peaks, nil
}

// localMaxima scans for strictly-rising to strictly-falling transitions.
// Runs of equal values collapse to the midpoint of the run.
func localMaxima(signal []float64) []int {
	var peaks []int
	i := 1
	last := len(signal) - 1
	for i < last {
		if signal[i-1] < signal[i] {
			ahead := i + 1
			for ahead < last && signal[ahead] == signal[i] {
				ahead++
			}
			if signal[ahead] < signal[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
			}
		}
		i++
	}
	return peaks
}

// selectByDistance visits peaks from highest to lowest and removes every
// neighbor closer than distance. peaks must be ascending.
func selectByDistance(signal []float64, peaks []int, distance int) []int {
	n := len(peaks)
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return signal[peaks[order[a]]] < signal[peaks[order[b]]]
	})

	for i := n - 1; i >= 0; i-- {
		j := order[i]
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < n && peaks[k]-peaks[j] < distance; k++ {
			keep[k] = false
		}
	}

	kept := make([]int, 0, n)
	for i, p := range peaks {
		if keep[i] {
			kept = append(kept, p)
		}
	}
	return kept
}
