// Package testutil provides deterministic random sources for tests.
package testutil

import "errors"

// FixedSource always returns the same uniform value and index 0.
type FixedSource struct {
	Value float64
}

func (s *FixedSource) Float64() (float64, error) { return s.Value, nil }
func (s *FixedSource) IntN(n int) (int, error)   { return 0, nil }

// SequenceSource cycles through preset float and int draws, so a test can
// script an exact run.
type SequenceSource struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (s *SequenceSource) Float64() (float64, error) {
	if len(s.Floats) == 0 {
		return 0, nil
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v, nil
}

func (s *SequenceSource) IntN(n int) (int, error) {
	if len(s.Ints) == 0 {
		return 0, nil
	}
	v := s.Ints[s.ii%len(s.Ints)] % n
	s.ii++
	return v, nil
}

// ErrRandFailed is returned by FailingSource.
var ErrRandFailed = errors.New("random source failed")

// FailingSource simulates a corrupt random source; every draw errors.
type FailingSource struct{}

func (s *FailingSource) Float64() (float64, error) { return 0, ErrRandFailed }
func (s *FailingSource) IntN(n int) (int, error)   { return 0, ErrRandFailed }
