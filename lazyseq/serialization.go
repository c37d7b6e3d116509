// Package lazyseq provides JSON serialization and deserialization for
// Sequence.
//
// This file extends Sequence with methods to convert to and from JSON
// format, implementing the container.JSONSerializer and
// container.JSONDeserializer interfaces.
package lazyseq

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qntx/lazyseq/container"
	"github.com/qntx/lazyseq/engine"
)

// --------------------------------------------------------------------------------
// Constants and Errors

// Predefined errors for JSON operations.
var (
	ErrMarshalJSONFailure   = errors.New("lazyseq: failed to marshal sequence to JSON")
	ErrUnmarshalJSONFailure = errors.New("lazyseq: failed to unmarshal JSON into sequence")
)

// --------------------------------------------------------------------------------
// Interface Assertions

var (
	_ container.JSONSerializer   = (*Sequence[int])(nil)
	_ container.JSONDeserializer = (*Sequence[int])(nil)
	_ json.Marshaler             = (*Sequence[int])(nil)
	_ json.Unmarshaler           = (*Sequence[int])(nil)
)

// --------------------------------------------------------------------------------
// JSON Serialization Methods

// ToJSON fully sorts the sequence (equivalent to GetSlice(0, Len(), 1))
// and serializes the result into a JSON array, so that a round trip
// through ToJSON/FromJSON always produces a canonical, sorted encoding
// regardless of how much of the sequence had already been queried.
//
// Time complexity: O(n log n) amortized over any prior queries.
func (s *Sequence[T]) ToJSON() ([]byte, error) {
	n := s.eng.Len()
	if n > 0 {
		if err := s.eng.SortRange(0, n); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMarshalJSONFailure, err)
		}
	}

	data, err := json.Marshal(s.eng.Array())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshalJSONFailure, err)
	}

	return data, nil
}

// FromJSON replaces the sequence's elements with those decoded from a
// JSON array, rebuilding the engine (and so discarding all pivots) with
// the same comparator and options the sequence was constructed with.
//
// Time complexity: O(n).
func (s *Sequence[T]) FromJSON(data []byte) error {
	var elems []T
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalJSONFailure, err)
	}

	eng, err := engine.NewWith(elems, s.cap, s.opts...)
	if err != nil {
		return err
	}

	s.eng = eng

	return nil
}

// MarshalJSON implements json.Marshaler, delegating to ToJSON.
func (s *Sequence[T]) MarshalJSON() ([]byte, error) {
	return s.ToJSON()
}

// UnmarshalJSON implements json.Unmarshaler, delegating to FromJSON.
func (s *Sequence[T]) UnmarshalJSON(data []byte) error {
	return s.FromJSON(data)
}
