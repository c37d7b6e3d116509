// Package container provides interfaces for managing container data structures.
// It supports JSON serialization and deserialization, allowing containers to
// convert their elements to and from JSON in a standardized manner.
package container

import "encoding/json"

// JSONCodec defines an interface for containers that support both JSON
// serialization and deserialization. It combines the Marshaler and Unmarshaler
// interfaces for convenience.
//
// This interface is optional and may be implemented as needed.
type JSONCodec interface {
	json.Marshaler
	json.Unmarshaler
}

// JSONSerializer defines the explicit (non-stdlib) half of a container's
// JSON support: a named ToJSON method containers can call directly,
// distinct from the json.Marshaler interface dispatched implicitly by
// encoding/json.
type JSONSerializer interface {
	// ToJSON serializes the container's elements into a JSON byte slice.
	ToJSON() ([]byte, error)
}

// JSONDeserializer defines the explicit (non-stdlib) half of a
// container's JSON support: a named FromJSON method that replaces the
// container's contents from a JSON byte slice.
type JSONDeserializer interface {
	// FromJSON replaces the container's contents with the data decoded
	// from the given JSON byte slice.
	FromJSON(data []byte) error
}
