// Package uid provides unique ID generators: snowflake numbers for database
// primary keys, UUIDs for correlation IDs, and object IDs for opaque tokens.
package uid

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
