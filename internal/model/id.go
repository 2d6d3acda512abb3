package model

import "github.com/oklog/ulid/v2"

// NewID returns a session ID. ULIDs sort by creation time, which keeps
// session listings stable for equal timestamps.
func NewID() string {
	return ulid.Make().String()
}
