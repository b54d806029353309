package store

import (
	"fmt"
	"strings"
)

// CorruptError reports stored records whose JSON payload could not be
// decoded. List operations return it alongside the records that did decode,
// so callers can warn the user instead of silently losing data.
type CorruptError struct {
	Collection string
	IDs        []string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("collection %s has %d corrupt record(s): %s",
		e.Collection, len(e.IDs), strings.Join(e.IDs, ", "))
}

// corruptOrNil returns a *CorruptError when any ids were collected, else nil.
// Returning the concrete type directly would make the error interface non-nil
// even when empty.
func corruptOrNil(collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return &CorruptError{Collection: collection, IDs: ids}
}
