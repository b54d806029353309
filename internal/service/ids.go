package service

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// newRecordID returns the timestamp-derived id used for top-level records.
func newRecordID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// newNestedID returns an id for entities living inside a record (areas,
// items, photos, properties, service lines). Several of these are created
// within the same millisecond, so timestamps would collide.
func newNestedID() string {
	return uuid.NewString()
}

func today() string {
	return time.Now().Format("2006-01-02")
}
