package types

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AssessmentID identifies a persisted assessment. The remote store assigns
// the final value; until a remote write succeeds the record carries a local
// time-token ID from NewLocalAssessmentID.
type AssessmentID string

func (i AssessmentID) String() string {
	return string(i)
}

// IsLocal reports whether the ID is a locally assigned time token rather
// than a remote document ID.
func (i AssessmentID) IsLocal() bool {
	if i == "" {
		return false
	}
	_, err := strconv.ParseInt(string(i), 10, 64)
	return err == nil
}

// NewLocalAssessmentID returns a monotonically distinct time-based token
// used until the remote store assigns a document ID.
func NewLocalAssessmentID() AssessmentID {
	return AssessmentID(strconv.FormatInt(time.Now().UnixNano(), 10))
}

// SlotID is the stable internal key of a collection entry. The optimistic
// write path swaps a record's local ID for the remote ID by slot, so two
// records created within the same clock tick can never collide.
type SlotID string

func NewSlotID() SlotID {
	return SlotID(uuid.NewString())
}

func (s SlotID) String() string {
	return string(s)
}
