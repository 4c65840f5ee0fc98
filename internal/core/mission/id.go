// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import (
	"fmt"
	"strconv"
	"strings"
)

const idPrefix = "MISSION-"

// MaxMissionNumber is the largest sequence number ParseMissionNumber accepts.
// Larger numbers are treated as opaque ids so the sequence can never overflow.
const MaxMissionNumber = 999_999_999

// GenerateMissionID generates a mission ID from the current max number.
// This is a pure function that defines the ID format as a business rule.
// The format is MISSION-XXX where XXX is a zero-padded 3-digit number.
func GenerateMissionID(currentMax int) string {
	return fmt.Sprintf("%s%03d", idPrefix, currentMax+1)
}

// TokenMissionID builds a mission ID around an opaque collision-resistant token.
func TokenMissionID(token string) string {
	return idPrefix + token
}

// ParseMissionNumber extracts the numeric portion from a sequential mission ID.
// Returns -1 if the ID is not of the MISSION-<digits> form or exceeds MaxMissionNumber.
func ParseMissionNumber(id string) int {
	suffix, ok := strings.CutPrefix(id, idPrefix)
	if !ok || suffix == "" {
		return -1
	}
	num, err := strconv.Atoi(suffix)
	if err != nil || num < 0 || num > MaxMissionNumber || strings.ContainsAny(suffix, "+-") {
		return -1
	}
	return num
}
