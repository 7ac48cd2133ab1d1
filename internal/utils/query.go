package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDList parses a comma-joined id list query value ("1,2,3") into ids.
// A non-integer token is an error for the caller to surface, never a
// silently dropped token. The empty string means the parameter was absent:
// no ids, no error.
func ParseIDList(value string) ([]uint64, error) {
	if value == "" {
		return nil, nil
	}

	tokens := strings.Split(value, ",")
	ids := make([]uint64, 0, len(tokens))
	for _, token := range tokens {
		id, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", strings.TrimSpace(token))
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ParseBoolFlag interprets a 0/1 query flag. Exactly "1" is true; any other
// value, including the empty string, is false.
func ParseBoolFlag(value string) bool {
	return value == "1"
}
