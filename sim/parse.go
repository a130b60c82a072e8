package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseReferenceString parses a whitespace-separated list of page numbers
// An empty or all-whitespace string parses to an empty sequence, which is a
// valid degenerate input for every policy
func ParseReferenceString(text string) ([]int, error) {
	fields := strings.Fields(text)
	sequence := make([]int, 0, len(fields))

	for _, field := range fields {
		page, err := strconv.Atoi(field)
		if err != nil {
			return nil, ErrInvalidReference("ParseReferenceString", field, err)
		}
		sequence = append(sequence, page)
	}

	return sequence, nil
}

// ParseFrameCapacity parses a frame count and checks it against the
// deployment range [MinFrameCapacity, MaxFrameCapacity]
func ParseFrameCapacity(text string) (int, error) {
	capacity, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, NewSimError(ErrCodeInvalidCapacity, "ParseFrameCapacity",
			fmt.Sprintf("frame capacity %q is not an integer", text), err)
	}
	if capacity < MinFrameCapacity || capacity > MaxFrameCapacity {
		return 0, NewSimError(ErrCodeInvalidCapacity, "ParseFrameCapacity",
			fmt.Sprintf("frame capacity must be between %d and %d, got %d", MinFrameCapacity, MaxFrameCapacity, capacity), nil)
	}
	return capacity, nil
}
