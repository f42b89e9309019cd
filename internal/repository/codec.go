package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"studiobooking/internal/recurrence"
)

// Weekday sets are stored as a JSON array of symbols and member ids as a JSON
// array of integers. The encoding is internal to the stores; callers only ever
// see the decoded values.

func encodeWeekdays(days []time.Weekday) (string, error) {
	raw, err := json.Marshal(recurrence.FormatWeekdays(days))
	if err != nil {
		return "", fmt.Errorf("encoding weekdays: %w", err)
	}
	return string(raw), nil
}

func decodeWeekdays(raw string) ([]time.Weekday, error) {
	var symbols []string
	if err := json.Unmarshal([]byte(raw), &symbols); err != nil {
		return nil, fmt.Errorf("decoding weekdays %q: %w", raw, err)
	}
	return recurrence.ParseWeekdays(symbols)
}

func encodeIDs(ids []int) (string, error) {
	if ids == nil {
		ids = []int{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encoding booking ids: %w", err)
	}
	return string(raw), nil
}

func decodeIDs(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decoding booking ids %q: %w", raw, err)
	}
	return ids, nil
}
