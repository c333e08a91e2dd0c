package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Rating is a review score as stored upstream. The content API keeps ratings
// as strings ("4"), older records carry JSON numbers, and some carry null or
// free text. Anything that is not a finite number decodes as absent rather
// than failing the surrounding document.
type Rating struct {
	Value float64
	Valid bool
}

// NewRating returns a present rating.
func NewRating(v float64) Rating {
	return Rating{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	*r = Rating{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*r = NewRating(v)
	return nil
}

// MarshalJSON implements json.Marshaler. Absent ratings encode as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}
