package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Offer struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Published      bool       `json:"published"`
	EmploymentType []string   `json:"employmentType"`
	JobLocation    string     `json:"-"` // serialized id list as stored
	ValidThrough   *time.Time `json:"validThrough,omitempty"`
}

// MarshalJSON writes the stored location column as a jobLocation id array.
func (o Offer) MarshalJSON() ([]byte, error) {
	type plain Offer
	ids := o.LocationIDs()
	if ids == nil {
		ids = []int64{}
	}
	return json.Marshal(struct {
		plain
		JobLocation []int64 `json:"jobLocation"`
	}{plain(o), ids})
}

// LocationIDs decodes the stored job location column.
// Anything that is not a list decodes to nil.
func (o Offer) LocationIDs() []int64 {
	return DeserializeIDs(o.JobLocation)
}

// DeserializeIDs accepts a JSON array of ints or numeric strings.
// Entries that do not parse as ints are dropped.
func DeserializeIDs(raw string) []int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] != '[' {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	out := make([]int64, 0, len(items))
	for _, it := range items {
		var n int64
		if err := json.Unmarshal(it, &n); err == nil {
			out = append(out, n)
			continue
		}
		var s string
		if err := json.Unmarshal(it, &s); err == nil {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}

// DeserializeStrings decodes a JSON string array column; non-arrays give nil.
func DeserializeStrings(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] != '[' {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func SerializeIDs(ids []int64) string {
	if ids == nil {
		ids = []int64{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}
