// Package models defines the typed views over the schema-free document store.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Collection names used by the admin console. Names match the collections the
// mobile app writes to.
const (
	CollectionEncyclopedia = "mushroom-encyclopedia"
	CollectionAchievements = "achievements"
	CollectionUsers        = "users"
	CollectionApplications = "applications"
	CollectionPosts        = "posts"
	SubcollectionComments  = "comments"
)

// Fields is an untyped field map. Documents in the same collection do not
// share a fixed schema; absent fields read as zero values, never as errors.
type Fields map[string]any

// Document is a single record in a named collection. The id is assigned on
// create and never changes across updates.
type Document struct {
	ID         uuid.UUID `json:"id"`
	Collection string    `json:"collection"`
	Fields     Fields    `json:"fields"`
	CreatedAt  time.Time `json:"created_at"`
}

// String returns the field as a string, or "" when absent or not a string.
func (f Fields) String(key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

// Bool returns the field as a bool, or false when absent.
func (f Fields) Bool(key string) bool {
	if b, ok := f[key].(bool); ok {
		return b
	}
	return false
}

// StringList returns the field as an ordered string list. JSON decoding
// produces []any, so both representations are accepted. Absent fields return
// nil; list-valued editors substitute a single empty entry themselves.
func (f Fields) StringList(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprintf("%v", item))
			}
		}
		return out
	default:
		return nil
	}
}

// Time decodes a timestamp field. The app's historic data carries both
// RFC3339 strings and epoch milliseconds, so both are accepted.
// Returns the zero time when the field is absent or unreadable.
func (f Fields) Time(key string) time.Time {
	switch v := f[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	case float64:
		return time.UnixMilli(int64(v))
	case int64:
		return time.UnixMilli(v)
	}
	return time.Time{}
}

// Clone returns a deep-enough copy of the field map: the map itself and any
// string lists are copied, so mutating the clone never leaks into the source.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		switch list := v.(type) {
		case []string:
			cp := make([]string, len(list))
			copy(cp, list)
			out[k] = cp
		case []any:
			cp := make([]any, len(list))
			copy(cp, list)
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}
