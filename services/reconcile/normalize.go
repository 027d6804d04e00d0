package reconcile

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Key canonicalizes a reference into a comparable string key. The three source sets are
// not consistent about how they encode references: some collections store a bare id
// string, others embed a document carrying the id plus display fields, and decoded JSON
// may surface numeric ids as float64. Key accepts any of these and returns the id as a
// trimmed string. It never fails; anything unusable maps to "", which deliberately
// matches nothing.
func Key(ref any) string {
	switch v := ref.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case primitive.ObjectID:
		return v.Hex()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case map[string]any:
		return embeddedKey(func(k string) (any, bool) {
			val, ok := v[k]
			return val, ok
		})
	case bson.M:
		return embeddedKey(func(k string) (any, bool) {
			val, ok := v[k]
			return val, ok
		})
	case bson.D:
		return embeddedKey(func(k string) (any, bool) {
			for _, e := range v {
				if e.Key == k {
					return e.Value, true
				}
			}
			return nil, false
		})
	default:
		return ""
	}
}

// embeddedKey pulls the id out of an embedded reference document.
func embeddedKey(lookup func(string) (any, bool)) string {
	for _, field := range []string{"id", "_id"} {
		if val, ok := lookup(field); ok {
			if k := Key(val); k != "" {
				return k
			}
		}
	}
	return ""
}

// SameKey reports whether two references resolve to the same non-empty key.
func SameKey(a, b any) bool {
	ka := Key(a)
	return ka != "" && ka == Key(b)
}
