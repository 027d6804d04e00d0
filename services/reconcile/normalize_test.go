package reconcile

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestKey(t *testing.T) {
	oid := primitive.NewObjectID()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"bare string", "doc-1", "doc-1"},
		{"padded string", "  doc-1 ", "doc-1"},
		{"empty string", "", ""},
		{"float id", float64(42), "42"},
		{"int id", 7, "7"},
		{"int64 id", int64(9000), "9000"},
		{"object id", oid, oid.Hex()},
		{"embedded map", map[string]any{"id": "doc-2", "name": "Dr. Okoro"}, "doc-2"},
		{"embedded map underscore id", map[string]any{"_id": "doc-3"}, "doc-3"},
		{"embedded bson.M", bson.M{"id": "doc-4"}, "doc-4"},
		{"embedded bson.D", bson.D{{Key: "name", Value: "x"}, {Key: "id", Value: "doc-5"}}, "doc-5"},
		{"nested numeric id", map[string]any{"id": float64(12)}, "12"},
		{"map without id", map[string]any{"name": "nobody"}, ""},
		{"unsupported type", struct{ X int }{1}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Key(tc.in); got != tc.want {
				t.Fatalf("Key(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSameKey(t *testing.T) {
	if !SameKey("doc-1", map[string]any{"id": "doc-1"}) {
		t.Fatal("bare id and embedded reference to the same doctor should match")
	}
	if SameKey("doc-1", "doc-2") {
		t.Fatal("different ids must not match")
	}
	// Empty keys deliberately never match anything, including each other.
	if SameKey("", "") {
		t.Fatal("empty keys must not match")
	}
	if SameKey(nil, nil) {
		t.Fatal("nil references must not match")
	}
}
