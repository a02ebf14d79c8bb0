// internal/app/system/indexes/indexes_test.go
package indexes

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestKeySig(t *testing.T) {
	sig := keySig(bson.D{{Key: "solution", Value: 1}, {Key: "date", Value: -1}})
	if sig != "solution:1, date:-1" {
		t.Errorf("keySig = %q", sig)
	}
	if keySig(bson.D{}) != "" {
		t.Errorf("empty keys should produce empty signature")
	}
}

func TestSameBoolPtr(t *testing.T) {
	tr := true
	fa := false
	cases := []struct {
		a, b *bool
		want bool
	}{
		{nil, nil, true},
		{nil, &fa, true},
		{&tr, &tr, true},
		{&tr, nil, false},
		{&tr, &fa, false},
	}
	for i, c := range cases {
		if got := sameBoolPtr(c.a, c.b); got != c.want {
			t.Errorf("case %d: got %v, want %v", i, got, c.want)
		}
	}
}

func TestIsDuplicateKeyErr(t *testing.T) {
	if isDuplicateKeyErr(nil) {
		t.Error("nil is not a duplicate key error")
	}
	if !isDuplicateKeyErr(errors.New("E11000 duplicate key error collection")) {
		t.Error("E11000 text not detected")
	}
	we := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	if !isDuplicateKeyErr(we) {
		t.Error("WriteException code 11000 not detected")
	}
	if isDuplicateKeyErr(errors.New("network timeout")) {
		t.Error("unrelated error misclassified")
	}
}
