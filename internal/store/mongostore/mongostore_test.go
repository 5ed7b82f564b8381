package mongostore

import (
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPrefixFilter(t *testing.T) {
	cases := []struct {
		prefix string
		match  []string
		reject []string
	}{
		{"order:", []string{"order:1", "order:"}, []string{"xorder:1", "orders"}},
		{"serving_idea:", []string{"serving_idea:7"}, []string{"servingXidea:7"}},
		{"a.b*", []string{"a.b*c"}, []string{"axbbb", "a.bb"}},
		{"", []string{"anything"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.prefix, func(t *testing.T) {
			f := prefixFilter(tc.prefix)
			inner, ok := f["_id"].(bson.M)
			if !ok {
				t.Fatalf("unexpected filter shape: %#v", f)
			}
			re := regexp.MustCompile(inner["$regex"].(string))
			for _, k := range tc.match {
				if !re.MatchString(k) {
					t.Errorf("%q should match %q", k, tc.prefix)
				}
			}
			for _, k := range tc.reject {
				if re.MatchString(k) {
					t.Errorf("%q should not match %q", k, tc.prefix)
				}
			}
		})
	}
}
