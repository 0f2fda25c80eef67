package placeholder

import (
	"reflect"
	"testing"
)

func TestNames(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"none", "Cancel", nil},
		{"single", "Delete { $name }?", []string{"name"}},
		{"spacing_variants", "{$a} and {  $b  }", []string{"a", "b"}},
		{"duplicate", "{ $n } of { $n }", []string{"n"}},
		{"not_a_token", "set {name} and { name }", nil},
		{"hyphen_underscore", "{ $set-name } { $set_name }", []string{"set-name", "set_name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Names(tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Names(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	vars := map[string]string{"name": "Biology"}
	resolve := func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}

	got := Replace("Delete { $name }?", resolve, nil)
	if got != "Delete Biology?" {
		t.Errorf("Replace = %q", got)
	}

	// Lenient: unknown token kept as written.
	got = Replace("Rename { $title }?", resolve, nil)
	if got != "Rename { $title }?" {
		t.Errorf("lenient Replace = %q", got)
	}

	// onMissing drives the strict policy.
	got = Replace("Rename { $title }?", resolve, func(name, token string) string {
		return "<missing:" + name + ">"
	})
	if got != "Rename <missing:title>?" {
		t.Errorf("strict Replace = %q", got)
	}
}
