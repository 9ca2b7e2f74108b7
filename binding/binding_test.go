package binding

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestInterpolate(t *testing.T) {
	var data any
	if err := json.Unmarshal([]byte(`{"user":{"name":"sonja","friends":["ALI","jan-ke"]},"count":3,"empty":"..."}`), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	cases := []struct {
		in, want string
	}{
		{"jan ${user.name} li pona.", "jan Sonja li pona."},
		{"mi olin e jan ${ user.friends[0] }.", "mi olin e jan Ali."},
		{"jan ${user.friends[1]} li kama.", "jan Jan Ke li kama."},
		{"${count}", "3"},
		{"jan ${user.missing} li lon.", "jan ${user.missing} li lon."},
		{"jan ${user.friends[9]}", "jan ${user.friends[9]}"},
		{"jan ${empty}", "jan ${empty}"},
		{"jan ${}", "jan ${}"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, data); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateWithoutData(t *testing.T) {
	in := "jan ${name} li pona."
	if got := Interpolate(in, nil); got != in {
		t.Fatalf("nil data should keep text, got %q", got)
	}
}

func TestInterpolateTypedMaps(t *testing.T) {
	data := map[string]any{"names": []string{"pona"}, "city": map[string]string{"name": "tomo"}}
	if got := Interpolate("${names[0]} ${city.name}", data); got != "Pona Tomo" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${a} li ${ b.c[1] } ${} ${a}")
	want := []string{"a", "b.c[1]", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Placeholders = %v, want %v", got, want)
	}
}

func TestProperName(t *testing.T) {
	if got := ProperName("NEW-york"); got != "New York" {
		t.Fatalf("ProperName = %q", got)
	}
	if got := ProperName("  "); got != "" {
		t.Fatalf("blank value should yield empty name, got %q", got)
	}
}
