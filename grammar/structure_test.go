package grammar

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"
)

// describe renders parts as "role/sep[tokens]" with nested parts in braces.
func describe(parts []Part) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Role.String())
		if p.Separator != "" {
			b.WriteString("/" + p.Separator)
		}
		if p.IsNested() {
			b.WriteString("{" + describe(p.Parts()) + "}")
			continue
		}
		b.WriteString("[" + strings.Join(p.Tokens(), " ") + "]")
	}
	return b.String()
}

func TestStructure(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jan", "subject[jan]"},
		{"jan pona li pona", "subject[jan pona] verbPhrase/li[pona]"},
		{"mi moku e kili", "subject[mi moku] directObject/e[kili]"},
		{"mi tawa tomo", "subject[mi] prepPhrase/tawa[tomo]"},
		{"mi li tawa", "subject[mi] verbPhrase/li[tawa]"},
		{"ona li lon e ni", "subject[ona] verbPhrase/li[lon] directObject/e[ni]"},
		{"mi moku li", "subject[mi moku li]"},
		{"jan o kama", "subject/o[jan kama]"},
		{"o kama", "subject[o kama]"},
		{"mi li pona a mute", "subject[mi] verbPhrase/li[pona] interjection[a] verbPhrase[mute]"},
		{"mi a", "subject[mi a]"},
		{"mi pali kepeken ilo", "subject[mi pali] prepPhrase/kepeken[ilo]"},
		{"jan Li li pona", "subject[jan Li] verbPhrase/li[pona]"},
	}
	for _, tt := range tests {
		got := describe(Structure(strings.Fields(tt.in)))
		if got != tt.want {
			t.Fatalf("Structure(%q)\n got  %s\n want %s", tt.in, got, tt.want)
		}
	}
}

func TestStructureDropsEmptyParts(t *testing.T) {
	parts := Structure([]string{"li", "pona"})
	if len(parts) != 1 || parts[0].Role != VerbPhrase {
		t.Fatalf("空的主语应被丢弃, 得到 %s", describe(parts))
	}
	if len(Structure(nil)) != 0 {
		t.Fatalf("空输入应返回空结果")
	}
}

func TestPostprocess(t *testing.T) {
	tests := []struct {
		in   Part
		want string
	}{
		{NewPart(Subject, "", "jan", "pona"), "subject[jan pona]"},
		{NewPart(Subject, "", "tomo", "pi", "jan", "pona"), "subject{subject[tomo] subject/pi[jan pona]}"},
		{NewPart(Subject, "", "jan", "pi", "ma", "pi", "telo"),
			"subject{subject{subject[jan] subject/pi[ma]} subject/pi[telo]}"},
		{NewPart(VerbPhrase, "li", "tawa", "tomo"), "verbPhrase/li{verbPhrase/tawa[tomo]}"},
		{NewPart(Subject, "", "jan", "pi"), "subject[jan pi]"},
		{NewPart(Subject, "", "jan", "Sonja"), "subject{subject[jan] subject/cartouche[son ja]}"},
		{NewPart(Subject, "", "ma", "Kanata", "suli"), "subject{subject[ma] subject/cartouche[ka na ta] subject[suli]}"},
		{NewPart(Subject, "", "jan", "Ali", "en", "jan", "Pepe"),
			"subject{subject{subject[jan] subject/cartouche[a li] subject[en jan]} subject/cartouche[pe pe]}"},
		{NewPart(Subject, "", "tomo", "pi", "jan", "Sonja"),
			"subject{subject[tomo] subject/pi{subject[jan] subject/cartouche[son ja]}}"},
		{NewPart(Punctuation, "", "period"), "punctuation[period]"},
	}
	for _, tt := range tests {
		got := describe(Postprocess([]Part{tt.in}))
		if got != tt.want {
			t.Fatalf("Postprocess(%s)\n got  %s\n want %s", describe([]Part{tt.in}), got, tt.want)
		}
	}
}

func TestPostprocessDoesNotAliasInput(t *testing.T) {
	tokens := []string{"tomo", "pi", "jan", "Sonja"}
	in := []Part{NewPart(Subject, "", tokens...)}
	out := Postprocess(in)

	out[0].Parts()[0].Tokens()[0] = "changed"
	if in[0].Tokens()[0] != "tomo" || tokens[0] != "tomo" {
		t.Fatalf("后处理结果与输入共享了底层数组")
	}
	if in[0].IsNested() {
		t.Fatalf("输入被修改")
	}
}

func TestSyllabify(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"ponoman", []string{"po", "no", "man"}},
		{"Sonja", []string{"son", "ja"}},
		{"Ali", []string{"a", "li"}},
		{"Ijo", []string{"i", "jo"}},
		// 元音开头只剥一个字母，不把后面的 n 并进来。
		{"unpa", []string{"u", "np", "a"}},
		{"an", []string{"an"}},
		{"Kanata", []string{"ka", "na", "ta"}},
		{"Lin", []string{"lin"}},
		{"X", []string{"x"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Syllabify(tt.in); !slices.Equal(got, tt.want) {
			t.Fatalf("Syllabify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPartJSON(t *testing.T) {
	in := Postprocess([]Part{NewPart(Subject, "", "jan", "Sonja")})
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"role":"subject"`) || !strings.Contains(string(data), `"separator":"cartouche"`) {
		t.Fatalf("unexpected json: %s", data)
	}
	var out []Part
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if describe(out) != describe(in) {
		t.Fatalf("json round trip: %s != %s", describe(out), describe(in))
	}
}

func TestCompounds(t *testing.T) {
	s := Sentence{Parts: []Part{
		NewPart(Subject, "", "mi", "lape"),
		NewPart(Punctuation, "", "la"),
		NewPart(Subject, "", "sina"),
		NewPart(VerbPhrase, "li", "pali"),
		NewPart(Punctuation, "", "period"),
	}}
	got := Compounds(s)
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 3 {
		t.Fatalf("compounds = %v", got)
	}

	s.Parts = s.Parts[:4]
	got = Compounds(s)
	if len(got) != 2 || describe(got[1]) != "subject[sina] verbPhrase/li[pali]" {
		t.Fatalf("剩余部分应单独成段: %v", got)
	}
}

func TestLexiconUnknown(t *testing.T) {
	parts := Postprocess(Structure([]string{"jan", "Sonja", "li", "moku", "e", "pancake", "kili"}))
	got := DefaultLexicon().Unknown(parts)
	if !slices.Equal(got, []string{"pancake"}) {
		t.Fatalf("unknown = %q", got)
	}
	if !DefaultLexicon().Known("kijetesantakalu") {
		t.Fatalf("kijetesantakalu 应在词表中")
	}
}
