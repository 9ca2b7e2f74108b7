package grammar

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Syllabify splits a proper name into Toki Pona syllables. Phonotactics are not
// validated: any input yields some syllables.
//
//	ponoman -> po no man
//	sonja   -> son ja
func Syllabify(name string) []string {
	// Caser 有状态，不能跨 goroutine 共享。
	runes := []rune(cases.Lower(language.Und).String(name))
	var out []string
	for len(runes) > 0 {
		n := syllableLength(runes)
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}

// syllableLength returns how many runes the next syllable takes.
func syllableLength(r []rune) int {
	if isVowel(r[0]) {
		if len(r) == 2 {
			return 2
		}
		return 1
	}
	if len(r) >= 3 && r[2] == 'n' && (len(r) == 3 || !isVowel(r[3])) {
		return 3
	}
	return min(2, len(r))
}
