package layout

// 固定尺寸表。未列出的 token 一律为 (1,1)。
var (
	commaMarks = map[string]bool{"comma": true, "colon": true}
	stopMarks  = map[string]bool{"period": true, "exclamation": true, "question": true}
	largeMarks = map[string]bool{"la": true, "banner": true}

	smallModifiers  = map[string]bool{"kon": true, "lili": true, "mute": true, "sin": true}
	narrowModifiers = map[string]bool{"wan": true, "tu": true, "anu": true, "en": true, "kin": true}

	narrowSyllables = map[string]bool{
		"li": true, "ni": true, "si": true, "lin": true, "nin": true, "sin": true,
		"le": true, "ne": true, "se": true, "len": true, "nen": true, "sen": true,
		"lo": true, "no": true, "so": true, "lon": true, "non": true, "son": true,
		"la": true, "na": true, "sa": true, "lan": true, "nan": true, "san": true,
		"lu": true, "nu": true, "su": true, "lun": true, "nun": true, "sun": true,
	}
)

// SizeOf 按 token 及其结构类别返回固有尺寸，不会失败。
func SizeOf(token string, kind UnitKind) Size {
	switch kind {
	case PunctuationGlyph:
		switch {
		case commaMarks[token]:
			return Size{W: 4, H: 0.5}
		case stopMarks[token]:
			return Size{W: 4, H: 0.75}
		case largeMarks[token]:
			return Size{W: 4, H: 1}
		}
	case SyllableGlyph:
		if narrowSyllables[token] {
			return Size{W: 0.5, H: 1}
		}
	case WordGlyph:
		switch {
		case smallModifiers[token]:
			return Size{W: 1, H: 0.5}
		case narrowModifiers[token]:
			return Size{W: 0.5, H: 1}
		}
	}
	return Size{W: 1, H: 1}
}

// NewUnit 创建一个已定尺寸的叶子字形。
func NewUnit(token string, kind UnitKind) Unit {
	return Unit{Kind: kind, Token: token, Size: SizeOf(token, kind)}
}

// Units 为一组 token 创建同类字形。
func Units(tokens []string, kind UnitKind) []Unit {
	out := make([]Unit, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, NewUnit(tok, kind))
	}
	return out
}
