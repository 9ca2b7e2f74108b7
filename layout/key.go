package layout

import (
	"strconv"
	"strings"
)

// Key 返回排法的规范化结构键：固定字段顺序、4 位小数，递归包含子容器。
// 结构相同的排法（归一化后）键相同。
func Key(o Option) string {
	var b strings.Builder
	writeOptionKey(&b, o)
	return b.String()
}

func writeOptionKey(b *strings.Builder, o Option) {
	b.WriteString(o.Kind.String())
	b.WriteByte('|')
	b.WriteString(o.Separator)
	b.WriteByte('|')
	writeSize(b, o.Size)
	b.WriteByte('[')
	for i, pu := range o.Members {
		if i > 0 {
			b.WriteByte(';')
		}
		switch {
		case pu.Member.Leaf != nil:
			b.WriteString(pu.Member.Leaf.Kind.String())
			b.WriteByte(':')
			b.WriteString(strconv.Quote(pu.Member.Leaf.Token))
		case pu.Member.Sub != nil:
			b.WriteString("sub{")
			writeOptionKey(b, *pu.Member.Sub)
			b.WriteByte('}')
		}
		b.WriteByte('@')
		writeFloat(b, pu.Position.X)
		b.WriteByte(',')
		writeFloat(b, pu.Position.Y)
		b.WriteByte(':')
		writeSize(b, pu.Size)
	}
	b.WriteByte(']')
}

func writeSize(b *strings.Builder, s Size) {
	writeFloat(b, s.W)
	b.WriteByte('x')
	writeFloat(b, s.H)
}

func writeFloat(b *strings.Builder, v float64) {
	b.WriteString(strconv.FormatFloat(v, 'f', 4, 64))
}
