package layout

import (
	"context"
	"fmt"
	"slices"

	"github.com/ByLCY/sitelen/grammar"
)

// Composer 把一组语法成分排成一个复合句矩形：先为每个成分求候选，再对候选做笛卡尔积，
// 每种组合交给 Compound 打包器整体排版。
type Composer struct {
	Phrase   Packer
	Compound Packer
}

// partEntry 记录一个成分的候选排法与其容器属性。
type partEntry struct {
	kind      OptionKind
	separator string
	options   []Option
}

// Compose 返回 parts 的全部复合候选。
func (c Composer) Compose(parts []grammar.Part) ([]Option, error) {
	return c.ComposeContext(context.Background(), parts)
}

// ComposeContext 是可取消的 Compose。
func (c Composer) ComposeContext(ctx context.Context, parts []grammar.Part) ([]Option, error) {
	if len(parts) == 0 {
		return nil, ErrEmptyInput
	}

	entries := make([]partEntry, 0, len(parts))
	for i, part := range parts {
		opts, err := c.partOptions(ctx, part)
		if err != nil {
			return nil, fmt.Errorf("第 %d 个成分 (%s): %w", i, part.Role, err)
		}
		kind := ContainerOption
		if part.Role == grammar.Punctuation {
			kind = PunctuationOption
		}
		entries = append(entries, partEntry{kind: kind, separator: part.Separator, options: opts})
	}

	var out []Option
	if err := c.cross(ctx, entries, 0, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// partOptions 返回单个成分的候选排法。
func (c Composer) partOptions(ctx context.Context, part grammar.Part) ([]Option, error) {
	if part.IsNested() {
		return c.ComposeContext(ctx, part.Parts())
	}
	tokens := part.Tokens()
	switch {
	case part.Role == grammar.Punctuation:
		return c.Phrase.PackUnitsContext(ctx, Units(tokens, PunctuationGlyph))
	case part.Separator == grammar.CartoucheSeparator:
		return c.Phrase.PackUnitsContext(ctx, Units(tokens, SyllableGlyph))
	default:
		return c.Phrase.PackUnitsContext(ctx, Units(tokens, WordGlyph))
	}
}

// cross 深度优先地为每个成分选一个候选，选满后整体打包。
func (c Composer) cross(ctx context.Context, entries []partEntry, index int, chosen []Member, out *[]Option) error {
	entry := entries[index]
	for _, opt := range entry.options {
		if err := ctx.Err(); err != nil {
			return err
		}
		sub := opt
		sub.Separator = entry.separator
		sub.Kind = entry.kind
		members := append(slices.Clip(chosen), SubMember(&sub))

		if index+1 < len(entries) {
			if err := c.cross(ctx, entries, index+1, members, out); err != nil {
				return err
			}
			continue
		}
		packed, err := c.Compound.PackContext(ctx, members)
		if err != nil {
			return err
		}
		*out = append(*out, packed...)
	}
	return nil
}
