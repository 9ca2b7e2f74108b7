package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ByLCY/sitelen/cache"
	"github.com/ByLCY/sitelen/tokenizer"
)

// DefaultClauseTTL 是结构化结果在缓存中的默认有效期。
const DefaultClauseTTL = 24 * time.Hour

// Parser 把原始文本切分并结构化为句子。Cache 为空时不做缓存。
type Parser struct {
	Cache cache.Cache
	TTL   time.Duration

	// OnCacheError 在缓存读写失败时被调用；失败不影响结果。
	OnCacheError func(key string, err error)
}

// NewParser 创建解析器。
func NewParser(c cache.Cache, ttl time.Duration) *Parser {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Parser{Cache: c, TTL: ttl}
}

// Parse 依次执行分词、结构化与后处理。
func (p *Parser) Parse(ctx context.Context, text string) ([]Sentence, error) {
	split, err := tokenizer.Split(text)
	if err != nil {
		return nil, err
	}

	out := make([]Sentence, 0, len(split))
	for _, s := range split {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sentence := Sentence{Raw: s.Raw, Implicit: s.Implicit}
		for _, clause := range s.Clauses {
			if clause.Kind == tokenizer.ClausePunctuation {
				sentence.Parts = append(sentence.Parts, NewPart(Punctuation, "", clause.Mark))
				continue
			}
			parts, err := p.clause(ctx, clause.Tokens)
			if err != nil {
				return nil, fmt.Errorf("结构化 %q 失败: %w", clause.Text(), err)
			}
			sentence.Parts = append(sentence.Parts, parts...)
		}
		out = append(out, sentence)
	}
	return out, nil
}

// clause 结构化一个内容子句，命中缓存时直接返回。
func (p *Parser) clause(ctx context.Context, tokens []string) ([]Part, error) {
	c := p.Cache
	if c == nil {
		return Postprocess(Structure(tokens)), nil
	}

	key := cache.Key("clause", tokens)
	if data, ok, err := c.Get(ctx, key); err != nil {
		p.cacheError(key, err)
	} else if ok {
		var parts []Part
		if err := json.Unmarshal(data, &parts); err == nil {
			return parts, nil
		}
		_ = c.Delete(ctx, key)
	}

	parts := Postprocess(Structure(tokens))
	data, err := json.Marshal(parts)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, data, p.TTL); err != nil {
		p.cacheError(key, err)
	}
	return parts, nil
}

func (p *Parser) cacheError(key string, err error) {
	if p.OnCacheError != nil {
		p.OnCacheError(key, err)
	}
}

// Compounds 把句子切成句段：每个标点成分结束一个句段，剩余部分单独成段。
func Compounds(s Sentence) [][]Part {
	var out [][]Part
	var current []Part
	for _, part := range s.Parts {
		current = append(current, part)
		if part.Role == Punctuation {
			out = append(out, current)
			current = nil
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}
