package scoring

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"rewardservice/internal/domain/contribution"
)

// FormatScorer computes the word-count and structural-formatting dimensions
// of a single comment. Implementations must be deterministic and pure.
type FormatScorer interface {
	Score(c contribution.Comment) (word, format decimal.Decimal, details FormatBreakdown, err error)
}

// wordScoreExponent flattens the word-count curve so long comments gain
// sublinearly.
const wordScoreExponent = 0.85

// elementScores is the rubric for structural formatting: each rendered HTML
// element earns the listed score per occurrence.
var elementScores = map[string]decimal.Decimal{
	"h1":         decimal.NewFromInt(1),
	"h2":         decimal.NewFromInt(1),
	"h3":         decimal.NewFromInt(1),
	"h4":         decimal.NewFromInt(1),
	"h5":         decimal.NewFromInt(1),
	"h6":         decimal.NewFromInt(1),
	"a":          decimal.NewFromInt(1),
	"li":         decimal.RequireFromString("0.5"),
	"code":       decimal.NewFromInt(1),
	"pre":        decimal.NewFromInt(1),
	"table":      decimal.NewFromInt(1),
	"img":        decimal.NewFromInt(1),
	"blockquote": decimal.RequireFromString("0.25"),
}

// MarkdownScorer scores comment bodies by rendering their markdown to HTML
// and walking the resulting element tree.
type MarkdownScorer struct {
	md goldmark.Markdown
}

func NewMarkdownScorer() *MarkdownScorer {
	return &MarkdownScorer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (s *MarkdownScorer) Score(c contribution.Comment) (decimal.Decimal, decimal.Decimal, FormatBreakdown, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(c.Body), &buf); err != nil {
		return decimal.Zero, decimal.Zero, nil, fmt.Errorf("render markdown: %w", err)
	}

	root, err := html.Parse(strings.NewReader(buf.String()))
	if err != nil {
		return decimal.Zero, decimal.Zero, nil, fmt.Errorf("parse rendered html: %w", err)
	}

	details := FormatBreakdown{}
	words := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if per, ok := elementScores[n.Data]; ok {
				d := details[n.Data]
				d.Count++
				d.Score = per.Mul(decimal.NewFromInt(int64(d.Count)))
				details[n.Data] = d
			}
		case html.TextNode:
			words += len(strings.Fields(n.Data))
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	format := decimal.Zero
	for _, d := range details {
		format = format.Add(d.Score)
	}

	word := decimal.Zero
	if words > 0 {
		word = decimal.NewFromFloat(math.Pow(float64(words), wordScoreExponent)).Round(2)
	}

	if len(details) == 0 {
		details = nil
	}
	return word, format, details, nil
}
