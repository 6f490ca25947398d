package fetcher

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/andybalholm/cascadia"
)

// labelAttributes are appended to an element's text when reading its label
var labelAttributes = []string{"aria-label", "title", "value", "alt"}

// htmlQuerier answers structural queries against a parsed static document
type htmlQuerier struct {
	doc *goquery.Document
}

// NewHTMLQuerier parses body into a goquery document
func NewHTMLQuerier(body []byte) (models.ElementQuerier, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, common.WrapError(err, "failed to parse HTML")
	}
	return &htmlQuerier{doc: doc}, nil
}

// NewHTMLSnapshot builds a static snapshot whose querier reads the parsed body
func NewHTMLSnapshot(url string, body []byte) (*models.PageSnapshot, error) {
	q, err := NewHTMLQuerier(body)
	if err != nil {
		return nil, err
	}
	return &models.PageSnapshot{
		URL:       url,
		Mode:      models.ModeStatic,
		RawText:   string(body),
		FetchedAt: time.Now(),
		Structure: q,
	}, nil
}

// find compiles the selector first so bad selectors surface as errors
// instead of silently matching nothing
func (q *htmlQuerier) find(selector string) (*goquery.Selection, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, common.WrapErrorf(err, "invalid selector %q", selector)
	}
	return q.doc.FindMatcher(m), nil
}

func (q *htmlQuerier) OwnTexts(selector string) ([]string, error) {
	sel, err := q.find(selector)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, ownText(s))
	})
	return texts, nil
}

func (q *htmlQuerier) Texts(selector string) ([]string, error) {
	sel, err := q.find(selector)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts, nil
}

func (q *htmlQuerier) Labels(selector string) ([]string, error) {
	sel, err := q.find(selector)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		parts := []string{strings.TrimSpace(s.Text())}
		for _, attr := range labelAttributes {
			if v, ok := s.Attr(attr); ok && v != "" {
				parts = append(parts, v)
			}
		}
		labels = append(labels, strings.Join(parts, " "))
	})
	return labels, nil
}

// ownText returns the element's direct text nodes, or the value of an input
func ownText(s *goquery.Selection) string {
	if goquery.NodeName(s) == "input" {
		return s.AttrOr("value", "")
	}
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return b.String()
}
