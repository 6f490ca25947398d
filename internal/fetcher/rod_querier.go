package fetcher

import (
	"time"

	"github.com/go-rod/rod"
)

const ownTextsJS = `(sel) => Array.from(document.querySelectorAll(sel)).map((el) => {
	if (el.tagName === 'INPUT') return el.value || el.getAttribute('value') || '';
	return Array.from(el.childNodes)
		.filter((n) => n.nodeType === Node.TEXT_NODE)
		.map((n) => n.textContent)
		.join('');
})`

const textsJS = `(sel) => Array.from(document.querySelectorAll(sel)).map((el) => el.textContent || '')`

const labelsJS = `(sel) => Array.from(document.querySelectorAll(sel)).map((el) => {
	const parts = [(el.innerText || el.textContent || '').trim()];
	for (const attr of ['aria-label', 'title', 'value', 'alt']) {
		const v = el.getAttribute(attr);
		if (v) parts.push(v);
	}
	return parts.join(' ');
})`

const renderedTextJS = `() => document.documentElement ? document.documentElement.innerText : ''`

// rodQuerier runs structural queries against the live page
type rodQuerier struct {
	page    *rod.Page
	timeout time.Duration
}

func newRodQuerier(page *rod.Page, timeout time.Duration) *rodQuerier {
	return &rodQuerier{page: page, timeout: timeout}
}

func (q *rodQuerier) OwnTexts(selector string) ([]string, error) {
	return q.evalStrings(ownTextsJS, selector)
}

func (q *rodQuerier) Texts(selector string) ([]string, error) {
	return q.evalStrings(textsJS, selector)
}

func (q *rodQuerier) Labels(selector string) ([]string, error) {
	return q.evalStrings(labelsJS, selector)
}

// Source returns the serialized DOM of the page
func (q *rodQuerier) Source() (string, error) {
	p := q.page.Timeout(q.timeout)
	defer p.CancelTimeout()
	return p.HTML()
}

func (q *rodQuerier) evalStrings(js, selector string) ([]string, error) {
	p := q.page.Timeout(q.timeout)
	defer p.CancelTimeout()

	res, err := p.Eval(js, selector)
	if err != nil {
		return nil, err
	}
	arr := res.Value.Arr()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.Str())
	}
	return out, nil
}

func renderedText(page *rod.Page, timeout time.Duration) (string, error) {
	p := page.Timeout(timeout)
	defer p.CancelTimeout()

	res, err := p.Eval(renderedTextJS)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}
