// Package detector decides whether a page snapshot shows the purchase keyword.
//
// Checks run cheapest first and stop at the first hit:
// raw text, element own-text, known containers, buy-button selectors and,
// for browser-rendered snapshots, the full page source.
package detector

import (
	"strings"

	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/rs/zerolog"
)

// Detector runs the layered keyword checks
type Detector struct {
	patterns Patterns
	logger   zerolog.Logger
}

// NewDetector creates a detector with the given patterns
func NewDetector(patterns Patterns, logger zerolog.Logger) *Detector {
	return &Detector{
		patterns: patterns,
		logger:   logger.With().Str("component", "Detector").Logger(),
	}
}

type check struct {
	channel models.MatchChannel
	run     func(q models.ElementQuerier, keyword string) (models.DetectionResult, bool)
}

// Detect inspects snapshot for keyword. A failing structural query is logged and
// skipped so the remaining checks still run.
func (d *Detector) Detect(snapshot *models.PageSnapshot, keyword string) models.DetectionResult {
	if snapshot == nil || keyword == "" {
		return models.NotFound()
	}

	if strings.Contains(snapshot.RawText, keyword) {
		return models.DetectionResult{Found: true, MatchedVia: models.MatchRawText}
	}

	if !snapshot.HasStructure() {
		return models.NotFound()
	}

	checks := []check{
		{channel: models.MatchStructuralElement, run: d.checkElements},
		{channel: models.MatchKnownContainer, run: d.checkContainers},
		{channel: models.MatchButtonSelector, run: d.checkButtons},
	}
	for _, c := range checks {
		if res, ok := c.run(snapshot.Structure, keyword); ok {
			return res
		}
	}

	if sr, ok := snapshot.SourceReader(); ok {
		source, err := sr.Source()
		if err != nil {
			d.logger.Warn().Err(err).Str("url", snapshot.URL).Str("check", string(models.MatchPageSource)).Msg("Page source unavailable, skipping check")
		} else if strings.Contains(source, keyword) {
			return models.DetectionResult{Found: true, MatchedVia: models.MatchPageSource}
		}
	}

	return models.NotFound()
}

// checkElements looks at the direct text of button/link/div/input-like elements
func (d *Detector) checkElements(q models.ElementQuerier, keyword string) (models.DetectionResult, bool) {
	for _, tag := range d.patterns.ElementTags {
		texts, err := q.OwnTexts(tag)
		if err != nil {
			d.logQueryError(err, models.MatchStructuralElement, tag)
			continue
		}
		if n := countContaining(texts, keyword); n > 0 {
			return models.DetectionResult{Found: true, MatchedVia: models.MatchStructuralElement, Detail: tag, Matches: n}, true
		}
	}
	return models.DetectionResult{}, false
}

// checkContainers looks at the full text of well-known purchase areas
func (d *Detector) checkContainers(q models.ElementQuerier, keyword string) (models.DetectionResult, bool) {
	for _, sel := range d.patterns.ContainerSelectors {
		texts, err := q.Texts(sel)
		if err != nil {
			d.logQueryError(err, models.MatchKnownContainer, sel)
			continue
		}
		if n := countContaining(texts, keyword); n > 0 {
			return models.DetectionResult{Found: true, MatchedVia: models.MatchKnownContainer, Detail: sel, Matches: n}, true
		}
	}
	return models.DetectionResult{}, false
}

// checkButtons looks at buy-button classes, matching text or label attributes
func (d *Detector) checkButtons(q models.ElementQuerier, keyword string) (models.DetectionResult, bool) {
	for _, sel := range d.patterns.ButtonSelectors {
		labels, err := q.Labels(sel)
		if err != nil {
			d.logQueryError(err, models.MatchButtonSelector, sel)
			continue
		}
		n := countContaining(labels, keyword)
		if d.patterns.MatchButtonPresence {
			n = len(labels)
		}
		if n > 0 {
			return models.DetectionResult{Found: true, MatchedVia: models.MatchButtonSelector, Detail: sel, Matches: n}, true
		}
	}
	return models.DetectionResult{}, false
}

func (d *Detector) logQueryError(err error, channel models.MatchChannel, selector string) {
	d.logger.Warn().Err(err).Str("check", string(channel)).Str("selector", selector).Msg("Structural query failed, skipping selector")
}

func countContaining(texts []string, keyword string) int {
	n := 0
	for _, t := range texts {
		if strings.Contains(t, keyword) {
			n++
		}
	}
	return n
}
