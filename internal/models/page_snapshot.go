package models

import "time"

// ElementQuerier is the structural capability of a snapshot. Selectors are CSS selectors.
type ElementQuerier interface {
	// OwnTexts returns the direct text of every matched element; for input
	// elements the value attribute is returned instead.
	OwnTexts(selector string) ([]string, error)
	// Texts returns the full text content of every matched element.
	Texts(selector string) ([]string, error)
	// Labels returns, per matched element, its text joined with the
	// aria-label, title, value and alt attributes.
	Labels(selector string) ([]string, error)
}

// SourceReader is implemented by queriers that can return the full page source.
// Only browser-rendered snapshots carry it.
type SourceReader interface {
	Source() (string, error)
}

// PageSnapshot is one captured representation of the target page.
type PageSnapshot struct {
	URL       string
	Mode      DetectionMode
	RawText   string
	FetchedAt time.Time
	// Structure is nil when the snapshot has no structural query capability.
	Structure ElementQuerier
}

// HasStructure reports whether structural checks can run against the snapshot
func (s *PageSnapshot) HasStructure() bool {
	return s != nil && s.Structure != nil
}

// SourceReader returns the snapshot's page-source capability, if any
func (s *PageSnapshot) SourceReader() (SourceReader, bool) {
	if !s.HasStructure() {
		return nil, false
	}
	sr, ok := s.Structure.(SourceReader)
	return sr, ok
}
