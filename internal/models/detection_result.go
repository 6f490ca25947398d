package models

// MatchChannel names the check that found the keyword.
type MatchChannel string

const (
	MatchNone              MatchChannel = "none"
	MatchRawText           MatchChannel = "raw_text"
	MatchStructuralElement MatchChannel = "structural_element"
	MatchKnownContainer    MatchChannel = "known_container"
	MatchButtonSelector    MatchChannel = "button_selector"
	MatchPageSource        MatchChannel = "page_source"
)

// DetectionResult is the transient outcome of one keyword check.
type DetectionResult struct {
	Found      bool
	MatchedVia MatchChannel
	// Detail names the tag or selector that matched, empty for text channels.
	Detail string
	// Matches counts matched elements for the structural channels.
	Matches int
}

// NotFound returns the empty detection result
func NotFound() DetectionResult {
	return DetectionResult{Found: false, MatchedVia: MatchNone}
}
