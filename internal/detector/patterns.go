package detector

import (
	"strings"

	"github.com/aleister1102/tixwatch/internal/config"
)

// Patterns holds the element markers each structural check queries.
type Patterns struct {
	ElementTags        []string
	ContainerSelectors []string
	ButtonSelectors    []string
	// MatchButtonPresence treats any element matching ButtonSelectors as a hit
	MatchButtonPresence bool
}

// DefaultPatterns returns the built-in marker set
func DefaultPatterns() Patterns {
	return PatternsFromConfig(config.NewDefaultDetectorConfig())
}

// PatternsFromConfig builds patterns from the detector config section
func PatternsFromConfig(cfg config.DetectorConfig) Patterns {
	return Patterns{
		ElementTags:         cleanList(cfg.ElementTags),
		ContainerSelectors:  cleanList(cfg.ContainerSelectors),
		ButtonSelectors:     cleanList(cfg.ButtonSelectors),
		MatchButtonPresence: cfg.MatchButtonPresence,
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
