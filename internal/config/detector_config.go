package config

// DetectorConfig holds the element markers used by the layered keyword checks
type DetectorConfig struct {
	ElementTags        []string `json:"element_tags,omitempty" yaml:"element_tags,omitempty" validate:"dive,required"`
	ContainerSelectors []string `json:"container_selectors,omitempty" yaml:"container_selectors,omitempty" validate:"dive,required"`
	ButtonSelectors    []string `json:"button_selectors,omitempty" yaml:"button_selectors,omitempty" validate:"dive,required"`
	// MatchButtonPresence counts any element matching ButtonSelectors as a hit, label or not
	MatchButtonPresence bool `json:"match_button_presence" yaml:"match_button_presence"`
	// StaticStructuralScan parses static responses so element checks also run in static mode
	StaticStructuralScan bool `json:"static_structural_scan" yaml:"static_structural_scan"`
}

// NewDefaultDetectorConfig creates default detector configuration
func NewDefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ElementTags:          append([]string(nil), DefaultElementTags...),
		ContainerSelectors:   append([]string(nil), DefaultContainerSelectors...),
		ButtonSelectors:      append([]string(nil), DefaultButtonSelectors...),
		MatchButtonPresence:  false,
		StaticStructuralScan: true,
	}
}
