package richtext

import (
	"strings"
)

// StyleMap represents parsed inline CSS declarations
type StyleMap map[string]string

// ParseStyle parses a CSS style attribute into a map
// Example: "color: rgb(230, 0, 0); background-color: #BFDBFE;"
func ParseStyle(styleStr string) StyleMap {
	styles := make(StyleMap)
	if styleStr == "" {
		return styles
	}

	parts := strings.Split(styleStr, ";")
	for _, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			k := strings.ToLower(strings.TrimSpace(kv[0]))
			v := strings.TrimSpace(kv[1])
			if k != "" && v != "" {
				styles[k] = v
			}
		}
	}
	return styles
}

// Alignment returns the text-align declaration when it is one the contract
// knows about.
func (s StyleMap) Alignment() (Alignment, bool) {
	v, ok := s["text-align"]
	if !ok {
		return "", false
	}
	a := Alignment(strings.ToLower(v))
	for _, known := range Alignments {
		if a == known {
			return a, true
		}
	}
	return "", false
}
