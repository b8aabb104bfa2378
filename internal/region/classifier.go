package region

import "strings"

// Mode describes how tax must be levied for a delivery destination.
type Mode int

const (
	// SingleCross charges one integrated component for cross-jurisdiction delivery.
	SingleCross Mode = iota
	// SplitLocal splits tax into two equal co-located components.
	SplitLocal
)

// String returns the wire representation used in API payloads and logs.
func (m Mode) String() string {
	if m == SplitLocal {
		return "SPLIT_LOCAL"
	}
	return "SINGLE_CROSS"
}

// Classifier decides the jurisdiction mode for a delivery region relative to
// the seller's home region. The linked-region allow-list covers destinations
// that are administratively part of the home jurisdiction (e.g. a union
// territory tied to the home state) and is supplied as configuration.
type Classifier struct {
	home   string
	linked map[string]struct{}
}

// NewClassifier builds a classifier for the given home region and its
// jurisdiction-equivalent linked regions.
func NewClassifier(home string, linked []string) Classifier {
	set := make(map[string]struct{}, len(linked))
	for _, r := range linked {
		if n := normalize(r); n != "" {
			set[n] = struct{}{}
		}
	}
	return Classifier{home: normalize(home), linked: set}
}

// Home reports the normalized home region.
func (c Classifier) Home() string {
	return c.home
}

// Classify returns SplitLocal when the delivery region matches the home
// region or one of its linked regions, and SingleCross otherwise.
// Unrecognized region strings fall through to SingleCross.
func (c Classifier) Classify(delivery string) Mode {
	n := normalize(delivery)
	if n == "" || c.home == "" {
		return SingleCross
	}
	if n == c.home {
		return SplitLocal
	}
	if _, ok := c.linked[n]; ok {
		return SplitLocal
	}
	return SingleCross
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
