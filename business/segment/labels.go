package segment

import (
	"fmt"
	"maps"
)

var DefaultLabels = map[int]string{
	0: "High-Value Customer",
	1: "Potential Loyalist",
	2: "At Risk",
	3: "New / Occasional Buyer",
}

// Labels maps cluster ids to human-readable segment descriptions.
type Labels map[int]string

// NewLabels starts from DefaultLabels and applies overrides on top.
func NewLabels(overrides map[int]string) Labels {
	l := maps.Clone(DefaultLabels)
	maps.Copy(l, overrides)
	return l
}

// For returns the label of a cluster, or "Segment <id>" when unmapped.
func (l Labels) For(clusterID int) string {
	if label, ok := l[clusterID]; ok && label != "" {
		return label
	}
	return fmt.Sprintf("Segment %d", clusterID)
}
