package domain

// Classification is the label-derived decision for one issue.
// An inactive issue never has groups.
type Classification struct {
	Groups []string // Configured group labels present on the issue, in configured order
	Active bool
}

// Classify decides whether an issue is active and which configured groups it
// belongs to. It is a pure set intersection and cannot fail.
func Classify(labels []string, activeLabel string, groupLabels []string) Classification {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}

	if _, ok := set[activeLabel]; !ok {
		return Classification{}
	}

	var groups []string
	seen := make(map[string]struct{}, len(groupLabels))
	for _, g := range groupLabels {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		if _, ok := set[g]; ok {
			groups = append(groups, g)
		}
	}
	return Classification{Active: true, Groups: groups}
}
