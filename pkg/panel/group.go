package panel

import (
	"slices"
	"strings"

	ferrors "github.com/matzehuels/flatbox/pkg/errors"
)

// Grouping selects how panels are split into drawings.
type Grouping string

const (
	// Combined puts every panel on a single sheet named [CombinedName].
	Combined Grouping = "combined"

	// ByMaterial writes one sheet per material: perspex first, then wood.
	ByMaterial Grouping = "material"
)

// DefaultGrouping is used when no grouping is requested.
const DefaultGrouping = ByMaterial

// CombinedName is the group name of the single sheet of the Combined policy.
const CombinedName = "image"

// materialOrder fixes the order material groups are emitted in.
var materialOrder = []Material{Perspex, Wood}

// Groupings lists the supported policies.
var Groupings = []Grouping{Combined, ByMaterial}

// ParseGrouping validates s. The empty string selects [DefaultGrouping].
func ParseGrouping(s string) (Grouping, error) {
	if s == "" {
		return DefaultGrouping, nil
	}
	g := Grouping(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Groupings, g) {
		return "", ferrors.New(ferrors.ErrCodeInvalidGrouping, "invalid grouping: %q (must be 'combined' or 'material')", s)
	}
	return g, nil
}

// Group is the set of panels drawn on one sheet.
type Group struct {
	Name   string  `json:"name"`
	Panels []Panel `json:"panels"`
}

// Split partitions panels according to policy, preserving panel order
// within every group. Empty material groups are omitted.
func Split(panels []Panel, policy Grouping) []Group {
	if policy == Combined {
		return []Group{{Name: CombinedName, Panels: slices.Clone(panels)}}
	}

	var groups []Group
	for _, m := range materialOrder {
		var members []Panel
		for _, p := range panels {
			if p.Material == m {
				members = append(members, p)
			}
		}
		if len(members) > 0 {
			groups = append(groups, Group{Name: string(m), Panels: members})
		}
	}
	return groups
}

// Find returns the group called name.
func Find(groups []Group, name string) (Group, bool) {
	for _, g := range groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Names returns the group names in order.
func Names(groups []Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}
