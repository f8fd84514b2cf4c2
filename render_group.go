package frost

// RenderGroup is a maximal run of consecutive draws that are either all
// frosted or all not frosted. Draws in a non-frosted group can be issued
// together; every frosted draw needs a fresh backdrop first.
type RenderGroup struct {
	Start, End int // draws[Start:End]
	Frosted    bool
}

// Len returns the number of draws in the group.
func (g RenderGroup) Len() int {
	return g.End - g.Start
}

// SplitRenderGroups partitions draws into render groups in order.
func SplitRenderGroups(draws []DrawCall) []RenderGroup {
	var groups []RenderGroup
	for i := range draws {
		frosted := draws[i].Block.Mode == ModeFrosted
		if n := len(groups); n > 0 && groups[n-1].Frosted == frosted {
			groups[n-1].End = i + 1
			continue
		}
		groups = append(groups, RenderGroup{Start: i, End: i + 1, Frosted: frosted})
	}
	return groups
}
