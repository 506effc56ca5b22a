package dock

import (
	"github.com/matzehuels/dockyard/pkg/geom"
	"github.com/matzehuels/dockyard/pkg/observability"
)

// DefaultTitleBarHeight is the height of a frame's tab strip.
const DefaultTitleBarHeight = 24

// Edge split thresholds as fractions of the target's extent.
const (
	nearEdge = 0.25
	farEdge  = 0.75
	half     = 0.5
)

// Rule is one entry of the resolver's priority list.
type Rule struct {
	Name string
	Zone Zone
	Self bool

	// Match reports whether the pointer qualifies for the rule.
	Match func(p geom.Point, box geom.Rect) bool

	// Rect computes the preview rectangle for a match.
	Rect func(box geom.Rect) geom.Rect
}

// Resolver classifies pointer positions into docking zones. It keeps no
// state between calls; the zero value uses a title bar height of zero, so
// construct it with [NewResolver] unless the host measures its own.
type Resolver struct {
	TitleBarHeight float64
}

// NewResolver returns a resolver for frames whose tab strip is
// titleBarHeight tall. Non-positive heights select [DefaultTitleBarHeight].
func NewResolver(titleBarHeight float64) *Resolver {
	if titleBarHeight <= 0 {
		titleBarHeight = DefaultTitleBarHeight
	}
	return &Resolver{TitleBarHeight: titleBarHeight}
}

// Rules returns the rules evaluated for a target, in priority order.
//
// The tab strip always comes first: the same-frame rule (when sameFrame is
// set) ahead of the add-as-tab rule. Without a title bar neither applies.
// Edge rules follow only when canSplit is set, ordered by the box aspect:
// tall boxes try top and bottom before left and right, all other boxes the
// reverse.
func (r *Resolver) Rules(box geom.Rect, sameFrame, canSplit, hasTitleBar bool) []Rule {
	var rules []Rule

	if hasTitleBar && r.TitleBarHeight > 0 {
		if sameFrame {
			rules = append(rules, r.tabRule("reorder", true))
		}
		rules = append(rules, r.tabRule("tab", false))
	}
	if !canSplit {
		return rules
	}

	if box.Tall() {
		rules = append(rules, topRule, bottomRule, leftRule, rightRule)
	} else {
		rules = append(rules, leftRule, rightRule, topRule, bottomRule)
	}
	return rules
}

func (r *Resolver) tabRule(name string, self bool) Rule {
	title := r.TitleBarHeight
	return Rule{
		Name: name,
		Zone: ZoneStacked,
		Self: self,
		Match: func(p geom.Point, box geom.Rect) bool {
			return box.InBand(p, box.Top(), box.Top()+title)
		},
		Rect: func(box geom.Rect) geom.Rect {
			return geom.R(box.Left()-2, box.Top()-2, box.W, title-1)
		},
	}
}

var (
	topRule = Rule{
		Name: "top",
		Zone: ZoneTop,
		Match: func(p geom.Point, box geom.Rect) bool {
			return box.InBand(p, box.Top(), box.Top()+box.H*nearEdge)
		},
		Rect: func(box geom.Rect) geom.Rect {
			return geom.R(box.Left(), box.Top(), box.W, box.H*half)
		},
	}
	bottomRule = Rule{
		Name: "bottom",
		Zone: ZoneBottom,
		Match: func(p geom.Point, box geom.Rect) bool {
			return box.InBand(p, box.Top()+box.H*farEdge, box.Bottom())
		},
		Rect: func(box geom.Rect) geom.Rect {
			return geom.R(box.Left(), box.Bottom()-box.H*half, box.W, box.H*half)
		},
	}
	leftRule = Rule{
		Name: "left",
		Zone: ZoneLeft,
		Match: func(p geom.Point, box geom.Rect) bool {
			return box.InColumn(p, box.Left(), box.Left()+box.W*nearEdge)
		},
		Rect: func(box geom.Rect) geom.Rect {
			return geom.R(box.Left(), box.Top(), box.W*half, box.H)
		},
	}
	rightRule = Rule{
		Name: "right",
		Zone: ZoneRight,
		Match: func(p geom.Point, box geom.Rect) bool {
			return box.InColumn(p, box.Left()+box.W*farEdge, box.Right())
		},
		Rect: func(box geom.Rect) geom.Rect {
			return geom.R(box.Right()-box.W*half, box.Top(), box.W*half, box.H)
		},
	}
)

// Resolve returns the anchor of the first rule the pointer matches.
func (r *Resolver) Resolve(pointer geom.Point, sameFrame, canSplit bool, target Target, hasTitleBar bool) (Anchor, bool) {
	for _, rule := range r.Rules(target.Box, sameFrame, canSplit, hasTitleBar) {
		if rule.Match(pointer, target.Box) {
			a := anchorAt(rule.Rect(target.Box), rule.Zone, target.ID, rule.Self)
			observability.Dock().OnAnchor(target.ID, a.Zone.String(), a.Self)
			return a, true
		}
	}
	observability.Dock().OnMiss(target.ID)
	return Anchor{}, false
}

// CheckAnchorDrop resolves the pointer against target and reports the anchor
// to ghost. It returns false, without touching ghost, when no zone applies.
// ghost may be nil.
func (r *Resolver) CheckAnchorDrop(pointer geom.Point, sameFrame bool, ghost Ghost, canSplit bool, target Target, hasTitleBar bool) bool {
	a, ok := r.Resolve(pointer, sameFrame, canSplit, target, hasTitleBar)
	if !ok {
		return false
	}
	if ghost != nil {
		ghost.Anchor(pointer, a)
	}
	return true
}
