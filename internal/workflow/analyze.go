package workflow

import "strings"

// Options toggles optional checks.
type Options struct {
	// ExtraChecks enables the view offset/scale checks.
	ExtraChecks bool
}

// FindingKind enumerates the issue categories the linter reports.
type FindingKind int

const (
	FindingUnreadable FindingKind = iota
	FindingMalformedPosition
	FindingMalformedSize
	FindingViewDisplaced
	FindingViewNotAtUnitScale
	FindingUnpinnedNode
)

func (k FindingKind) String() string {
	switch k {
	case FindingUnreadable:
		return "unreadable"
	case FindingMalformedPosition:
		return "malformed_position"
	case FindingMalformedSize:
		return "malformed_size"
	case FindingViewDisplaced:
		return "view_displaced"
	case FindingViewNotAtUnitScale:
		return "view_not_at_unit_scale"
	case FindingUnpinnedNode:
		return "unpinned_node"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind name in JSON output.
func (k FindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Finding is a single reportable issue. Count is set for the malformed
// categories and Node for unpinned nodes.
type Finding struct {
	Kind  FindingKind `json:"kind"`
	Count int         `json:"count,omitempty"`
	Node  *Node       `json:"node,omitempty"`
}

// Result aggregates every check for one input file.
type Result struct {
	File      string `json:"file"`
	Readable  bool   `json:"readable"`
	Reason    string `json:"reason,omitempty"`
	NodeCount int    `json:"node_count"`
	Unpinned  []Node `json:"unpinned,omitempty"`
	// Dimensions is nil when the document has no node list.
	Dimensions    *DimensionReport `json:"dimensions,omitempty"`
	ViewChecked   bool             `json:"view_checked"`
	ViewDisplaced bool             `json:"view_displaced"`
	ViewUnscaled  bool             `json:"view_unscaled"`
}

// Analyze runs node extraction, dimension validation and, when requested,
// view-state validation against doc.
func Analyze(file string, doc *Document, opts Options) Result {
	result := Result{
		File:      file,
		Readable:  true,
		NodeCount: doc.NodeCount(),
		Unpinned:  doc.UnpinnedNodes(),
	}
	if dims, ok := doc.CheckDimensions(); ok {
		result.Dimensions = &dims
	}
	if opts.ExtraChecks && doc != nil {
		result.ViewChecked = true
		result.ViewDisplaced = doc.View.Displaced()
		result.ViewUnscaled = doc.View.Unscaled()
	}
	return result
}

// Unreadable records a file whose workflow could not be loaded.
func Unreadable(file string, err error) Result {
	result := Result{File: file}
	if err != nil {
		result.Reason = strings.TrimSpace(err.Error())
	}
	return result
}

// Clean reports whether the file was read and no issue of any kind was found.
func (r Result) Clean() bool {
	return r.Readable && len(r.Findings()) == 0
}

// Findings lists the issues in reporting order: malformed positions,
// malformed sizes, view displacement, view scale, then one entry per
// unpinned node.
func (r Result) Findings() []Finding {
	if !r.Readable {
		return []Finding{{Kind: FindingUnreadable}}
	}
	var findings []Finding
	if r.Dimensions != nil {
		if r.Dimensions.InvalidPos > 0 {
			findings = append(findings, Finding{Kind: FindingMalformedPosition, Count: r.Dimensions.InvalidPos})
		}
		if r.Dimensions.InvalidSize > 0 {
			findings = append(findings, Finding{Kind: FindingMalformedSize, Count: r.Dimensions.InvalidSize})
		}
	}
	if r.ViewDisplaced {
		findings = append(findings, Finding{Kind: FindingViewDisplaced})
	}
	if r.ViewUnscaled {
		findings = append(findings, Finding{Kind: FindingViewNotAtUnitScale})
	}
	for i := range r.Unpinned {
		node := r.Unpinned[i]
		findings = append(findings, Finding{Kind: FindingUnpinnedNode, Node: &node})
	}
	return findings
}
