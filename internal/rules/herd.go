package rules

import (
	"strings"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
)

// herdRules apply when the claim takes the multiple-herds journey. The herd
// section matches one of two shapes: a new herd (version 1, named) or an
// update to an existing one (higher version, name omitted to keep the stored
// name).
func herdRules(d *domain.ClaimData) []FieldRule {
	return []FieldRule{{
		Path:     "data.herd",
		Required: true,
		Present:  func(d *domain.ClaimData) bool { return d.Herd != nil },
		Check: func(d *domain.ClaimData) []Violation {
			return checkHerd(d.Herd)
		},
	}}
}

func checkHerd(h *domain.HerdInput) []Violation {
	var out []Violation

	if h.HerdVersion < 1 {
		out = append(out, Violation{Path: "data.herd.herdVersion", Message: "must be greater than or equal to 1"})
	}
	if strings.TrimSpace(h.CPH) == "" {
		out = append(out, Violation{Path: "data.herd.cph", Message: "is required"})
	}
	if len(h.HerdReasons) == 0 {
		out = append(out, Violation{Path: "data.herd.herdReasons", Message: "is required"})
	} else {
		for _, reason := range h.HerdReasons {
			if strings.TrimSpace(reason) == "" {
				out = append(out, Violation{Path: "data.herd.herdReasons", Message: "is not allowed to be empty"})
				break
			}
		}
	}

	if h.HerdVersion == 1 {
		// New herd: must be named; herdSame records whether it matches the
		// herd used on earlier claims.
		if strings.TrimSpace(h.HerdName) == "" {
			out = append(out, Violation{Path: "data.herd.herdName", Message: "is required"})
		}
		if h.HerdSame != nil && *h.HerdSame != domain.Yes && *h.HerdSame != domain.No {
			out = append(out, Violation{Path: "data.herd.herdSame", Message: "must be one of [yes, no]"})
		}
	} else if h.HerdVersion > 1 {
		// Update: an id is needed to find the lineage; herdSame only applies
		// to brand-new herds.
		if strings.TrimSpace(h.HerdID) == "" {
			out = append(out, Violation{Path: "data.herd.herdId", Message: "is required"})
		}
		if h.HerdSame != nil {
			out = append(out, Violation{Path: "data.herd.herdSame", Message: "is not allowed"})
		}
	}

	return out
}
