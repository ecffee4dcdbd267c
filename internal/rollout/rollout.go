// Package rollout answers whether a claim's visit date falls under a feature
// release. Its predicates are pure: validation and amount calculation both
// call them and must land on the same branch for the same claim.
package rollout

import (
	"fmt"
	"time"

	applicationdomain "github.com/agriwelfare/stockclaims/internal/application/domain"
)

// PiHuntAndDairyGoLive is the visit date (inclusive) from which the reworked
// PI-hunt rules and dairy follow-ups apply.
var PiHuntAndDairyGoLive = time.Date(2025, time.January, 21, 0, 0, 0, 0, time.UTC)

// Config is the feature snapshot threaded through validation and amount
// calculation. It is captured once per request, never read from globals.
type Config struct {
	MultiHerdEnabled bool
	MultiHerdGoLive  time.Time
}

// DateParseError reports a dateOfVisit that could not be parsed. It
// short-circuits rule selection and is surfaced as a validation failure at
// the boundary.
type DateParseError struct {
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("dateOfVisit %q is not a valid date", e.Value)
}

var visitDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseVisitDate parses a submitted visit date. Dates arrive as ISO strings
// with or without a time component.
func ParseVisitDate(raw string) (time.Time, error) {
	for _, layout := range visitDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &DateParseError{Value: raw}
}

// VisitOnOrAfterPiHuntGoLive reports whether the visit date activates the
// post-go-live PI-hunt rules for beef and dairy follow-ups.
func VisitOnOrAfterPiHuntGoLive(dateOfVisit string) (bool, error) {
	visit, err := ParseVisitDate(dateOfVisit)
	if err != nil {
		return false, err
	}
	return !visit.Before(PiHuntAndDairyGoLive), nil
}

// MultipleHerdsJourney reports whether the claim takes the multiple-herds
// journey: the feature is enabled, the visit date is on or after go-live,
// and no live flag on the application opts it out.
func MultipleHerdsJourney(dateOfVisit string, flags []applicationdomain.Flag, cfg Config) (bool, error) {
	if !cfg.MultiHerdEnabled {
		return false, nil
	}
	visit, err := ParseVisitDate(dateOfVisit)
	if err != nil {
		return false, err
	}
	if visit.Before(cfg.MultiHerdGoLive) {
		return false, nil
	}
	for _, flag := range flags {
		if flag.AppliesToMH && !flag.Deleted() {
			return false, nil
		}
	}
	return true, nil
}
