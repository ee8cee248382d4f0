// Package plan holds the pure per-donor resolution rules: when a donor is
// collectible and which SEPA sequence type the collection carries.
package plan

import (
	"time"

	collectiondomain "github.com/solidaria/backoffice/internal/collection/domain"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
)

// ResolveStatus computes a donor's collection state for a collection date.
// Pure: identical inputs always yield the identical status.
func ResolveStatus(d donordomain.Donor, collectionDate time.Time) collectiondomain.Status {
	status := collectiondomain.Status{Periodicity: d.Periodicity}

	switch d.Periodicity {
	case donordomain.PeriodicityUnset:
		status.Type = collectiondomain.StatusUnset
		return status
	case donordomain.PeriodicityManual:
		status.Type = collectiondomain.StatusManual
		return status
	}

	window := d.Periodicity.Months()

	if d.SepaPain008LastRunAt == nil {
		status.Type = collectiondomain.StatusDue
		// A non-monthly donor with no recorded run may already have been
		// collected outside the system.
		status.MigrationRisk = d.Periodicity != donordomain.PeriodicityMonthly
		return status
	}

	elapsed := monthsBetween(*d.SepaPain008LastRunAt, collectionDate)
	switch {
	// Monthly donors are collected on every run; the quota never blocks
	// them.
	case elapsed < window && d.Periodicity != donordomain.PeriodicityMonthly:
		status.Type = collectiondomain.StatusBlocked
	case elapsed > 2*window:
		status.Type = collectiondomain.StatusOverdue
	default:
		status.Type = collectiondomain.StatusDue
	}
	return status
}

// monthsBetween counts whole calendar months from a to b, clamped at zero.
func monthsBetween(a, b time.Time) int {
	a, b = a.UTC(), b.UTC()
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
