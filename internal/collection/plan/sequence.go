package plan

import (
	collectiondomain "github.com/solidaria/backoffice/internal/collection/domain"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
)

// ResolveSequenceType assigns the SEPA sequence type for a donor's next
// collection. FNAL is never produced here; it only arrives from the
// mandate-cancellation flow.
func ResolveSequenceType(d donordomain.Donor) collectiondomain.SequenceType {
	if !d.IsRecurring() {
		// Non-recurring donors should already be filtered out; if one
		// slips through it is a one-off collection.
		return collectiondomain.SequenceOOFF
	}
	if d.SepaPain008LastRunAt == nil {
		return collectiondomain.SequenceFRST
	}
	return collectiondomain.SequenceRCUR
}
