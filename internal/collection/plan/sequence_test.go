package plan

import (
	"testing"
	"time"

	collectiondomain "github.com/solidaria/backoffice/internal/collection/domain"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveSequenceType_FirstCollectionIsFRST(t *testing.T) {
	d := donordomain.Donor{MembershipType: donordomain.MembershipTypeRecurring}
	assert.Equal(t, collectiondomain.SequenceFRST, ResolveSequenceType(d))
}

func TestResolveSequenceType_PriorRunIsRCUR(t *testing.T) {
	last := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d := donordomain.Donor{
		MembershipType:       donordomain.MembershipTypeRecurring,
		SepaPain008LastRunAt: &last,
	}
	assert.Equal(t, collectiondomain.SequenceRCUR, ResolveSequenceType(d))
}

func TestResolveSequenceType_NonRecurringIsOOFF(t *testing.T) {
	last := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, collectiondomain.SequenceOOFF,
		ResolveSequenceType(donordomain.Donor{MembershipType: "one-time"}))
	// Even with a prior run: non-recurring never gets FRST/RCUR.
	assert.Equal(t, collectiondomain.SequenceOOFF,
		ResolveSequenceType(donordomain.Donor{MembershipType: "sponsor", SepaPain008LastRunAt: &last}))
}
