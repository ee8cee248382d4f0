package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	run := CollectionRun{Items: []CollectionItem{
		{AmountCents: 2500},
		{AmountCents: 1000},
		{AmountCents: 750},
	}}

	cents, count := run.ComputeTotals()
	assert.Equal(t, int64(4250), cents)
	assert.Equal(t, 3, count)
}

func TestBreakdown_GroupsInFixedSequenceOrder(t *testing.T) {
	run := CollectionRun{Items: []CollectionItem{
		{AmountCents: 1000, SequenceType: SequenceRCUR},
		{AmountCents: 2500, SequenceType: SequenceFRST},
		{AmountCents: 500, SequenceType: SequenceRCUR},
	}}

	breakdown := run.Breakdown()
	assert.Len(t, breakdown, 2)
	assert.Equal(t, SequenceFRST, breakdown[0].SequenceType)
	assert.Equal(t, 1, breakdown[0].Count)
	assert.Equal(t, int64(2500), breakdown[0].AmountCents)
	assert.Equal(t, SequenceRCUR, breakdown[1].SequenceType)
	assert.Equal(t, 2, breakdown[1].Count)
	assert.Equal(t, int64(1500), breakdown[1].AmountCents)
}

func TestBreakdownSums_MatchRunTotals(t *testing.T) {
	run := CollectionRun{Items: []CollectionItem{
		{AmountCents: 2500, SequenceType: SequenceFRST},
		{AmountCents: 1000, SequenceType: SequenceRCUR},
		{AmountCents: 300, SequenceType: SequenceOOFF},
	}}
	run.TotalAmountCents, run.TotalCount = run.ComputeTotals()

	var cents int64
	var count int
	for _, b := range run.Breakdown() {
		cents += b.AmountCents
		count += b.Count
	}
	assert.Equal(t, run.TotalAmountCents, cents)
	assert.Equal(t, run.TotalCount, count)
}
