package summary

import (
	"math/rand"
	"testing"

	"github.com/panbanda/tally/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine_MatchesSequentialFold(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	reports := randomReports(rng, 50)
	want := Summarize(reports)

	for _, split := range []int{0, 1, 17, 49, 50} {
		got := Combine(Summarize(reports[:split]), Summarize(reports[split:]))
		assertSummaryEqual(t, want, got)
	}
}

func TestCombine_Associative(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	reports := randomReports(rng, 30)
	a := Summarize(reports[:10])
	b := Summarize(reports[10:20])
	c := Summarize(reports[20:])

	assertSummaryEqual(t, Combine(Combine(a, b), c), Combine(a, Combine(b, c)))
}

func TestCombine_Commutative(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	reports := randomReports(rng, 20)
	a := Summarize(reports[:8])
	b := Summarize(reports[8:])

	assertSummaryEqual(t, Combine(a, b), Combine(b, a))
}

func TestCombine_Nil(t *testing.T) {
	s := Summarize([]*models.Report{locReport("a", 5)})

	got := Combine(nil, s)
	require.NotNil(t, got.Loc)
	assert.Equal(t, 5.0, got.Loc.Sloc)

	got = Combine(s, nil)
	assert.Equal(t, 5.0, got.Loc.Sloc)

	empty := Combine(nil, nil)
	assert.Equal(t, 0, empty.Reports)
	assert.False(t, empty.Present(CategoryLoc))
}

func TestCombine_DoesNotModifyInputs(t *testing.T) {
	a := Summarize([]*models.Report{locReport("a", 1)})
	b := Summarize([]*models.Report{locReport("b", 2)})

	Combine(a, b)

	assert.Equal(t, 1.0, a.Loc.Sloc)
	assert.Equal(t, 1, a.Loc.Count)
	assert.Equal(t, 2.0, b.Loc.Sloc)
	assert.Equal(t, 1, b.Loc.Count)
}

func TestSummarizeParallel(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	reports := randomReports(rng, 200)
	want := Summarize(reports)

	for _, partitions := range []int{0, 1, 2, 3, 8, 16} {
		got := SummarizeParallel(reports, partitions)
		assertSummaryEqual(t, want, got)
		for _, c := range Categories() {
			assert.Equal(t, want.Coverage().Present(c), got.Coverage().Present(c),
				"coverage %s with %d partitions", c, partitions)
		}
	}
}

func TestSummarizeParallel_Small(t *testing.T) {
	s := SummarizeParallel([]*models.Report{locReport("a", 3)}, 8)
	require.NotNil(t, s.Loc)
	assert.Equal(t, 3.0, s.Loc.Sloc)

	assert.Equal(t, 0, SummarizeParallel(nil, 4).Reports)
}
