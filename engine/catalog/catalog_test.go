package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

func fixture() []ChainEntity {
	return []ChainEntity{
		{Name: "Alpha", Symbol: "ALP", Status: StatusLive, DepositAmount: 300},
		{Name: "Bravo", Symbol: "BRV", Status: StatusLive, DepositAmount: 1200},
		{Name: "Charlie", Symbol: "CHL", Status: StatusNext, DepositAmount: 300},
		{Name: "Delta", Symbol: "DLT", Status: StatusMystery, DepositAmount: 500},
		{Name: "Echo", Symbol: "ECH", Status: StatusNext, DepositAmount: 0},
	}
}

func names(es []ChainEntity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func TestCatalogAllAndByIndex(t *testing.T) {
	c, err := NewCatalog(fixture())
	require.NoError(t, err)

	assert.Equal(t, 5, c.Len())
	all := c.All()
	for i, e := range all {
		assert.Equal(t, i, e.Index, "index assigned at ingestion")
	}

	e, ok := c.ByIndex(2)
	require.True(t, ok)
	assert.Equal(t, "Charlie", e.Name)

	_, ok = c.ByIndex(5)
	assert.False(t, ok)
	_, ok = c.ByIndex(-1)
	assert.False(t, ok)
}

func TestCatalogReadsAreCopies(t *testing.T) {
	c, err := NewCatalog(fixture())
	require.NoError(t, err)

	all := c.All()
	all[0].DepositAmount = 1e9
	e, _ := c.ByIndex(0)
	assert.Equal(t, float64(300), e.DepositAmount)
}

func TestSortedByDepositStableAscending(t *testing.T) {
	c, err := NewCatalog(fixture())
	require.NoError(t, err)

	asc := c.SortedByDeposit(true)
	assert.Equal(t, []string{"Echo", "Alpha", "Charlie", "Delta", "Bravo"}, names(asc))
	assert.Equal(t, "Bravo", asc[len(asc)-1].Name, "maximum deposit sorts last")

	desc := c.SortedByDeposit(false)
	assert.Equal(t, []string{"Bravo", "Delta", "Alpha", "Charlie", "Echo"}, names(desc))
}

func TestSortedByDepositRecomputedAfterReingest(t *testing.T) {
	c, err := NewCatalog(fixture())
	require.NoError(t, err)
	v := c.Version()

	next := fixture()
	next[4].DepositAmount = 5000
	require.NoError(t, c.Reingest(next))

	assert.Greater(t, c.Version(), v)
	asc := c.SortedByDeposit(true)
	assert.Equal(t, "Echo", asc[len(asc)-1].Name)
}

func TestReingestRejectsNegativeDeposit(t *testing.T) {
	c, err := NewCatalog(fixture())
	require.NoError(t, err)
	v := c.Version()

	bad := fixture()
	bad[1].DepositAmount = -1
	err = c.Reingest(bad)
	require.ErrorIs(t, err, common.ErrInvalidEntity)
	assert.Contains(t, err.Error(), "Bravo")
	assert.Contains(t, err.Error(), "negative")

	assert.Equal(t, v, c.Version(), "previous contents kept")
	e, _ := c.ByIndex(1)
	assert.Equal(t, float64(1200), e.DepositAmount)
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ChainEntity)
	}{
		{"negative deposit", func(e *ChainEntity) { e.DepositAmount = -0.01 }},
		{"nan deposit", func(e *ChainEntity) { e.DepositAmount = math.NaN() }},
		{"infinite deposit", func(e *ChainEntity) { e.DepositAmount = math.Inf(1) }},
		{"empty name", func(e *ChainEntity) { e.Name = "" }},
		{"unknown status", func(e *ChainEntity) { e.Status = Status(9) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := fixture()
			tt.mutate(&es[3])
			c, err := NewCatalog(es)
			assert.ErrorIs(t, err, common.ErrInvalidEntity)
			assert.Nil(t, c)
		})
	}
}

func TestMaxDepositIgnoresMystery(t *testing.T) {
	es := []ChainEntity{
		{Name: "A", Status: StatusLive, DepositAmount: 100},
		{Name: "M", Status: StatusMystery, DepositAmount: 9000},
	}
	c, err := NewCatalog(es)
	require.NoError(t, err)
	assert.Equal(t, float64(100), c.MaxDeposit())
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{"Live": StatusLive, " next ": StatusNext, "MYSTERY": StatusMystery} {
		got, err := ParseStatus(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStatus("retired")
	assert.Error(t, err)
}
