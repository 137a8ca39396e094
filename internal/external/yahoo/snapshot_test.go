package yahoo

import (
	"math"
	"testing"
	"time"
)

func period(end string, items map[string]float64) Period {
	t, _ := time.Parse("2006-01-02", end)
	return Period{EndDate: t, Label: end, Items: items}
}

func TestStatementValueAliasFallback(t *testing.T) {
	st := Statement{Periods: []Period{
		period("2024-03-31", map[string]float64{
			"operatingIncome": 300,
			"totalRevenue":    math.NaN(),
			"revenue":         1300,
		}),
	}}

	// First alias wins when present.
	if got := st.Value(0, "operatingIncome", "operatingProfit"); got != 300 {
		t.Errorf("Value(operatingIncome) = %v, want 300", got)
	}

	// NaN falls through to the next alias.
	if got := st.Value(0, "totalRevenue", "revenue"); got != 1300 {
		t.Errorf("Value(totalRevenue, revenue) = %v, want 1300", got)
	}

	// Missing everywhere yields 0.
	if got := st.Value(0, "netIncome"); got != 0 {
		t.Errorf("Value(netIncome) = %v, want 0", got)
	}

	// Out-of-range period index yields 0.
	if got := st.Value(5, "operatingIncome"); got != 0 {
		t.Errorf("Value(period 5) = %v, want 0", got)
	}
}

func TestStatementSortRecentFirst(t *testing.T) {
	st := Statement{Periods: []Period{
		period("2021-03-31", map[string]float64{"totalRevenue": 90}),
		period("2024-03-31", map[string]float64{"totalRevenue": 120}),
		period("2022-03-31", map[string]float64{"totalRevenue": 100}),
		period("2023-03-31", map[string]float64{"totalRevenue": 110}),
	}}

	st.sortRecentFirst()

	want := []float64{120, 110, 100, 90}
	for i, w := range want {
		if got := st.Value(i, "totalRevenue"); got != w {
			t.Errorf("period %d revenue = %v, want %v", i, got, w)
		}
	}
}

func TestSnapshotHasStatements(t *testing.T) {
	empty := &Snapshot{}
	if empty.HasStatements() {
		t.Error("empty snapshot should not have statements")
	}

	partial := &Snapshot{
		Income: Statement{Periods: []Period{period("2024-03-31", nil)}},
	}
	if partial.HasStatements() {
		t.Error("snapshot without balance sheet should not have statements")
	}

	full := &Snapshot{
		Income:  Statement{Periods: []Period{period("2024-03-31", nil)}},
		Balance: Statement{Periods: []Period{period("2024-03-31", nil)}},
	}
	if !full.HasStatements() {
		t.Error("snapshot with both statements should have statements")
	}
}
