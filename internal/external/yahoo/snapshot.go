package yahoo

import (
	"math"
	"sort"
	"time"
)

// Period is a single fiscal-period column of a financial statement.
type Period struct {
	EndDate time.Time
	Label   string // formatted fiscal date, e.g. "2024-03-31"
	Items   map[string]float64
}

// Statement is an ordered sequence of fiscal periods, most recent first.
type Statement struct {
	Periods []Period
}

// Empty reports whether the statement has no periods at all.
func (s Statement) Empty() bool {
	return len(s.Periods) == 0
}

// Value looks up a line item in the given period, trying keys in order.
// The first key that is present with a usable number wins; a key that is
// missing or NaN falls through to the next alias. No match returns 0.
func (s Statement) Value(periodIdx int, keys ...string) float64 {
	if periodIdx < 0 || periodIdx >= len(s.Periods) {
		return 0
	}
	items := s.Periods[periodIdx].Items
	for _, key := range keys {
		if v, ok := items[key]; ok && !math.IsNaN(v) {
			return v
		}
	}
	return 0
}

// sortRecentFirst orders periods newest to oldest. Provider order is not
// trusted: the gate logic indexes periods chronologically.
func (s *Statement) sortRecentFirst() {
	sort.SliceStable(s.Periods, func(i, j int) bool {
		return s.Periods[i].EndDate.After(s.Periods[j].EndDate)
	})
}

// QuoteInfo holds the per-ticker quote and key-statistics fields the
// screening model needs. Optional fields are nil when the provider did
// not return them.
type QuoteInfo struct {
	MarketCap         float64
	SharesOutstanding float64
	PayoutRatioPct    *float64 // normalized to 0-100 percent at ingestion
	CurrentPrice      *float64
	PreviousClose     *float64
}

// Snapshot is the per-ticker financial data bundle. Fetched fresh per
// analysis call and discarded afterwards.
type Snapshot struct {
	Income  Statement
	Balance Statement
	Quote   QuoteInfo
}

// HasStatements reports whether both statements carry data. Tickers
// without statement data are skipped with an all-unknown result.
func (s *Snapshot) HasStatements() bool {
	return !s.Income.Empty() && !s.Balance.Empty()
}
