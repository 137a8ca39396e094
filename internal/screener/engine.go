package screener

import (
	"context"
	"math"

	"github.com/wonny/kabuscan/internal/external/yahoo"
	"github.com/wonny/kabuscan/internal/external/yahoojp"
	"github.com/wonny/kabuscan/pkg/logger"
)

// Gate thresholds.
const (
	minCostRatio  = 1.15 // gate 1: revenue / cost
	minPayoutPct  = 20.0 // gate 2 band, percent
	maxPayoutPct  = 60.0
	growthPeriods = 4   // gate 3: consecutive fiscal years required
	minUpside     = 2.0 // final verdict threshold
)

// Line-item aliases, tried in order.
var (
	revenueKeys  = []string{"totalRevenue"}
	opIncomeKeys = []string{"operatingIncome", "operatingProfit"}
	equityKeys   = []string{"totalStockholderEquity", "totalEquity", "stockholdersEquity"}
)

// SnapshotProvider fetches financial statements and quote data.
type SnapshotProvider interface {
	FetchSnapshot(ctx context.Context, ticker string) (*yahoo.Snapshot, error)
}

// ProfileProvider fetches best-effort descriptive data.
type ProfileProvider interface {
	FetchProfile(ctx context.Context, ticker string) yahoojp.Profile
}

// Engine runs the three-gate qualification and valuation cascade for a
// single ticker. Pure given its inputs apart from the provider calls.
type Engine struct {
	snapshots SnapshotProvider
	profiles  ProfileProvider
	logger    *logger.Logger
}

// NewEngine creates a new valuation engine.
func NewEngine(snapshots SnapshotProvider, profiles ProfileProvider, log *logger.Logger) *Engine {
	return &Engine{
		snapshots: snapshots,
		profiles:  profiles,
		logger:    log.WithField("module", "screener"),
	}
}

// Analyze screens one ticker. It always returns a fully-populated Result:
// when a gate fails or required data is missing the fields computed so far
// are kept and everything downstream stays at its unknown default. Faults
// never escape the ticker boundary.
func (e *Engine) Analyze(ctx context.Context, ticker string, prices PriceCache) (res *Result) {
	res = NewResult(ticker)

	// Per-ticker boundary: an unexpected fault degrades to the
	// partially-filled result instead of killing sibling analyses.
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"panic":  r,
			}).Error("Analysis panicked, returning partial result")
		}
	}()

	profile := e.profiles.FetchProfile(ctx, ticker)
	res.Name = profile.Name
	res.Sector = profile.Sector

	snap, err := e.snapshots.FetchSnapshot(ctx, ticker)
	if err != nil {
		e.logger.WithError(err).WithField("ticker", ticker).Debug("Snapshot fetch failed")
		return res
	}
	if !snap.HasStatements() {
		e.logger.WithField("ticker", ticker).Debug("No statement data, skipping")
		return res
	}

	// Current price: batch cache first, live quote fallback.
	price := prices.Get(ticker)
	if price == nil {
		price = snap.Quote.CurrentPrice
	}
	if price == nil {
		price = snap.Quote.PreviousClose
	}
	res.Price = price

	// --- Phase 1: qualification gates ---

	// Gate 1: cost efficiency
	revenue := snap.Income.Value(0, revenueKeys...)
	opIncome := snap.Income.Value(0, opIncomeKeys...)
	cost := revenue - opIncome

	gate1 := false
	if revenue > 0 && opIncome > 0 && cost > 0 {
		ratio := revenue / cost
		res.CostRatio = ptr(round2(ratio))
		if ratio >= minCostRatio {
			res.Judge1 = JudgePass
			gate1 = true
		}
	}

	// Gate 2: payout ratio, scraped figure preferred over the quote
	// provider's. Both are percent 0-100 after ingestion.
	payout := profile.PayoutRatioPct
	if payout == nil {
		payout = snap.Quote.PayoutRatioPct
	}

	gate2 := false
	if payout != nil {
		res.PayoutPct = payout
		if *payout >= minPayoutPct && *payout <= maxPayoutPct {
			res.Judge2 = JudgePass
			gate2 = true
		}
	}

	// Gate 3: sustained revenue growth over 4 fiscal years
	gate3 := false
	if len(snap.Income.Periods) >= growthPeriods {
		revs := make([]float64, growthPeriods)
		allPositive := true
		for i := 0; i < growthPeriods; i++ {
			revs[i] = snap.Income.Value(i, revenueKeys...)
			if revs[i] <= 0 {
				allPositive = false
			}
		}

		if allPositive {
			if revs[0] > revs[1] && revs[1] > revs[2] && revs[2] > revs[3] {
				res.Judge3 = JudgePass
				gate3 = true
			}
			// 3-year CAGR, recorded even when the strict-decrease
			// check fails.
			cagr := math.Pow(revs[0]/revs[3], 1.0/3.0) - 1
			res.CAGR = &cagr
		}
	}

	if !(gate1 && gate2 && gate3) {
		return res
	}

	// --- Phase 2: valuation cascade ---

	cap := snap.Quote.MarketCap
	if cap == 0 {
		return res
	}
	capOku := cap / oku
	res.MarketCap = &capOku

	shares := snap.Quote.SharesOutstanding
	if shares == 0 {
		return res
	}
	res.Shares = &shares

	equity := snap.Balance.Value(0, equityKeys...)
	if equity == 0 {
		return res
	}
	equityOku := equity / oku
	res.Equity = &equityOku

	opIncomeOku := opIncome / oku
	res.OperatingIncome = &opIncomeOku
	res.FiscalPeriod = snap.Income.Periods[0].Label

	nopat := opIncomeOku * NopatCoef
	res.NOPAT = &nopat

	pseudoDiv := nopat * DividendCoef
	res.PseudoDividend = &pseudoDiv

	if equityOku <= 0 {
		return res
	}
	pseudoROE := nopat / equityOku
	res.PseudoROE = &pseudoROE

	tier, mult := roeTier(pseudoROE)
	res.ROETier = tier
	res.Multiplier7Y = &mult

	futureDiv := pseudoDiv * mult
	res.Dividend7Y = &futureDiv

	if capOku <= 0 {
		return res
	}
	futureYield := futureDiv / capOku
	res.FutureYield = &futureYield

	upside := futureYield / MarketYield
	res.Upside = ptr(round2(upside))

	if price != nil {
		res.TargetPrice = ptr(math.Round(*price * upside))
	}

	if upside >= minUpside {
		res.FinalJudge = JudgePass
	}

	return res
}

// roeTier maps pseudo-ROE (fraction) to its tier label and 7-year
// dividend multiplier. Boundaries are inclusive: exactly 20% lands in
// the top tier.
func roeTier(roe float64) (string, float64) {
	switch {
	case roe >= 0.20:
		return ROETier20Plus, 4.0
	case roe >= 0.15:
		return ROETier15To20, 3.0
	case roe >= 0.10:
		return ROETier10To15, 2.0
	default:
		return ROETierUnder10, 1.5
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}
