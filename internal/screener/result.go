package screener

import (
	"math"
)

// Fixed model coefficients.
const (
	NopatCoef    = 0.6   // M: NOPAT係数
	DividendCoef = 0.4   // N: 擬似配当係数
	MarketYield  = 0.021 // V: 市場平均配当利回り (2.1%)
)

// Judgment labels.
const (
	JudgePass = "合格"
	JudgeFail = "不合格"
)

// ROE tier labels, mirroring the multiplier bands.
const (
	ROETier20Plus  = "20%以上"
	ROETier15To20  = "15-20%"
	ROETier10To15  = "10-15%"
	ROETierUnder10 = "10%未満"
)

// RowWidth is the fixed number of output columns per ticker. The column
// order is a compatibility contract for downstream sheet readers.
const RowWidth = 27

// oku scales raw yen figures to 億円.
const oku = 1e8

// PriceCache maps ticker to last-known close price. Built once per batch
// and read-only while the batch's analyses run. A missing key and a nil
// value mean the same thing: fall back to a live quote.
type PriceCache map[string]*float64

// Get returns the cached price or nil. Safe on a nil map.
func (pc PriceCache) Get(ticker string) *float64 {
	if pc == nil {
		return nil
	}
	return pc[ticker]
}

// Result is the per-ticker screening record. Every field starts at its
// "unknown/fail" default; the gate and cascade logic fills fields in as
// far as it gets, so the record is always fully populated no matter how
// early the computation stops.
type Result struct {
	Ticker string

	// Descriptive
	Name   string
	Sector string

	// Gate 1: cost efficiency
	CostRatio *float64
	Judge1    string

	// Gate 2: payout ratio (percent, 0-100)
	PayoutPct *float64
	Judge2    string

	// Gate 3: sustained revenue growth
	CAGR   *float64
	Judge3 string

	// Valuation cascade (money fields in 億円)
	Price           *float64
	TargetPrice     *float64
	FinalJudge      string
	MarketCap       *float64
	Shares          *float64
	Equity          *float64
	OperatingIncome *float64
	FiscalPeriod    string
	NOPAT           *float64
	PseudoDividend  *float64
	PseudoROE       *float64
	ROETier         string
	Multiplier7Y    *float64
	Dividend7Y      *float64
	FutureYield     *float64
	Upside          *float64
}

// NewResult returns a Result with every field at its default sentinel.
func NewResult(ticker string) *Result {
	return &Result{
		Ticker:     ticker,
		Name:       ticker,
		Sector:     "-",
		Judge1:     JudgeFail,
		Judge2:     JudgeFail,
		Judge3:     JudgeFail,
		FinalJudge: JudgeFail,
	}
}

// Header returns the fixed header row (columns B..AB).
func Header() []interface{} {
	return []interface{}{
		"会社名", "業種",
		"①営業費用売上比率", "①判定",
		"②配当性向(%)", "②判定",
		"③売上高CAGR(%)", "③判定",
		"直近終値", "目標株価", "最終判定",
		"時価総額", "発行済株式数", "自己資本", "営業利益", "決算期",
		"NOPAT係数", "擬似配当係数",
		"NOPAT", "擬似配当", "擬似ROE(%)",
		"ROE区分", "7年後配当倍率", "7年後配当",
		"将来利回り(%)", "市場平均配当利回り",
		"上値目途(倍率)",
	}
}

// Row serializes the result into the fixed 27-cell output row. Unknown
// values become empty cells; NaN and Inf are sanitized the same way so
// poisoned numbers never reach the sink.
func (r *Result) Row() []interface{} {
	return []interface{}{
		r.Name, r.Sector,
		numCell(r.CostRatio), r.Judge1,
		numCell(r.PayoutPct), r.Judge2,
		numCell(r.CAGR), r.Judge3,
		numCell(r.Price), numCell(r.TargetPrice), r.FinalJudge,
		numCell(r.MarketCap), numCell(r.Shares), numCell(r.Equity), numCell(r.OperatingIncome), r.FiscalPeriod,
		NopatCoef, DividendCoef,
		numCell(r.NOPAT), numCell(r.PseudoDividend), numCell(r.PseudoROE),
		r.ROETier, numCell(r.Multiplier7Y), numCell(r.Dividend7Y),
		numCell(r.FutureYield), MarketYield,
		numCell(r.Upside),
	}
}

// BlankRow returns an all-empty row of the fixed schema width. Used when
// a ticker's analysis fails in a way the engine could not absorb.
func BlankRow() []interface{} {
	row := make([]interface{}, RowWidth)
	for i := range row {
		row[i] = ""
	}
	return row
}

// numCell converts an optional number to a sheet cell.
func numCell(v *float64) interface{} {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return ""
	}
	return *v
}
