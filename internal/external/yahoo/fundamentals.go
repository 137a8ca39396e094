package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

const quoteSummaryModules = "incomeStatementHistory,balanceSheetHistory,price,summaryDetail,defaultKeyStatistics"

// rawValue is Yahoo's {raw, fmt} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			IncomeStatementHistory struct {
				IncomeStatementHistory []map[string]json.RawMessage `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistory"`
			BalanceSheetHistory struct {
				BalanceSheetStatements []map[string]json.RawMessage `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistory"`
			Price struct {
				MarketCap                  rawValue `json:"marketCap"`
				RegularMarketPrice         rawValue `json:"regularMarketPrice"`
				RegularMarketPreviousClose rawValue `json:"regularMarketPreviousClose"`
			} `json:"price"`
			SummaryDetail struct {
				PayoutRatio   rawValue `json:"payoutRatio"`
				PreviousClose rawValue `json:"previousClose"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				SharesOutstanding rawValue `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchSnapshot fetches financial statements and quote data for a ticker.
// 決算データの取得はこの関数でのみ行う
func (c *Client) FetchSnapshot(ctx context.Context, ticker string) (*Snapshot, error) {
	fullURL := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=%s&lang=en-US",
		c.baseURL, url.PathEscape(ticker), quoteSummaryModules,
	)

	var qs quoteSummaryResponse
	if err := c.getJSON(ctx, fullURL, &qs); err != nil {
		return nil, err
	}

	if qs.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", qs.QuoteSummary.Error.Description)
	}
	if len(qs.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quoteSummary result for %s", ticker)
	}

	result := qs.QuoteSummary.Result[0]

	snap := &Snapshot{
		Income:  parseStatement(result.IncomeStatementHistory.IncomeStatementHistory),
		Balance: parseStatement(result.BalanceSheetHistory.BalanceSheetStatements),
	}

	snap.Quote = QuoteInfo{
		MarketCap:         deref(result.Price.MarketCap.Raw),
		SharesOutstanding: deref(result.DefaultKeyStatistics.SharesOutstanding.Raw),
		CurrentPrice:      result.Price.RegularMarketPrice.Raw,
	}

	if result.Price.RegularMarketPreviousClose.Raw != nil {
		snap.Quote.PreviousClose = result.Price.RegularMarketPreviousClose.Raw
	} else {
		snap.Quote.PreviousClose = result.SummaryDetail.PreviousClose.Raw
	}

	// Yahoo reports payout ratio as a fraction; the model's canonical
	// scale is percent (0-100), converted here at the ingestion boundary.
	if r := result.SummaryDetail.PayoutRatio.Raw; r != nil {
		pct := *r * 100
		snap.Quote.PayoutRatioPct = &pct
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":          ticker,
		"income_periods":  len(snap.Income.Periods),
		"balance_periods": len(snap.Balance.Periods),
	}).Debug("Fetched snapshot")

	return snap, nil
}

// parseStatement converts raw statement entries into an ordered Statement.
func parseStatement(entries []map[string]json.RawMessage) Statement {
	var st Statement

	for _, entry := range entries {
		period := Period{Items: make(map[string]float64)}

		for key, raw := range entry {
			var rv rawValue
			if err := json.Unmarshal(raw, &rv); err != nil {
				continue
			}
			if key == "endDate" {
				if rv.Raw != nil {
					period.EndDate = time.Unix(int64(*rv.Raw), 0).UTC()
				}
				period.Label = rv.Fmt
				continue
			}
			if rv.Raw != nil {
				period.Items[key] = *rv.Raw
			}
		}

		if period.EndDate.IsZero() && len(period.Items) == 0 {
			continue
		}
		st.Periods = append(st.Periods, period)
	}

	st.sortRecentFirst()
	return st
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
