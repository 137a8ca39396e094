package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type sparkQuote struct {
	Close []*float64 `json:"close"`
}

type sparkChart struct {
	Indicators struct {
		Quote []sparkQuote `json:"quote"`
	} `json:"indicators"`
}

type sparkResult struct {
	Symbol   string       `json:"symbol"`
	Response []sparkChart `json:"response"`
}

type sparkResponse struct {
	Spark struct {
		Result []sparkResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"spark"`
}

// FetchLastCloses bulk-fetches the last close price for a set of tickers
// in a single request. The result always contains an entry per requested
// ticker; tickers the provider could not price map to nil. A provider
// failure degrades to an all-nil map, never an error: callers fall back
// to per-ticker live quotes.
// 株価の一括取得はこの関数でのみ行う
func (c *Client) FetchLastCloses(ctx context.Context, tickers []string) map[string]*float64 {
	prices := make(map[string]*float64, len(tickers))
	for _, t := range tickers {
		prices[t] = nil
	}

	if len(tickers) == 0 {
		return prices
	}

	fullURL := fmt.Sprintf(
		"%s/v7/finance/spark?symbols=%s&range=1d&interval=1d",
		c.sparkURL, url.QueryEscape(strings.Join(tickers, ",")),
	)

	var sr sparkResponse
	if err := c.getJSON(ctx, fullURL, &sr); err != nil {
		c.logger.WithError(err).WithField("tickers", len(tickers)).Warn("Bulk price fetch failed")
		return prices
	}
	if sr.Spark.Error != nil {
		c.logger.WithField("error", sr.Spark.Error.Description).Warn("Bulk price fetch returned error")
		return prices
	}

	found := 0
	for _, result := range sr.Spark.Result {
		if _, ok := prices[result.Symbol]; !ok {
			continue
		}
		if price := lastClose(result.Response); price != nil {
			prices[result.Symbol] = price
			found++
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(tickers),
		"resolved":  found,
	}).Debug("Fetched bulk prices")

	return prices
}

// lastClose extracts the most recent non-null close from a spark result.
func lastClose(charts []sparkChart) *float64 {
	for _, chart := range charts {
		for _, quote := range chart.Indicators.Quote {
			for i := len(quote.Close) - 1; i >= 0; i-- {
				if quote.Close[i] != nil {
					return quote.Close[i]
				}
			}
		}
	}
	return nil
}
