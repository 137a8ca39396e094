package yahoojp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/kabuscan/pkg/httputil"
	"github.com/wonny/kabuscan/pkg/logger"
)

// Profile holds best-effort descriptive data scraped from Yahoo!ファイナンス.
// Every field is independently optional: a failed or partial scrape leaves
// the defaults in place (Name = ticker, Sector = "-", PayoutRatioPct = nil).
type Profile struct {
	Name           string
	Sector         string
	PayoutRatioPct *float64 // percent, 0-100
}

// tseSectors is the TSE 33-sector classification (東証33業種).
var tseSectors = []string{
	"水産・農林業", "鉱業", "建設業", "食料品", "繊維製品", "パルプ・紙", "化学",
	"医薬品", "石油・石炭製品", "ゴム製品", "ガラス・土石製品", "鉄鋼", "非鉄金属",
	"金属製品", "機械", "電気機器", "輸送用機器", "精密機器", "その他製品",
	"電気・ガス業", "陸運業", "海運業", "空運業", "倉庫・運輸関連業", "情報・通信業",
	"卸売業", "小売業", "銀行業", "証券、商品先物取引業", "保険業",
	"その他金融業", "不動産業", "サービス業",
}

var titleNameRe = regexp.MustCompile(`(.*?)【`)

// Client scrapes company profile data from Yahoo!ファイナンス.
// スクレイピングはこのクライアントでのみ行う
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo!ファイナンス scrape client. The passed HTTP
// client is expected to carry pacing configuration; this package adds none.
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    "https://finance.yahoo.co.jp",
	}
}

// FetchProfile fetches name, sector and payout ratio for a ticker.
// Best effort: never returns an error. Whatever could not be resolved
// stays at its default.
func (c *Client) FetchProfile(ctx context.Context, ticker string) Profile {
	code := strings.TrimSuffix(ticker, ".T")

	profile := Profile{
		Name:   ticker,
		Sector: "-",
	}

	if html, err := c.fetchHTML(ctx, fmt.Sprintf("/quote/%s.T/dividend", code)); err == nil {
		profile.PayoutRatioPct = parsePayoutRatio(html)
	} else {
		c.logger.WithError(err).WithField("ticker", ticker).Debug("Dividend page fetch failed")
	}

	if html, err := c.fetchHTML(ctx, fmt.Sprintf("/quote/%s.T/profile", code)); err == nil {
		if name := parseCompanyName(html); name != "" {
			profile.Name = name
		}
		if sector := parseSector(html); sector != "" {
			profile.Sector = sector
		}
	} else {
		c.logger.WithError(err).WithField("ticker", ticker).Debug("Profile page fetch failed")
	}

	return profile
}

// fetchHTML fetches a page from Yahoo!ファイナンス.
func (c *Client) fetchHTML(ctx context.Context, path string) (string, error) {
	resp, err := c.httpClient.Get(ctx, c.baseURL+path)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// parsePayoutRatio extracts the 配当性向 percentage from the dividend page.
// Returns nil when the row is absent or carries a placeholder value.
func parsePayoutRatio(html string) *float64 {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var ratio *float64
	doc.Find("th").EachWithBreak(func(i int, th *goquery.Selection) bool {
		if !strings.Contains(th.Text(), "配当性向") {
			return true
		}

		td := th.NextFiltered("td")
		if td.Length() == 0 {
			td = th.Parent().Find("td").First()
		}

		text := strings.TrimSpace(td.Text())
		text = strings.ReplaceAll(text, "%", "")
		text = strings.ReplaceAll(text, "％", "")
		if text == "" || text == "-" || text == "---" {
			return false
		}

		if v, err := strconv.ParseFloat(text, 64); err == nil {
			ratio = &v
		}
		return false
	})

	return ratio
}

// parseCompanyName extracts the company name from the page title, which
// has the form "トヨタ自動車(株)【7203】..." on Yahoo!ファイナンス.
func parseCompanyName(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	title := doc.Find("title").First().Text()
	if m := titleNameRe.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// parseSector finds the first TSE sector name mentioned in the page text.
func parseSector(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	text := doc.Text()
	for _, sector := range tseSectors {
		if strings.Contains(text, sector) {
			return sector
		}
	}
	return ""
}
