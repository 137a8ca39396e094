package universe

import (
	"fmt"
	"os"
	"strings"
)

// Normalize canonicalizes a raw ticker entry: trims whitespace and appends
// the Tokyo exchange suffix when the entry carries no market suffix at all.
// Returns "" for blank entries, which callers skip.
func Normalize(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}
	if !strings.Contains(t, ".") {
		t += ".T"
	}
	return t
}

// NormalizeAll canonicalizes a raw ticker list, dropping blanks and
// preserving order.
func NormalizeAll(raw []string) []string {
	tickers := make([]string, 0, len(raw))
	for _, r := range raw {
		if t := Normalize(r); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

// LoadFile reads a ticker universe from a newline-separated file.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ticker file: %w", err)
	}
	return NormalizeAll(strings.Split(string(data), "\n")), nil
}
