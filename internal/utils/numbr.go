package utils

import (
	"math"
	"strconv"
	"strings"
)

// strips currency/percent markers and every flavour of space the exports use
var cleaner = strings.NewReplacer("R$", "", "%", "", "\u00A0", "", "\u202F", "", " ", "", "\t", "")

// ParseFloatBR parses Brazilian-formatted numeric text: "1.234,56", "32,37",
// "R$ 10,00", "15,5%". Empty cells and the "-" placeholder yield 0 — a bad
// cell must never abort a batch.
func ParseFloatBR(s string) float64 {
	s = cleaner.Replace(strings.TrimSpace(s))
	if s == "" || s == "-" {
		return 0
	}
	if strings.Contains(s, ",") {
		// a decimal comma makes every dot a thousands separator
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Round2 rounds to 2 decimals (aggregation boundaries).
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Round3 rounds to 3 decimals (quantities, turnover ratios).
func Round3(v float64) float64 { return math.Round(v*1000) / 1000 }
