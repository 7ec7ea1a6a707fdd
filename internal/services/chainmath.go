package services

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultRoundDigits is the precision used for derived metric output.
const DefaultRoundDigits = 6

// FromChainFormat decodes a chain-format numeric string into a human value
// via value / 10^decimals. Empty, zero, or non-numeric input decodes to 0:
// optional upstream fields must not fail the pipeline.
func FromChainFormat(value string, decimals int) float64 {
	if value == "" || value == "0" {
		return 0
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0
	}
	return d.Shift(int32(-decimals)).InexactFloat64()
}

// SpotPriceFromChain converts a spot chain price. Spot prices are encoded
// relative to both token exponents: chainPrice * 10^(baseDecimals-quoteDecimals).
func SpotPriceFromChain(price string, baseDecimals, quoteDecimals int) float64 {
	if price == "" || price == "0" {
		return 0
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0
	}
	return d.Shift(int32(baseDecimals - quoteDecimals)).InexactFloat64()
}

// SpotQuantityFromChain converts a spot chain quantity: chainQuantity / 10^baseDecimals.
func SpotQuantityFromChain(quantity string, baseDecimals int) float64 {
	return FromChainFormat(quantity, baseDecimals)
}

// DerivativePriceFromChain converts a derivative chain price: chainPrice / 10^quoteDecimals.
func DerivativePriceFromChain(price string, quoteDecimals int) float64 {
	return FromChainFormat(price, quoteDecimals)
}

// ParseHumanQuantity parses a quantity that is already human-scaled, as
// derivative quantities are. Non-numeric input parses to 0.
func ParseHumanQuantity(quantity string) float64 {
	return FromChainFormat(quantity, 0)
}

// RoundTo rounds a value to the given number of decimal digits for stable
// output formatting. Ties follow the standard round-half-to-even of float
// formatting; digits <= 0 falls back to DefaultRoundDigits.
func RoundTo(value float64, digits int) float64 {
	if digits <= 0 {
		digits = DefaultRoundDigits
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', digits, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSquares float64
	for _, v := range values {
		diff := v - m
		sumSquares += diff * diff
	}
	variance := sumSquares / float64(len(values)-1)
	return math.Sqrt(variance)
}

// logReturns computes log returns of consecutive values, skipping any pair
// with a non-positive reading, which shrinks the return series.
func logReturns(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		if series[i-1] <= 0 || series[i] <= 0 {
			continue
		}
		returns = append(returns, math.Log(series[i]/series[i-1]))
	}
	return returns
}

// realizedVolatility is the sample standard deviation of the log returns of
// a price series. Fewer than 3 prices or 2 usable returns yields 0.
func realizedVolatility(prices []float64) float64 {
	if len(prices) < 3 {
		return 0
	}
	returns := logReturns(prices)
	if len(returns) < 2 {
		return 0
	}
	return sampleStdDev(returns)
}
