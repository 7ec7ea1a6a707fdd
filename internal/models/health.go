package models

import "time"

// HealthComponent is one weighted sub-score with the raw inputs that
// produced it.
type HealthComponent struct {
	Score  float64            `json:"score"`
	Inputs map[string]float64 `json:"inputs"`
}

// MarketHealth is the weighted composite health of a market: a 0-100 score,
// a letter grade, and the four sub-scores.
type MarketHealth struct {
	MarketID string `json:"market_id"`
	Ticker   string `json:"ticker"`

	Score int    `json:"score"`
	Grade string `json:"grade"`

	Liquidity  HealthComponent `json:"liquidity"`
	Spread     HealthComponent `json:"spread"`
	Volatility HealthComponent `json:"volatility"`
	Activity   HealthComponent `json:"activity"`

	GeneratedAt time.Time `json:"generated_at"`
}
