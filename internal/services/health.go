package services

import (
	"math"
	"time"

	"github.com/tavisry/marketlens/internal/models"
)

// Health score weights. They must sum to 1.0.
const (
	liquidityWeight  = 0.30
	spreadWeight     = 0.25
	volatilityWeight = 0.20
	activityWeight   = 0.25
)

// Reference scales for the sub-scores.
const (
	liquidityFullDepth   = 500000.0
	imbalancePenalty     = 30.0
	spreadFloorBps       = 5.0
	spreadCeilingBps     = 200.0
	activityFullTrades   = 100.0
	activityFullNotional = 100000.0
)

// ComposeMarketHealth combines order-book metrics and trade statistics into
// a weighted 0-100 score with sub-scores and a letter grade.
func ComposeMarketHealth(market models.NormalizedMarket, book *models.OrderbookMetrics, stats *models.TradeStats) *models.MarketHealth {
	totalDepth := book.BidNotionalDepth + book.AskNotionalDepth
	liquidity := scoreLiquidity(totalDepth, book.DepthImbalance)
	spread := scoreSpread(book.SpreadBps)
	volatility := scoreVolatility(stats.Volatility, stats.TradeCount)
	activity := scoreActivity(stats.TradeCount, stats.TotalNotional)

	composite := liquidityWeight*liquidity.Score +
		spreadWeight*spread.Score +
		volatilityWeight*volatility.Score +
		activityWeight*activity.Score
	score := int(clampScore(math.Round(composite)))

	return &models.MarketHealth{
		MarketID:    market.MarketID,
		Ticker:      market.Ticker,
		Score:       score,
		Grade:       ScoreToGrade(score),
		Liquidity:   liquidity,
		Spread:      spread,
		Volatility:  volatility,
		Activity:    activity,
		GeneratedAt: time.Now().UTC(),
	}
}

// scoreLiquidity scales notional depth against a reference of 500k, minus a
// penalty for lopsided books.
func scoreLiquidity(notionalDepth, imbalance float64) models.HealthComponent {
	score := math.Min(100, notionalDepth/liquidityFullDepth*100)
	score -= imbalance * imbalancePenalty
	return models.HealthComponent{
		Score: clampScore(score),
		Inputs: map[string]float64{
			"notional_depth": notionalDepth,
			"imbalance":      imbalance,
		},
	}
}

// scoreSpread maps bps linearly: <=5bps scores 100, >=200bps scores 0. A
// non-positive spread means an empty or crossed book and scores 0.
func scoreSpread(spreadBps float64) models.HealthComponent {
	var score float64
	if spreadBps > 0 {
		score = 100 - (spreadBps-spreadFloorBps)/(spreadCeilingBps-spreadFloorBps)*100
	}
	return models.HealthComponent{
		Score:  clampScore(score),
		Inputs: map[string]float64{"spread_bps": spreadBps},
	}
}

// scoreVolatility is a step function over realized volatility: too quiet
// scores low, a moderate band scores high, extreme volatility scores lowest.
// Trade count adds a small boost before reclamping.
func scoreVolatility(volatility float64, tradeCount int) models.HealthComponent {
	var score float64
	switch {
	case volatility < 0.001:
		score = 30
	case volatility < 0.005:
		score = 60
	case volatility < 0.03:
		score = 90
	case volatility < 0.08:
		score = 60
	default:
		score = 20
	}
	score += math.Min(20, float64(tradeCount)/2)
	return models.HealthComponent{
		Score: clampScore(score),
		Inputs: map[string]float64{
			"volatility":  volatility,
			"trade_count": float64(tradeCount),
		},
	}
}

func scoreActivity(tradeCount int, notionalVolume float64) models.HealthComponent {
	score := math.Min(80, float64(tradeCount)/activityFullTrades*80) +
		math.Min(20, notionalVolume/activityFullNotional*20)
	return models.HealthComponent{
		Score: clampScore(score),
		Inputs: map[string]float64{
			"trade_count":     float64(tradeCount),
			"notional_volume": notionalVolume,
		},
	}
}

// ScoreToGrade maps a composite score to a letter grade; thresholds are
// inclusive on the high side.
func ScoreToGrade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
