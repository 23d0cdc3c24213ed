// Package insights implements the presentation heuristics the frontend shows
// as quality badges and price comparisons. The formulas have no persisted
// ground truth; they are reproduced exactly as given, not derived from
// business rules.
package insights

import (
	"math"
	"sort"

	"github.com/imgoedu/imgo-backend/internal/model"
)

// Rating labels by score threshold.
const (
	LabelExcelente = "Excelente"
	LabelMuyBueno  = "Muy bueno"
	LabelBueno     = "Bueno"
	LabelAceptable = "Aceptable"
)

// StableHash is the 31-multiplier string hash seeding the indicator score, so
// the same institution always gets the same base.
func StableHash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// IndicatorScore computes the deterministic 0–10 quality indicator: a
// hash-seeded base in 7.8–9.49 plus additive bonuses for verifiable signals,
// clamped to 7.0–9.9 and rounded to one decimal.
func IndicatorScore(u model.Institution) float64 {
	score := 7.8 + float64(StableHash(u.ID)%170)/100

	if u.InstitutionCode != "" {
		score += 0.25
	}
	if u.WebsiteStatus == model.WebsiteValid {
		score += 0.15
	}
	if u.WebsiteStatus == model.WebsiteInvalid {
		score -= 0.25
	}
	if len(u.Programs) >= 30 {
		score += 0.15
	}
	if len(u.Programs) >= 80 {
		score += 0.2
	}
	if u.Type == model.TypePublica {
		score += 0.05
	}
	if u.Type == "Universidad Internacional" {
		score += 0.05
	}

	score = math.Round(score*10) / 10
	return clamp(score, 7.0, 9.9)
}

// RatingLabel maps a score to its display label.
func RatingLabel(score float64) string {
	switch {
	case score >= 9.0:
		return LabelExcelente
	case score >= 8.5:
		return LabelMuyBueno
	case score >= 8.0:
		return LabelBueno
	default:
		return LabelAceptable
	}
}

// SegmentKey buckets programs for price benchmarking.
func SegmentKey(p model.Program) string {
	return p.Area + "|" + p.Level + "|" + p.Modality
}

// PriceBenchmarks computes the trimmed-mean yearly tuition per
// area|level|modality segment, dropping 10% of values at each extreme to
// reduce outliers. Programs without a positive price are ignored.
func PriceBenchmarks(universities []model.Institution) map[string]float64 {
	buckets := make(map[string][]float64)
	for _, u := range universities {
		for _, p := range u.Programs {
			price := float64(p.TuitionCOPYear)
			if price <= 0 {
				continue
			}
			key := SegmentKey(p)
			buckets[key] = append(buckets[key], price)
		}
	}

	out := make(map[string]float64, len(buckets))
	for key, prices := range buckets {
		out[key] = trimmedMean(prices)
	}
	return out
}

// DiscountVsAverage returns the rounded percentage a price sits below its
// segment average. Only positive discounts are reported.
func DiscountVsAverage(price, avg float64) (int, bool) {
	if avg <= 0 || price <= 0 {
		return 0, false
	}
	diff := (avg - price) / avg
	if diff <= 0 {
		return 0, false
	}
	return int(math.Round(diff * 100)), true
}

func trimmedMean(values []float64) float64 {
	sort.Float64s(values)

	cut := len(values) / 10
	hi := len(values) - cut
	if hi < cut+1 {
		hi = cut + 1
	}
	trimmed := values[cut:hi]

	var sum float64
	for _, v := range trimmed {
		sum += v
	}
	return sum / float64(len(trimmed))
}

func clamp(n, min, max float64) float64 {
	return math.Min(max, math.Max(min, n))
}
