package utils

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// GenerateTopupReference returns a reference string of the form
// TP-<unix millis>-<4 digit random>.
func GenerateTopupReference() string {
	return fmt.Sprintf("TP-%d-%d", time.Now().UnixMilli(), rand.Intn(10000))
}

// PlanExpiry returns the expiry for a paid plan bought at t: one month later.
func PlanExpiry(t time.Time) time.Time {
	return t.AddDate(0, 1, 0)
}

// RoundRating rounds an aggregate rating to two decimal places.
func RoundRating(r float64) float64 {
	return math.Round(r*100) / 100
}
