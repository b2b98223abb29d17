package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTopupReference(t *testing.T) {
	ref := GenerateTopupReference()
	assert.Regexp(t, regexp.MustCompile(`^TP-\d+-\d{1,4}$`), ref)
}

func TestPlanExpiry(t *testing.T) {
	bought := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	expiry := PlanExpiry(bought)
	assert.Equal(t, time.Date(2026, time.April, 15, 10, 0, 0, 0, time.UTC), expiry)
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.5, RoundRating(4.5))
	assert.Equal(t, 4.67, RoundRating(14.0/3.0))
	assert.Equal(t, 0.0, RoundRating(0))
	// ratings 4 and 5 average to 4.50
	assert.Equal(t, 4.5, RoundRating((4.0+5.0)/2.0))
}
