package domain

import (
	"strings"
	"time"
)

// DateLayout is the day-granularity format used for consumption entries.
const DateLayout = "2006-01-02"

// Product is a catalog entry: a food name and its calories per 100 grams.
// Names are stored lower-cased; the normalized name is the identity.
type Product struct {
	Name string `json:"name"`
	Kcal int    `json:"kcal"`
}

// ConsumptionEntry is a single recorded consumption. Calories are computed
// once at insertion from the product's calorie value at that moment and
// never recomputed afterwards.
type ConsumptionEntry struct {
	Product  string `json:"product"`
	Amount   int    `json:"amount"`
	Calories int    `json:"calories"`
	Date     string `json:"date"`
}

// UserAccount holds a user's running calorie total and chronological
// consumption history. Total and history are reset together; after every
// append and reset, total == sum(history.calories).
type UserAccount struct {
	Total   int                `json:"total"`
	History []ConsumptionEntry `json:"history"`
}

// DailyTotal is the summed calories for one calendar day.
type DailyTotal struct {
	Date     string
	Calories int
}

// ProductTotal is the summed calories for one product across a history.
type ProductTotal struct {
	Product  string
	Calories int
}

// NormalizeName canonicalizes a product name for lookup and storage.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Today returns the current calendar date in DateLayout, local clock.
func Today() string {
	return time.Now().Format(DateLayout)
}
