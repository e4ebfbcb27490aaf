package entity

import (
	"math"
	"strings"
)

type UnitKind string

const (
	UnitKilograms UnitKind = "kg"
	UnitPieces    UnitKind = "pieces"
)

// QuantityUnit describes how an item is measured in a queue.
type QuantityUnit struct {
	Kind    UnitKind `json:"kind"`
	Step    float64  `json:"step"`
	Minimum float64  `json:"minimum"`
}

var pieceUnit = QuantityUnit{Kind: UnitPieces, Step: 1, Minimum: 1}

// weightSteps holds the per-material kilogram step; the minimum equals the step.
var weightSteps = map[Category]float64{
	CategoryPaper:           0.5,
	CategoryGlassAndPlastic: 0.5,
	CategoryMetalAndSteel:   0.2,
	CategoryEwaste:          0.5,
	CategoryBrass:           0.1,
	CategoryOthers:          0.5,
}

const defaultWeightStep = 0.5

var deviceKeywords = []string{
	"phone", "mobile", "laptop", "computer", "tv", "television", "monitor",
	"keyboard", "mouse", "printer", "tablet", "charger", "battery", "batteries", "router",
	"fridge", "refrigerator", "microwave", "washing machine", "speaker", "camera",
	// compounds the whole-word match would otherwise miss
	"smartphone", "iphone", "smartwatch", "headphone", "earphone", "cellphone",
	"telephone", "webcam",
}

var containerKeywords = []string{"bottle", "jar", "container", "can", "tub", "jug"}

// InferUnit maps a category and item name to a unit. It is total: unknown
// categories and empty names fall back to kilograms with the default step.
func InferUnit(category Category, name string) QuantityUnit {
	words := tokenize(name)

	if containsKeyword(words, deviceKeywords) {
		return pieceUnit
	}
	if category == CategoryGlassAndPlastic && containsKeyword(words, containerKeywords) {
		return pieceUnit
	}

	step, ok := weightSteps[category]
	if !ok {
		step = defaultWeightStep
	}
	return QuantityUnit{Kind: UnitKilograms, Step: step, Minimum: step}
}

// Accepts reports whether q is a legal quantity for the unit.
func (u QuantityUnit) Accepts(q float64) bool {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return false
	}
	if q < u.Minimum {
		return false
	}
	if u.Kind == UnitPieces && q != math.Trunc(q) {
		return false
	}
	return true
}

// tokenize lowercases and splits on anything that is not a letter or digit,
// so "TV-Set" yields "tv set" and keyword matching is whole-word.
func tokenize(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return " " + strings.Join(fields, " ") + " "
}

func containsKeyword(words string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(words, " "+k+" ") || strings.Contains(words, " "+k+"s ") {
			return true
		}
	}
	return false
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
