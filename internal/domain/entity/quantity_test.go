package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferUnit(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		item     string
		want     QuantityUnit
	}{
		{"paper by weight", CategoryPaper, "Newspaper", QuantityUnit{UnitKilograms, 0.5, 0.5}},
		{"plastic by weight", CategoryGlassAndPlastic, "Hard Plastic", QuantityUnit{UnitKilograms, 0.5, 0.5}},
		{"plastic bottle by piece", CategoryGlassAndPlastic, "PET Bottle", pieceUnit},
		{"glass jars plural", CategoryGlassAndPlastic, "Glass Jars", pieceUnit},
		{"metal by weight", CategoryMetalAndSteel, "Iron Scrap", QuantityUnit{UnitKilograms, 0.2, 0.2}},
		{"metal can stays weight", CategoryMetalAndSteel, "Aluminium Can", QuantityUnit{UnitKilograms, 0.2, 0.2}},
		{"ewaste device by piece", CategoryEwaste, "Mobile Phone", pieceUnit},
		{"ewaste washing machine", CategoryEwaste, "Old Washing Machine", pieceUnit},
		{"ewaste wires by weight", CategoryEwaste, "Copper Wires", QuantityUnit{UnitKilograms, 0.5, 0.5}},
		{"brass by weight", CategoryBrass, "Brass Utensils", QuantityUnit{UnitKilograms, 0.1, 0.1}},
		{"others by weight", CategoryOthers, "Rubber Tyres", QuantityUnit{UnitKilograms, 0.5, 0.5}},
		{"device keyword in any category", CategoryOthers, "Batteries", pieceUnit},
		{"keyword is whole word", CategoryEwaste, "Phonebook Scraps", QuantityUnit{UnitKilograms, 0.5, 0.5}},
		{"hyphenated device", CategoryEwaste, "LED-TV", pieceUnit},
		{"compound device name", CategoryOthers, "Smartphone", pieceUnit},
		{"compound wearable", CategoryEwaste, "Old Smartwatch", pieceUnit},
		{"compound audio device", CategoryEwaste, "Headphones", pieceUnit},
		{"unknown category", Category("Wood"), "Planks", QuantityUnit{UnitKilograms, 0.5, 0.5}},
		{"empty name", CategoryBrass, "", QuantityUnit{UnitKilograms, 0.1, 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferUnit(tt.category, tt.item))
		})
	}
}

func TestInferUnitIsTotal(t *testing.T) {
	names := []string{"", "Bottle", "Laptop", "???", "Mixed Scrap"}
	for _, c := range append(Categories(), Category(""), Category("unknown")) {
		for _, n := range names {
			u := InferUnit(c, n)
			assert.Contains(t, []UnitKind{UnitKilograms, UnitPieces}, u.Kind)
			assert.Greater(t, u.Step, 0.0)
			assert.Greater(t, u.Minimum, 0.0)
		}
	}
}

func TestQuantityUnitAccepts(t *testing.T) {
	kg := QuantityUnit{Kind: UnitKilograms, Step: 0.2, Minimum: 0.2}
	assert.True(t, kg.Accepts(0.2))
	assert.True(t, kg.Accepts(3.7))
	assert.False(t, kg.Accepts(0.1))
	assert.False(t, kg.Accepts(0))
	assert.False(t, kg.Accepts(-1))
	assert.False(t, kg.Accepts(math.NaN()))
	assert.False(t, kg.Accepts(math.Inf(1)))

	assert.True(t, pieceUnit.Accepts(1))
	assert.True(t, pieceUnit.Accepts(12))
	assert.False(t, pieceUnit.Accepts(0.5))
	assert.False(t, pieceUnit.Accepts(2.5))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 2.68, Round2(2.675000001))
	assert.Equal(t, 4.3, Round1(4.25))
	assert.Equal(t, 3.7, Round1(11.0/3.0+0.0333))
}
