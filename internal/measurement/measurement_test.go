package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleSmartRounding(t *testing.T) {
	tests := []struct {
		name   string
		in     Measurement
		factor float64
		want   float64
	}{
		{"teaspoon to quarter", New(1, Teaspoon), 1.2, 1.25},
		{"tablespoon to quarter", New(2, Tablespoon), 1.4, 2.75},
		{"cup to eighth", New(1, Cup), 1.3, 1.25},
		{"cup exact", New(1, Cup), 1.5, 1.5},
		{"cup by one point one", New(1, Cup), 1.1, 1.125},
		{"grams below ten to half", New(3, Gram), 1.4, 4.0},
		{"grams below ten keeps half", New(3, Gram), 1.5, 4.5},
		{"grams at ten to whole", New(10, Gram), 1.04, 10},
		{"threshold uses scaled amount", New(6, Milliliter), 2, 12},
		{"milliliter large", New(250, Milliliter), 1.333, 333},
		{"piece to whole", New(1, Piece), 1.5, 2},
		{"pinch to whole", New(1, Pinch), 1.4, 1},
		{"unitless is exact", New(1, None), 1.37, 1.37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Scale(tt.factor)
			assert.InDelta(t, tt.want, got.Amount(), 1e-9)
			assert.Equal(t, tt.in.Unit(), got.Unit())
		})
	}
}

func TestScaleDoesNotMutate(t *testing.T) {
	m := New(2, Cup)
	_ = m.Scale(3)
	assert.Equal(t, 2.0, m.Amount())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2 cup", New(2, Cup).Format())
	assert.Equal(t, "0.5 tsp", New(0.5, Teaspoon).Format())
	assert.Equal(t, "1.25 tbsp", New(1.25, Tablespoon).Format())
	assert.Equal(t, "0.33", New(1.0/3.0, None).Format())
	assert.Equal(t, "3", New(3, None).Format())
	assert.Equal(t, "100 g", New(100, Gram).String())
	assert.Equal(t, "0 pc", New(0, Piece).Format())
}

func TestFormatRoundsHalfUp(t *testing.T) {
	assert.Equal(t, "1.13 cup", New(1.125, Cup).Format())
	assert.Equal(t, "0.38 cup", New(0.375, Cup).Format())
	assert.Equal(t, "2.63 cup", New(2.625, Cup).Format())
}

func TestScaleCupByOnePointOneFormats(t *testing.T) {
	assert.Equal(t, "1.13 cup", New(1, Cup).Scale(1.1).Format())
}

func TestUnitClass(t *testing.T) {
	assert.Equal(t, ClassVolume, Cup.Class())
	assert.Equal(t, ClassWeight, Kilogram.Class())
	assert.Equal(t, ClassCount, Pinch.Class())
	assert.Equal(t, ClassNone, None.Class())
	assert.False(t, Unit("bucket").Valid())

	for _, u := range Units() {
		assert.NotEqual(t, ClassNone, u.Class(), "unit %q has no class", u)
	}
}

func TestUnitSQL(t *testing.T) {
	v, err := None.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)

	v, err = Cup.Value()
	assert.NoError(t, err)
	assert.Equal(t, "cup", v)

	var u Unit
	assert.NoError(t, u.Scan([]byte("tbsp")))
	assert.Equal(t, Tablespoon, u)
	assert.NoError(t, u.Scan(nil))
	assert.Equal(t, None, u)
	assert.Error(t, u.Scan(42))
}
