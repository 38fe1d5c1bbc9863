package measurement

import (
	"database/sql/driver"
	"fmt"
)

// Unit is a canonical measurement unit code. The zero value means "no unit".
type Unit string

// UnitClass groups units for rounding purposes
type UnitClass string

const (
	ClassNone   UnitClass = ""
	ClassVolume UnitClass = "volume"
	ClassWeight UnitClass = "weight"
	ClassCount  UnitClass = "count"
)

const (
	None Unit = ""

	Gram      Unit = "g"
	Kilogram  Unit = "kg"
	Milligram Unit = "mg"
	Ounce     Unit = "oz"
	Pound     Unit = "lb"

	Milliliter Unit = "ml"
	Deciliter  Unit = "dl"
	Liter      Unit = "l"
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	Cup        Unit = "cup"
	FluidOunce Unit = "fl oz"

	Piece Unit = "pc"
	Pinch Unit = "pinch"
	Dash  Unit = "dash"
	Clove Unit = "clove"
	Slice Unit = "slice"
	Can   Unit = "can"
)

var unitClasses = map[Unit]UnitClass{
	Gram:      ClassWeight,
	Kilogram:  ClassWeight,
	Milligram: ClassWeight,
	Ounce:     ClassWeight,
	Pound:     ClassWeight,

	Milliliter: ClassVolume,
	Deciliter:  ClassVolume,
	Liter:      ClassVolume,
	Teaspoon:   ClassVolume,
	Tablespoon: ClassVolume,
	Cup:        ClassVolume,
	FluidOunce: ClassVolume,

	Piece: ClassCount,
	Pinch: ClassCount,
	Dash:  ClassCount,
	Clove: ClassCount,
	Slice: ClassCount,
	Can:   ClassCount,
}

// Units returns every known unit
func Units() []Unit {
	out := make([]Unit, 0, len(unitClasses))
	for u := range unitClasses {
		out = append(out, u)
	}
	return out
}

// Class returns the unit's class, ClassNone for the empty unit
func (u Unit) Class() UnitClass {
	return unitClasses[u]
}

// Valid reports whether u is a member of the enumeration
func (u Unit) Valid() bool {
	_, ok := unitClasses[u]
	return ok
}

func (u Unit) String() string {
	return string(u)
}

// Value stores the empty unit as NULL.
func (u Unit) Value() (driver.Value, error) {
	if u == None {
		return nil, nil
	}
	return string(u), nil
}

// Scan implements sql.Scanner
func (u *Unit) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*u = None
	case string:
		*u = Unit(v)
	case []byte:
		*u = Unit(string(v))
	default:
		return fmt.Errorf("measurement: cannot scan %T into Unit", src)
	}
	return nil
}
