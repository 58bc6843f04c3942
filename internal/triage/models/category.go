package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the case type a patient needs and the department a practitioner
// belongs to. The numeric values match the console menu selection.
type Category int

const (
	General Category = iota
	Emergency
	ICU
	Pediatric
	Surgical
)

// CategoryCount is the number of departments in the facility.
const CategoryCount = 5

var categoryNames = [CategoryCount]string{
	General:   "General",
	Emergency: "Emergency",
	ICU:       "ICU",
	Pediatric: "Pediatric",
	Surgical:  "Surgical",
}

// Categories returns every category in menu order.
func Categories() []Category {
	return []Category{General, Emergency, ICU, Pediatric, Surgical}
}

// Valid reports whether c is one of the five departments.
func (c Category) Valid() bool {
	return c >= General && c <= Surgical
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory accepts a department name (any case) or its menu digit.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		c := Category(n)
		if !c.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownCategory, n)
		}
		return c, nil
	}
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
