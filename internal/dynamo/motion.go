package dynamo

import (
	"fmt"
	"strings"
)

// MotionType selects the dynamics that apply to a run.
type MotionType int

const (
	Projectile MotionType = iota + 1
	FreeFall
	VerticalThrow
	NewtonSecondLaw
	Spring
	InclinedPlane
)

var motionNames = map[MotionType]string{
	Projectile:      "projectile",
	FreeFall:        "free_fall",
	VerticalThrow:   "vertical_throw",
	NewtonSecondLaw: "newton_second_law",
	Spring:          "spring",
	InclinedPlane:   "inclined_plane",
}

var motionTitles = map[MotionType]string{
	Projectile:      "Projectile Motion",
	FreeFall:        "Free Fall",
	VerticalThrow:   "Vertical Throw",
	NewtonSecondLaw: "Newton's Laws",
	Spring:          "Spring Oscillation",
	InclinedPlane:   "Inclined Plane",
}

// MotionTypes returns every supported motion type in menu order.
func MotionTypes() []MotionType {
	return []MotionType{Projectile, FreeFall, VerticalThrow, NewtonSecondLaw, Spring, InclinedPlane}
}

func (m MotionType) String() string {
	if name, ok := motionNames[m]; ok {
		return name
	}
	return fmt.Sprintf("motion(%d)", int(m))
}

// Title is the human readable name used by the live view.
func (m MotionType) Title() string {
	if title, ok := motionTitles[m]; ok {
		return title
	}
	return m.String()
}

func (m MotionType) Valid() bool {
	_, ok := motionNames[m]
	return ok
}

// ParseMotionType accepts the snake_case name and a few dashed aliases.
func ParseMotionType(s string) (MotionType, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch key {
	case "newton", "newtons_law":
		return NewtonSecondLaw, nil
	case "incline":
		return InclinedPlane, nil
	}
	for m, name := range motionNames {
		if name == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMotion, s)
}

func (m MotionType) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMotion, int(m))
	}
	return []byte(m.String()), nil
}

func (m *MotionType) UnmarshalText(text []byte) error {
	parsed, err := ParseMotionType(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
