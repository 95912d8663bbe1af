package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/kinelab/internal/dynamo"
)

// Locations maps a body to its surface gravity in m/s².
var Locations = map[string]float64{
	"earth":   dynamo.StandardGravity,
	"moon":    1.62,
	"mars":    3.71,
	"jupiter": 24.79,
}

// Gravity looks a location up by name. The empty name is Earth.
func Gravity(location string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(location))
	if key == "" {
		key = "earth"
	}
	g, ok := Locations[key]
	if !ok {
		return 0, fmt.Errorf("unknown location %q (have %v)", location, LocationNames())
	}
	return g, nil
}

// ApplyLocation sets p's gravity and location tag for a named body.
func ApplyLocation(p dynamo.Params, location string) (dynamo.Params, error) {
	g, err := Gravity(location)
	if err != nil {
		return p, err
	}
	p.Gravity = g
	p.Location = strings.ToLower(strings.TrimSpace(location))
	if p.Location == "moon" {
		p.Environment = dynamo.EnvMoon
	}
	return p, nil
}

func LocationNames() []string {
	names := make([]string, 0, len(Locations))
	for name := range Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
