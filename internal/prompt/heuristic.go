// Package prompt turns a free-text problem statement into run parameters.
package prompt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/dynamo"
)

// Extractor produces parameters for mt from text. It never fails: anything
// it cannot read falls back to dynamo.Defaults(mt).
type Extractor interface {
	Extract(text string, mt dynamo.MotionType) dynamo.Params
}

var (
	velocityRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:m/s|velocity|speed)`)
	angleRe        = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:degree|°|angle)`)
	heightRe       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:m\b|meters?|metres?|height|tall|high)`)
	massRe         = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:kg|mass)`)
	forceRe        = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:n|newton|force)`)
	springKRe      = regexp.MustCompile(`k\s*=\s*(\d+(?:\.\d+)?)`)
	displacementRe = regexp.MustCompile(`(stretched|pulled|compressed|pushed)\s+(?:by\s+)?(\d+(?:\.\d+)?)\s*m\b`)
)

// Heuristic is the keyword and unit matcher.
type Heuristic struct{}

var _ Extractor = Heuristic{}

func (Heuristic) Extract(text string, mt dynamo.MotionType) dynamo.Params {
	lower := strings.ToLower(text)
	p := dynamo.Defaults(mt)

	switch {
	case containsAny(lower, "human", "man", "person"):
		p.Actor = dynamo.ActorHuman
	case strings.Contains(lower, "cannon"):
		p.Actor = dynamo.ActorCannon
	}

	switch {
	case strings.Contains(lower, "ball"):
		p.Object = dynamo.ObjectBall
	case strings.Contains(lower, "crate"):
		p.Object = dynamo.ObjectCrate
	case strings.Contains(lower, "block"):
		p.Object = dynamo.ObjectBlock
	case strings.Contains(lower, "stone"):
		p.Object = dynamo.ObjectStone
	}

	if v, ok := firstNumber(velocityRe, lower); ok {
		p.InitialVelocity = v
	}
	if v, ok := firstNumber(angleRe, lower); ok {
		p.Angle = v
	}
	if v, ok := height(lower); ok {
		p.InitialHeight = v
	}
	if v, ok := firstNumber(massRe, lower); ok {
		p.Mass = v
	}
	if v, ok := firstNumber(forceRe, lower); ok {
		p.Force = dynamo.Float(v)
	}
	if v, ok := firstNumber(springKRe, lower); ok {
		p.SpringK = dynamo.Float(v)
	}
	if mt == dynamo.Spring {
		if m := displacementRe.FindStringSubmatch(lower); m != nil {
			d, _ := strconv.ParseFloat(m[2], 64)
			if m[1] == "compressed" || m[1] == "pushed" {
				d = -d
			}
			p.Displacement = dynamo.Float(d)
		}
	}

	switch {
	case strings.Contains(lower, "moon"):
		p.Gravity = config.Locations["moon"]
		p.Location = "moon"
		p.Environment = dynamo.EnvMoon
	case strings.Contains(lower, "mars"):
		p.Gravity = config.Locations["mars"]
		p.Location = "mars"
	case strings.Contains(lower, "jupiter"):
		p.Gravity = config.Locations["jupiter"]
		p.Location = "jupiter"
	case containsAny(lower, "tower", "building", "eiffel") || (mt == dynamo.FreeFall && p.InitialHeight > 10):
		p.Environment = dynamo.EnvTower
	case strings.Contains(lower, "cliff"):
		p.Environment = dynamo.EnvCliff
	case strings.Contains(lower, "bridge"):
		p.Environment = dynamo.EnvBridge
	case p.InitialHeight > 0:
		p.Environment = dynamo.EnvStandard
	}

	return p
}

func firstNumber(re *regexp.Regexp, s string) (float64, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	return v, err == nil
}

// height skips "20 m/s", which the metre unit would otherwise claim.
func height(s string) (float64, bool) {
	for _, loc := range heightRe.FindAllStringSubmatchIndex(s, -1) {
		if loc[1] < len(s) && s[loc[1]] == '/' {
			continue
		}
		v, err := strconv.ParseFloat(s[loc[2]:loc[3]], 64)
		if err == nil {
			return v, true
		}
	}
	return 0, false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
