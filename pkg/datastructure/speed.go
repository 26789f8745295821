package datastructure

import (
	"fmt"
	"math"
)

// SpeedTable kecepatan default (mph) per kelas jalan kalau way tidak punya speed hint.
// Value type, jadi copy nya aman dibagi antar goroutine.
type SpeedTable struct {
	speeds [numHighwayClasses]float64
}

func defaultSpeedMph(class HighwayClass) float64 {
	switch class {
	case HighwayMotorway:
		return 60
	case HighwayTrunk:
		return 45
	case HighwayPrimary:
		return 35
	case HighwaySecondary:
		return 30
	case HighwayTertiary, HighwayUnclassified, HighwayResidential:
		return 25
	case HighwayLivingStreet:
		return 10
	case HighwayMotorwayLink, HighwayTrunkLink, HighwayPrimaryLink, HighwaySecondaryLink:
		return 30
	case HighwayTertiaryLink:
		return 25
	default:
		return 25
	}
}

func DefaultSpeedTable() SpeedTable {
	var t SpeedTable
	for class := HighwayClass(0); class < numHighwayClasses; class++ {
		t.speeds[class] = defaultSpeedMph(class)
	}
	return t
}

// WithOverrides copy table dengan kecepatan dari overrides (key = nama kelas highway, "unknown" untuk default).
func (t SpeedTable) WithOverrides(overrides map[string]float64) (SpeedTable, error) {
	for name, mph := range overrides {
		class, ok := highwayByName[name]
		if !ok {
			if name != highwayNames[HighwayUnknown] {
				return SpeedTable{}, fmt.Errorf("speed override: unknown highway class %q", name)
			}
			class = HighwayUnknown
		}
		if math.IsNaN(mph) || math.IsInf(mph, 0) || mph <= 0 {
			return SpeedTable{}, fmt.Errorf("speed override: %q must be positive, got %v", name, mph)
		}
		t.speeds[class] = mph
	}
	return t, nil
}

func (t SpeedTable) SpeedMph(class HighwayClass) float64 {
	if class >= numHighwayClasses {
		class = HighwayUnknown
	}
	return t.speeds[class]
}

// EffectiveSpeedMph speed hint way kalau ada, kalau tidak pakai table.
func (t SpeedTable) EffectiveSpeedMph(tags WayTags) float64 {
	if tags.HasSpeedHint {
		return tags.SpeedHintMph
	}
	return t.SpeedMph(tags.Highway)
}
