package guidance

import (
	"fmt"
	"strings"

	"lintang/locroute/pkg/geo"
)

type Sign int

const (
	U_TURN_UNKNOWN     Sign = -999
	TURN_SHARP_LEFT    Sign = -3
	TURN_LEFT          Sign = -2
	TURN_SLIGHT_LEFT   Sign = -1
	CONTINUE_ON_STREET Sign = 0
	TURN_SLIGHT_RIGHT  Sign = 1
	TURN_RIGHT         Sign = 2
	TURN_SHARP_RIGHT   Sign = 3
	FINISH             Sign = 4
	USE_ROUNDABOUT     Sign = 6
	START              Sign = 101
)

type Instruction struct {
	Sign        Sign
	Name        string
	Point       geo.Coordinate
	DistanceKm  float64
	TimeMinutes float64
	// Heading bearing awal, hanya untuk START.
	Heading    float64
	Roundabout RoundaboutInstruction
}

type RoundaboutInstruction struct {
	ExitNumber int
	Exited     bool
}

func (instr Instruction) TurnDescription() string {
	streetName := instr.Name
	var description string

	switch instr.Sign {
	case CONTINUE_ON_STREET:
		if isEmpty(streetName) {
			description = "Continue"
		} else {
			description = fmt.Sprintf("Continue onto %s", streetName)
		}
	case START:
		compassDir := azimuthToCompass(instr.Heading)
		if isEmpty(streetName) {
			description = fmt.Sprintf("Head %s", compassDir)
		} else {
			description = fmt.Sprintf("Head %s on %s", compassDir, streetName)
		}
	case FINISH:
		description = "You have arrived at your destination"
	default:
		dir := getDirectionDescription(instr)
		switch {
		case dir == "":
			description = fmt.Sprintf("Unknown instruction %d", instr.Sign)
		case isEmpty(streetName) || instr.Sign == USE_ROUNDABOUT:
			description = dir
		default:
			description = fmt.Sprintf("%s onto %s", dir, streetName)
		}
	}
	return description
}

func azimuthToCompass(azimuth float64) string {
	if azimuth < 22.5 {
		return "North"
	} else if azimuth < 67.5 {
		return "North East"
	} else if azimuth < 112.5 {
		return "East"
	} else if azimuth < 157.5 {
		return "South East"
	} else if azimuth < 202.5 {
		return "South"
	} else if azimuth < 247.5 {
		return "South West"
	} else if azimuth < 292.5 {
		return "West"
	} else if azimuth < 337.5 {
		return "North West"
	}
	return "North"
}

func getDirectionDescription(instr Instruction) string {
	switch instr.Sign {
	case U_TURN_UNKNOWN:
		return "Make U-turn"
	case TURN_SHARP_LEFT:
		return "Turn sharp left"
	case TURN_LEFT:
		return "Turn left"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right"
	case TURN_RIGHT:
		return "Turn right"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right"
	case USE_ROUNDABOUT:
		if !instr.Roundabout.Exited {
			return "Enter the roundabout"
		}
		if isEmpty(instr.Name) {
			return fmt.Sprintf("At roundabout, take exit %d", instr.Roundabout.ExitNumber)
		}
		return fmt.Sprintf("At roundabout, take exit %d onto %s", instr.Roundabout.ExitNumber, instr.Name)
	default:
		return ""
	}
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}

func isSameName(name1, name2 string) bool {
	if name1 == "" || name2 == "" {
		// seringkali di osm, nama street kosong "", better dianggap false
		return false
	}
	return name1 == name2
}

// alignOrientation geser orientation supaya selisih dengan baseOrientation ada di [-180, 180].
func alignOrientation(baseOrientation, orientation float64) float64 {
	if orientation-baseOrientation > 180 {
		return orientation - 360
	}
	if orientation-baseOrientation < -180 {
		return orientation + 360
	}
	return orientation
}

// getTurnDirection delta bearing dari prevBearing ke bearing, positif = belok kanan (clockwise).
func getTurnDirection(prevBearing, bearing float64) Sign {
	delta := alignOrientation(prevBearing, bearing) - prevBearing
	absDelta := delta
	if absDelta < 0 {
		absDelta = -absDelta
	}
	switch {
	case absDelta < 12:
		return CONTINUE_ON_STREET
	case absDelta < 40:
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	case absDelta < 105:
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	case absDelta > 175:
		return U_TURN_UNKNOWN
	case delta < 0:
		return TURN_SHARP_LEFT
	default:
		return TURN_SHARP_RIGHT
	}
}
