package datastructure

import (
	"strconv"
	"strings"
)

type OneWay uint8

const (
	OneWayNone OneWay = iota
	// OneWayForward hanya searah urutan node di way (termasuk oneway=reversible).
	OneWayForward
	// OneWayReverse hanya berlawanan urutan node (oneway=-1).
	OneWayReverse
)

// WayTags tag way yang sudah di parse sekali waktu ingestion. cost function cuma baca field ini.
type WayTags struct {
	Highway      HighwayClass
	HighwayRaw   string
	OneWay       OneWay
	Roundabout   bool
	SpeedHintMph float64
	HasSpeedHint bool
	Name         string
}

func ParseWayTags(tags map[string]string) WayTags {
	highway := tags["highway"]
	wt := WayTags{
		Highway:    ParseHighwayClass(highway),
		HighwayRaw: highway,
		Name:       tags["name"],
		Roundabout: tags["junction"] == "roundabout",
	}
	wt.OneWay = parseOneWay(tags["oneway"], wt.Roundabout)
	wt.SpeedHintMph, wt.HasSpeedHint = ParseSpeedHint(tags)
	return wt
}

func parseOneWay(val string, roundabout bool) OneWay {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "yes", "true", "1", "reversible":
		return OneWayForward
	case "-1", "reverse":
		return OneWayReverse
	case "no", "false", "0":
		return OneWayNone
	}
	if roundabout {
		return OneWayForward
	}
	return OneWayNone
}

// speedTagKeys tag yang dicoba berurutan kalau maxspeed_mph tidak ada.
var speedTagKeys = []string{"maxspeed", "maxspeed:advisory"}

// ParseSpeedHint speed limit way dalam mph. maxspeed_mph diutamakan, lalu angka pertama dari
// maxspeed atau maxspeed:advisory ("30 mph" -> 30, "50" -> 50) yang dibaca sebagai mph.
func ParseSpeedHint(tags map[string]string) (float64, bool) {
	if v, ok := tags["maxspeed_mph"]; ok {
		if mph, ok := leadingInt(v); ok {
			return mph, true
		}
	}
	for _, key := range speedTagKeys {
		v, ok := tags[key]
		if !ok {
			continue
		}
		if mph, ok := leadingInt(v); ok {
			return mph, true
		}
	}
	return 0, false
}

// leadingInt integer positif di field pertama (dipisah spasi).
func leadingInt(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return 0, false
	}
	return float64(n), true
}
