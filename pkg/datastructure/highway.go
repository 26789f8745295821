package datastructure

// HighwayClass kelas jalan hasil parse tag highway. Selain kelas yang ada di sini, way tidak masuk graph.
type HighwayClass uint8

const (
	HighwayUnknown HighwayClass = iota
	HighwayMotorway
	HighwayTrunk
	HighwayPrimary
	HighwaySecondary
	HighwayTertiary
	HighwayUnclassified
	HighwayResidential
	HighwayLivingStreet
	HighwayMotorwayLink
	HighwayTrunkLink
	HighwayPrimaryLink
	HighwaySecondaryLink
	HighwayTertiaryLink

	numHighwayClasses
)

var highwayNames = [numHighwayClasses]string{
	HighwayUnknown:       "unknown",
	HighwayMotorway:      "motorway",
	HighwayTrunk:         "trunk",
	HighwayPrimary:       "primary",
	HighwaySecondary:     "secondary",
	HighwayTertiary:      "tertiary",
	HighwayUnclassified:  "unclassified",
	HighwayResidential:   "residential",
	HighwayLivingStreet:  "living_street",
	HighwayMotorwayLink:  "motorway_link",
	HighwayTrunkLink:     "trunk_link",
	HighwayPrimaryLink:   "primary_link",
	HighwaySecondaryLink: "secondary_link",
	HighwayTertiaryLink:  "tertiary_link",
}

var highwayByName = func() map[string]HighwayClass {
	m := make(map[string]HighwayClass, numHighwayClasses)
	for class, name := range highwayNames {
		m[name] = HighwayClass(class)
	}
	delete(m, "unknown")
	return m
}()

// ParseHighwayClass return HighwayUnknown untuk tag selain kelas jalan kendaraan (footway, service, path, dll).
func ParseHighwayClass(highway string) HighwayClass {
	if class, ok := highwayByName[highway]; ok {
		return class
	}
	return HighwayUnknown
}

func (h HighwayClass) String() string {
	if h >= numHighwayClasses {
		return highwayNames[HighwayUnknown]
	}
	return highwayNames[h]
}

func (h HighwayClass) IsRoutable() bool {
	return h != HighwayUnknown && h < numHighwayClasses
}
