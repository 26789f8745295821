package guidance

import (
	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/util"
)

// Graph untuk hitung exit bundaran. nil boleh, exit dihitung per node di bundaran.
type Graph interface {
	VisitOutEdges(id int64, fn func(e datastructure.RoadEdge) bool)
}

type DrivingInstruction struct {
	Instruction string         `json:"instruction"`
	Point       geo.Coordinate `json:"-"`
	Lat         float64        `json:"lat"`
	Lon         float64        `json:"lon"`
	StreetName  string         `json:"street_name"`
	ETA         float64        `json:"eta"`
	Distance    float64        `json:"distance"`
}

func NewDrivingInstruction(ins Instruction) DrivingInstruction {
	return DrivingInstruction{
		Instruction: ins.TurnDescription(),
		Point:       ins.Point,
		Lat:         ins.Point.Lat(),
		Lon:         ins.Point.Lon(),
		StreetName:  ins.Name,
		ETA:         util.RoundFloat(ins.TimeMinutes, 2),
		Distance:    util.RoundFloat(ins.DistanceKm, 3),
	}
}

type instructionsFromEdges struct {
	graph        Graph
	route        datastructure.Route
	ways         []Instruction
	inRoundabout bool
}

// Instructions instruksi belokan untuk route. route kosong atau 1 node tidak punya instruksi.
func Instructions(route datastructure.Route, graph Graph) []Instruction {
	if len(route.Edges) == 0 || len(route.Nodes) != len(route.Edges)+1 {
		return nil
	}
	ife := &instructionsFromEdges{graph: graph, route: route}
	for i := range route.Edges {
		ife.addInstructionFromEdge(i)
	}
	ife.finish()
	return ife.ways
}

// DrivingInstructions Instructions dengan deskripsi text nya.
func DrivingInstructions(route datastructure.Route, graph Graph) []DrivingInstruction {
	instructions := Instructions(route, graph)
	driving := make([]DrivingInstruction, 0, len(instructions))
	for _, ins := range instructions {
		driving = append(driving, NewDrivingInstruction(ins))
	}
	return driving
}

func (ife *instructionsFromEdges) bearing(i int) float64 {
	return geo.Bearing(ife.route.Nodes[i].Coord, ife.route.Nodes[i+1].Coord)
}

func (ife *instructionsFromEdges) addInstructionFromEdge(i int) {
	edge := ife.route.Edges[i]
	baseNode := ife.route.Nodes[i]
	name := edge.StreetName()

	switch {
	case i == 0:
		sign := START
		if edge.Tags.Roundabout {
			sign = USE_ROUNDABOUT
			ife.inRoundabout = true
		}
		ife.ways = append(ife.ways, Instruction{Sign: sign, Name: name, Point: baseNode.Coord, Heading: ife.bearing(0)})

	case edge.Tags.Roundabout:
		if !ife.inRoundabout {
			ife.inRoundabout = true
			ife.ways = append(ife.ways, Instruction{Sign: USE_ROUNDABOUT, Name: name, Point: baseNode.Coord})
		} else if ife.hasExit(baseNode.ID) {
			// lewat exit lain di dalam bundaran
			ife.current().Roundabout.ExitNumber++
		}

	case ife.inRoundabout:
		ife.inRoundabout = false
		cur := ife.current()
		cur.Roundabout.ExitNumber++
		cur.Roundabout.Exited = true
		cur.Name = name

	default:
		prev := ife.route.Edges[i-1]
		sign := getTurnDirection(ife.bearing(i-1), ife.bearing(i))
		sameStreet := isSameName(prev.StreetName(), name) || (name == "" && prev.StreetName() == "")
		if sameStreet && (sign == CONTINUE_ON_STREET || sign == TURN_SLIGHT_LEFT || sign == TURN_SLIGHT_RIGHT) {
			break
		}
		ife.ways = append(ife.ways, Instruction{Sign: sign, Name: name, Point: baseNode.Coord})
	}

	cur := ife.current()
	cur.DistanceKm += geo.HaversineDistance(baseNode.Coord, ife.route.Nodes[i+1].Coord)
	cur.TimeMinutes += datastructure.TravelTimeMinutes(baseNode, ife.route.Nodes[i+1], edge.SpeedMph)
}

func (ife *instructionsFromEdges) current() *Instruction {
	return &ife.ways[len(ife.ways)-1]
}

// hasExit apakah node di bundaran punya edge keluar ke jalan yang bukan bundaran.
func (ife *instructionsFromEdges) hasExit(nodeID int64) bool {
	if ife.graph == nil {
		return true
	}
	exit := false
	ife.graph.VisitOutEdges(nodeID, func(e datastructure.RoadEdge) bool {
		if !e.Tags.Roundabout {
			exit = true
			return false
		}
		return true
	})
	return exit
}

func (ife *instructionsFromEdges) finish() {
	last := ife.route.Nodes[len(ife.route.Nodes)-1]
	ife.ways = append(ife.ways, Instruction{Sign: FINISH, Point: last.Coord})
}
