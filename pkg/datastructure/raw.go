package datastructure

// RawNode node OSM sebelum masuk graph.
type RawNode struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// RawWay way OSM sebelum di decompose jadi edge.
type RawWay struct {
	ID      int64
	NodeIDs []int64
	Tags    map[string]string
}
