package osmparser_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lintang/locroute/pkg/osmparser"

	"github.com/paulmach/osm/osmxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const sampleOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="-7.7956" lon="110.3695" version="1"/>
  <node id="2" lat="-7.7960" lon="110.3700" version="1"/>
  <node id="3" lat="-7.7970" lon="110.3710" version="1">
    <tag k="amenity" v="restaurant"/>
    <tag k="name" v="Gudeg Yu Djum"/>
    <tag k="cuisine" v="indonesian"/>
  </node>
  <node id="4" lat="-7.8000" lon="110.4000" version="1"/>
  <node id="5" lat="-7.8010" lon="110.4010" version="1">
    <tag k="natural" v="tree"/>
  </node>
  <way id="100" version="1">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="residential"/>
    <tag k="name" v="Jalan Malioboro"/>
  </way>
  <way id="101" version="1">
    <nd ref="2"/>
    <nd ref="4"/>
    <tag k="building" v="yes"/>
  </way>
</osm>`

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yogyakarta.osm")
	require.NoError(t, os.WriteFile(path, []byte(sampleOSM), 0o644))

	p := osmparser.NewOsmParser(zaptest.NewLogger(t))

	t.Run("keeps road nodes and points of interest", func(t *testing.T) {
		nodes, ways, err := p.ParseFile(context.Background(), path)
		require.NoError(t, err)

		require.Len(t, ways, 1)
		assert.Equal(t, int64(100), ways[0].ID)
		assert.Equal(t, []int64{1, 2}, ways[0].NodeIDs)
		assert.Equal(t, "Jalan Malioboro", ways[0].Tags["name"])

		ids := make([]int64, 0, len(nodes))
		for _, n := range nodes {
			ids = append(ids, n.ID)
		}
		assert.ElementsMatch(t, []int64{1, 2, 3}, ids)
		for _, n := range nodes {
			if n.ID == 3 {
				assert.Equal(t, "restaurant", n.Tags["amenity"])
				assert.InDelta(t, -7.7970, n.Lat, 1e-9)
			}
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, _, err := p.ParseFile(context.Background(), filepath.Join(dir, "map.geojson"))
		assert.ErrorIs(t, err, osmparser.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := p.ParseFile(context.Background(), filepath.Join(dir, "missing.osm"))
		assert.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	p := osmparser.NewOsmParser(nil)
	ctx := context.Background()
	nodes, ways, err := p.Parse(ctx, osmxml.New(ctx, strings.NewReader(sampleOSM)))
	require.NoError(t, err)
	assert.Len(t, nodes, 5)
	assert.Len(t, ways, 1)
}
