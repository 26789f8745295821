package util_test

import (
	"errors"
	"fmt"
	"testing"

	"lintang/locroute/pkg/util"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	t.Run("code and cause are both reachable", func(t *testing.T) {
		cause := errors.New("disk on fire")
		err := util.WrapErrorf(cause, util.ErrNotFound, "node %d not found", 7)

		assert.True(t, errors.Is(err, util.ErrNotFound))
		assert.True(t, errors.Is(err, cause))
		assert.False(t, errors.Is(err, util.ErrBadParamInput))

		var uerr *util.Error
		assert.True(t, errors.As(err, &uerr))
		assert.Equal(t, util.ErrNotFound, uerr.Code())
		assert.Equal(t, "node 7 not found", uerr.Message())
		assert.Equal(t, "node 7 not found: disk on fire", err.Error())
	})

	t.Run("wrapped again with fmt keeps the code", func(t *testing.T) {
		err := fmt.Errorf("route: %w", util.WrapErrorf(nil, util.ErrBadParamInput, "bad metric"))
		assert.True(t, errors.Is(err, util.ErrBadParamInput))
		assert.Equal(t, "route: bad metric", err.Error())
	})
}

func TestReverseG(t *testing.T) {
	arr := []int64{1, 2, 3, 4}
	util.ReverseG(arr)
	assert.Equal(t, []int64{4, 3, 2, 1}, arr)

	empty := []int64{}
	util.ReverseG(empty)
	assert.Empty(t, empty)
}

func TestUnits(t *testing.T) {
	assert.InDelta(t, 1.609344, util.MilesToKm(1), 1e-12)
	assert.InDelta(t, 40.2336, util.MilesToKm(25), 1e-9)
	assert.Equal(t, 3.14, util.RoundFloat(3.14159, 2))
}
