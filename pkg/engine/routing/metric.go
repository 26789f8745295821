package routing

import (
	"strings"

	"lintang/locroute/pkg/engine/routingalgorithm"
	"lintang/locroute/pkg/util"
)

type Metric string

const (
	MetricDistance Metric = "distance"
	MetricTime     Metric = "time"
)

// ParseMetric "distance"/"shortest" atau "time"/"fastest". string kosong berarti distance.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "distance", "shortest":
		return MetricDistance, nil
	case "time", "fastest":
		return MetricTime, nil
	default:
		return "", util.WrapErrorf(nil, util.ErrBadParamInput, "unknown routing metric %q", s)
	}
}

func (m Metric) costFunc() (routingalgorithm.CostFunc, error) {
	switch m {
	case MetricDistance:
		return routingalgorithm.DistanceCost, nil
	case MetricTime:
		return routingalgorithm.TimeCost, nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown routing metric %q", string(m))
	}
}

// Reason kenapa route tidak ditemukan.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonNoRoutableNode Reason = "NO_ROUTABLE_NODE"
	ReasonSameNode       Reason = "SAME_NODE"
	ReasonOutOfCoverage  Reason = "OUT_OF_COVERAGE"
	ReasonNoRoute        Reason = "NO_ROUTE"
	ReasonBudgetExceeded Reason = "BUDGET_EXCEEDED"
)
