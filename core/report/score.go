package report

import (
	"math"

	"github.com/drodriguezm/tablero/core/record"
)

// CompositeScore grades one advisor's week: per indicator applicable to the
// advisor's position, compliance is actual over target (zero when no target
// is configured), weighted by the indicator's position weight. When no
// applicable indicator carries a nonzero weight for the position, the weight
// spreads evenly instead. The result is a ceiling-rounded percentage and may
// exceed 100 when the advisor runs ahead of plan.
func (e *Engine) CompositeScore(advisorID, position string, year, week int) float64 {
	var applicable []string
	var totalWeight float64
	for _, ind := range e.snap.Indicators {
		if !ind.AppliesToPosition(position) {
			continue
		}
		applicable = append(applicable, ind.ID)
		totalWeight += ind.WeightFor(position)
	}
	if len(applicable) == 0 {
		return 0
	}

	even := totalWeight == 0
	if even {
		totalWeight = float64(len(applicable))
	}

	var weighted float64
	for _, id := range applicable {
		target := e.Target(id, advisorID, position, PeriodWeek, year, week, 0, 0)
		if target == 0 {
			continue
		}
		actual := e.Actual(id, record.TypeIndividual, advisorID, PeriodWeek, year, week, 0, 0)

		weight := e.inds[id].WeightFor(position)
		if even {
			weight = 1
		}
		weighted += actual / target * weight
	}
	return math.Ceil(weighted / totalWeight * 100)
}
