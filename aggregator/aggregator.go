package aggregator

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

// Sum returns an aggregator adding the children scores. With no children it
// returns the minimum score.
func Sum() types.Aggregator {
	return sumAggregator{}
}

type sumAggregator struct{}

func (a sumAggregator) Name() string {
	return "sum"
}

func (a sumAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a sumAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	if len(aggregation.Scores) == 0 {
		return score.Min
	}
	return score.Sum(aggregation.Scores)
}

// Product returns an aggregator multiplying the children scores. With no
// children it returns the minimum score.
func Product() types.Aggregator {
	return productAggregator{}
}

type productAggregator struct{}

func (a productAggregator) Name() string {
	return "product"
}

func (a productAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a productAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	if len(aggregation.Scores) == 0 {
		return score.Min
	}
	return score.Product(aggregation.Scores)
}

// Minimum returns an aggregator yielding the lowest children score, or the
// minimum score when there are no children.
func Minimum() types.Aggregator {
	return minimumAggregator{}
}

type minimumAggregator struct{}

func (a minimumAggregator) Name() string {
	return "minimum"
}

func (a minimumAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a minimumAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	if len(aggregation.Scores) == 0 {
		return score.Min
	}
	result := aggregation.Scores[0]
	for _, item := range aggregation.Scores[1:] {
		if item.Less(result) {
			result = item
		}
	}
	return result
}

// Maximum returns an aggregator yielding the highest children score when it
// reaches the threshold, the minimum score otherwise (or with no children).
func Maximum(threshold score.Score) types.Aggregator {
	return maximumAggregator{threshold: threshold}
}

type maximumAggregator struct {
	threshold score.Score
}

func (a maximumAggregator) Name() string {
	return fmt.Sprintf("maximum(%v)", a.threshold)
}

func (a maximumAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a maximumAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	if len(aggregation.Scores) == 0 {
		return score.Min
	}
	result := aggregation.Scores[0]
	for _, item := range aggregation.Scores[1:] {
		if result.Less(item) {
			result = item
		}
	}
	if result.Less(a.threshold) {
		return score.Min
	}
	return result
}

// Median returns an aggregator yielding the median children score; an even
// children count averages the two middle scores. With no children it returns
// the minimum score.
func Median() types.Aggregator {
	return medianAggregator{}
}

type medianAggregator struct{}

func (a medianAggregator) Name() string {
	return "median"
}

func (a medianAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a medianAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	count := len(aggregation.Scores)
	if count == 0 {
		return score.Min
	}
	// sort a copy; the input order belongs to the caller
	sorted := make([]score.Score, count)
	copy(sorted, aggregation.Scores)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})
	if count%2 == 0 {
		mid := count / 2
		return score.New((sorted[mid-1].Value() + sorted[mid].Value()) / 2)
	}
	return sorted[count/2]
}

// Average returns an aggregator yielding the arithmetic mean of the children
// scores when it reaches the threshold, the minimum score otherwise (or with
// no children).
func Average(threshold score.Score) types.Aggregator {
	return averageAggregator{threshold: threshold}
}

type averageAggregator struct {
	threshold score.Score
}

func (a averageAggregator) Name() string {
	return fmt.Sprintf("average(%v)", a.threshold)
}

func (a averageAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a averageAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	count := len(aggregation.Scores)
	if count == 0 {
		return score.Min
	}
	average := score.New(score.Sum(aggregation.Scores).Value() / float64(count))
	if average.Less(a.threshold) {
		return score.Min
	}
	return average
}

// GeometricMean returns an aggregator yielding the geometric mean of the
// children scores when it reaches the threshold, the minimum score otherwise
// (or with no children).
func GeometricMean(threshold score.Score) types.Aggregator {
	return geometricMeanAggregator{threshold: threshold}
}

type geometricMeanAggregator struct {
	threshold score.Score
}

func (a geometricMeanAggregator) Name() string {
	return fmt.Sprintf("geometric_mean(%v)", a.threshold)
}

func (a geometricMeanAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a geometricMeanAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	count := len(aggregation.Scores)
	if count == 0 {
		return score.Min
	}
	product := 1.0
	for _, item := range aggregation.Scores {
		product *= item.Value()
	}
	mean := score.New(math.Pow(product, 1/float64(count)))
	if mean.Less(a.threshold) {
		return score.Min
	}
	return mean
}

// HarmonicMean returns an aggregator yielding the harmonic mean of the
// children scores when it reaches the threshold, the minimum score otherwise
// (or with no children). A zero children score yields a zero mean.
func HarmonicMean(threshold score.Score) types.Aggregator {
	return harmonicMeanAggregator{threshold: threshold}
}

type harmonicMeanAggregator struct {
	threshold score.Score
}

func (a harmonicMeanAggregator) Name() string {
	return fmt.Sprintf("harmonic_mean(%v)", a.threshold)
}

func (a harmonicMeanAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a harmonicMeanAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	count := len(aggregation.Scores)
	if count == 0 {
		return score.Min
	}
	reciprocals := 0.0
	for _, item := range aggregation.Scores {
		if item.Value() == 0 {
			return score.Min
		}
		reciprocals += 1 / item.Value()
	}
	mean := score.New(float64(count) / reciprocals)
	if mean.Less(a.threshold) {
		return score.Min
	}
	return mean
}
