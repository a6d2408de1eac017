package nutrition

import (
	"fmt"
)

// DistributionPolicy selects how the fat-loss goal is spread over the camp
type DistributionPolicy string

const (
	// DistributeUniform assigns the same loss to every week
	DistributeUniform DistributionPolicy = "uniform"
	// DistributeProgressive ramps the loss up linearly towards fight week
	DistributeProgressive DistributionPolicy = "progressive"
)

// Distributor splits a loss goal into per-week shares that sum to the goal
type Distributor interface {
	Distribute(goalKg float64, weeks int) []float64
}

// NewDistributor returns the distributor for a policy. An empty policy means
// uniform; growth 0 means the default ramp of 1.
func NewDistributor(policy DistributionPolicy, growth float64) (Distributor, error) {
	switch policy {
	case DistributeUniform, "":
		return uniformDistributor{}, nil
	case DistributeProgressive:
		if growth < 0 {
			return nil, fmt.Errorf("ramp growth %v must not be negative: %w", growth, ErrInvalidProfile)
		}
		if growth == 0 {
			growth = 1
		}
		return progressiveDistributor{growth: growth}, nil
	default:
		return nil, fmt.Errorf("distribution %q: %w", policy, ErrInvalidProfile)
	}
}

type uniformDistributor struct{}

func (uniformDistributor) Distribute(goalKg float64, weeks int) []float64 {
	factors := make([]float64, weeks)
	for i := range factors {
		factors[i] = 1
	}
	return normalise(goalKg, factors)
}

// progressiveDistributor weights week i (1-based) by 1 + growth*(i-1).
// With growth 1 this is the 1, 2, ..., N ramp.
type progressiveDistributor struct {
	growth float64
}

func (d progressiveDistributor) Distribute(goalKg float64, weeks int) []float64 {
	factors := make([]float64, weeks)
	for i := range factors {
		factors[i] = 1 + d.growth*float64(i)
	}
	return normalise(goalKg, factors)
}

// normalise scales factors to sum to goal. The last share absorbs rounding
// drift so the sum is exact.
func normalise(goalKg float64, factors []float64) []float64 {
	shares := make([]float64, len(factors))
	if len(factors) == 0 || goalKg <= 0 {
		return shares
	}

	var total float64
	for _, f := range factors {
		total += f
	}

	var assigned float64
	last := len(factors) - 1
	for i := 0; i < last; i++ {
		shares[i] = goalKg * factors[i] / total
		assigned += shares[i]
	}
	shares[last] = goalKg - assigned

	return shares
}
