package usecase

import (
	"context"
	"log"
	"time"

	"donation_interface/internal/domain/entities"
)

// FilterContext is the read-only view a fraud filter gets of a donation.
type FilterContext interface {
	Value(field string) string
	GatewayIdentifier() string
	Now() time.Time
	SessionVelocity() []int64
}

// CustomFilter scores a donation. Higher scores are riskier.
type CustomFilter interface {
	Name() string
	Score(ctx context.Context, fc FilterContext) int
}

// FilterPostProcessor is implemented by filters that record something once a
// transaction has been processed.
type FilterPostProcessor interface {
	OnPostProcess(ctx context.Context, fc FilterContext)
}

// RiskScorer accumulates filter scores.
type RiskScorer interface {
	AddRiskScore(delta int, source string)
}

// ActionRange maps an inclusive score interval to a validation action.
type ActionRange struct {
	Action entities.ValidationAction
	Lower  int
	Upper  int
}

// DefaultActionRanges is used when no risk score ranges are configured.
var DefaultActionRanges = []ActionRange{
	{Action: entities.ActionProcess, Lower: 0, Upper: 59},
	{Action: entities.ActionReview, Lower: 60, Upper: 79},
	{Action: entities.ActionChallenge, Lower: 80, Upper: 89},
	{Action: entities.ActionReject, Lower: 90, Upper: 100},
}

// CustomFilters runs a filter chain for one donation and turns the summed
// score into an action.
type CustomFilters struct {
	filters   []CustomFilter
	ranges    []ActionRange
	riskScore int
	scores    map[string]int
}

var _ RiskScorer = (*CustomFilters)(nil)

func NewCustomFilters(ranges []ActionRange, filters ...CustomFilter) *CustomFilters {
	if len(ranges) == 0 {
		ranges = DefaultActionRanges
	}
	return &CustomFilters{
		filters: filters,
		ranges:  ranges,
		scores:  map[string]int{},
	}
}

func (c *CustomFilters) AddRiskScore(delta int, source string) {
	c.riskScore += delta
	c.scores[source] += delta
}

func (c *CustomFilters) RiskScore() int {
	return c.riskScore
}

// Run scores the donation from zero and returns the resulting action.
func (c *CustomFilters) Run(ctx context.Context, fc FilterContext) entities.ValidationAction {
	c.riskScore = 0
	c.scores = map[string]int{}
	for _, f := range c.filters {
		c.AddRiskScore(f.Score(ctx, fc), f.Name())
	}
	action := c.determineAction()
	log.Printf("[gateway][filters] gateway=%s risk_score=%d action=%s scores=%v",
		fc.GatewayIdentifier(), c.riskScore, action, c.scores)
	return action
}

// Scores above every range reject, scores below every range process.
func (c *CustomFilters) determineAction() entities.ValidationAction {
	highest := c.ranges[0].Upper
	for _, r := range c.ranges {
		if c.riskScore >= r.Lower && c.riskScore <= r.Upper {
			return r.Action
		}
		if r.Upper > highest {
			highest = r.Upper
		}
	}
	if c.riskScore > highest {
		return entities.ActionReject
	}
	return entities.ActionProcess
}

func (c *CustomFilters) PostProcess(ctx context.Context, fc FilterContext) {
	for _, f := range c.filters {
		if pp, ok := f.(FilterPostProcessor); ok {
			pp.OnPostProcess(ctx, fc)
		}
	}
}
