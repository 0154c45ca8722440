package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"donation_interface/internal/domain/entities"
	mock_interfaces "donation_interface/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type stubFilterContext struct {
	values   map[string]string
	now      time.Time
	velocity []int64
}

func (c stubFilterContext) Value(field string) string { return c.values[field] }
func (c stubFilterContext) GatewayIdentifier() string { return "testgw" }
func (c stubFilterContext) Now() time.Time            { return c.now }
func (c stubFilterContext) SessionVelocity() []int64  { return c.velocity }

func TestCustomFilters_Run(t *testing.T) {
	ctx := context.Background()
	fc := stubFilterContext{now: time.Unix(1000, 0)}

	cases := []struct {
		name   string
		ranges []ActionRange
		scores []int
		want   entities.ValidationAction
	}{
		{"no filters process", nil, nil, entities.ActionProcess},
		{"scores are summed", nil, []int{30, 35}, entities.ActionReview},
		{"challenge band", nil, []int{85}, entities.ActionChallenge},
		{"reject band", nil, []int{100}, entities.ActionReject},
		{"above every range rejects", nil, []int{250}, entities.ActionReject},
		{"below every range processes", []ActionRange{{Action: entities.ActionReview, Lower: 10, Upper: 20}}, []int{5}, entities.ActionProcess},
		{"custom ranges", []ActionRange{
			{Action: entities.ActionProcess, Lower: 0, Upper: 9},
			{Action: entities.ActionReject, Lower: 10, Upper: 20},
		}, []int{12}, entities.ActionReject},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var filters []CustomFilter
			for i, s := range c.scores {
				filters = append(filters, fixedFilter{name: string(rune('a' + i)), score: s})
			}
			cf := NewCustomFilters(c.ranges, filters...)
			if got := cf.Run(ctx, fc); got != c.want {
				t.Fatalf("expected %s, got %s (score %d)", c.want, got, cf.RiskScore())
			}
		})
	}
}

func TestCustomFilters_RunStartsFromZero(t *testing.T) {
	ctx := context.Background()
	cf := NewCustomFilters(nil, fixedFilter{name: "a", score: 40})

	cf.Run(ctx, stubFilterContext{})
	cf.Run(ctx, stubFilterContext{})
	if cf.RiskScore() != 40 {
		t.Fatalf("expected each run to start from zero, got %d", cf.RiskScore())
	}
}

func TestIPVelocityFilter(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(10_000, 0)
	fc := stubFilterContext{values: map[string]string{"user_ip": "10.0.0.1"}, now: now}

	t.Run("under threshold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockICounterStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "ipvelocity:10.0.0.1").Return([]int64{now.Unix() - 10, now.Unix() - 4000}, true, nil)

		f := NewIPVelocityFilter(store, 2, 100, 5*time.Minute)
		if got := f.Score(ctx, fc); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})

	t.Run("threshold reached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockICounterStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "ipvelocity:10.0.0.1").Return([]int64{now.Unix() - 10, now.Unix() - 20}, true, nil)
		store.EXPECT().Set(gomock.Any(), "ipvelocity:10.0.0.1", []int64{now.Unix() - 10, now.Unix() - 20, now.Unix()}, 5*time.Minute).Return(nil)

		f := NewIPVelocityFilter(store, 2, 100, 5*time.Minute)
		if got := f.Score(ctx, fc); got != 100 {
			t.Fatalf("expected fail score, got %d", got)
		}
	})

	t.Run("store failure fails open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockICounterStore(ctrl)
		store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("down"))

		f := NewIPVelocityFilter(store, 1, 100, time.Minute)
		if got := f.Score(ctx, fc); got != 0 {
			t.Fatalf("expected 0 when the store is down, got %d", got)
		}
	})

	t.Run("no ip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := NewIPVelocityFilter(mock_interfaces.NewMockICounterStore(ctrl), 1, 100, time.Minute)
		if got := f.Score(ctx, stubFilterContext{}); got != 0 {
			t.Fatalf("expected 0 without an ip, got %d", got)
		}
	})

	t.Run("post process records the attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockICounterStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "ipvelocity:10.0.0.1").Return(nil, false, nil)
		store.EXPECT().Set(gomock.Any(), "ipvelocity:10.0.0.1", []int64{now.Unix()}, time.Minute).Return(nil)

		cf := NewCustomFilters(nil, NewIPVelocityFilter(store, 1, 100, time.Minute), fixedFilter{name: "other"})
		cf.PostProcess(ctx, fc)
	})
}

func TestSessionVelocityFilter(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(10_000, 0)
	f := NewSessionVelocityFilter(3, 70, time.Minute)

	recent := []int64{now.Unix() - 1, now.Unix() - 2, now.Unix() - 3}
	if got := f.Score(ctx, stubFilterContext{now: now, velocity: recent}); got != 70 {
		t.Fatalf("expected fail score, got %d", got)
	}

	stale := []int64{now.Unix() - 1, now.Unix() - 2, now.Unix() - 120}
	if got := f.Score(ctx, stubFilterContext{now: now, velocity: stale}); got != 0 {
		t.Fatalf("expected stale stamps to be ignored, got %d", got)
	}
}
