package usecase

import (
	"context"
	"log"
	"time"

	"donation_interface/internal/usecase/interfaces"
)

const ipVelocityKeyPrefix = "ipvelocity:"

// IPVelocityFilter penalizes client IPs that attempted too many donations in
// the configured window. Any counter store failure scores zero.
type IPVelocityFilter struct {
	store     interfaces.ICounterStore
	threshold int
	failScore int
	window    time.Duration
}

var (
	_ CustomFilter        = (*IPVelocityFilter)(nil)
	_ FilterPostProcessor = (*IPVelocityFilter)(nil)
)

func NewIPVelocityFilter(store interfaces.ICounterStore, threshold, failScore int, window time.Duration) *IPVelocityFilter {
	return &IPVelocityFilter{
		store:     store,
		threshold: threshold,
		failScore: failScore,
		window:    window,
	}
}

func (f *IPVelocityFilter) Name() string {
	return "ip_velocity"
}

func (f *IPVelocityFilter) Score(ctx context.Context, fc FilterContext) int {
	ip := fc.Value("user_ip")
	if ip == "" {
		return 0
	}
	stamps, found, err := f.store.Get(ctx, ipVelocityKeyPrefix+ip)
	if err != nil {
		log.Printf("[gateway][filters] ip velocity store unavailable, failing open ip=%s err=%v", ip, err)
		return 0
	}
	if !found {
		return 0
	}

	now := fc.Now()
	stamps = pruneStamps(stamps, now, f.window)
	if len(stamps) < f.threshold {
		return 0
	}
	log.Printf("[gateway][filters] ip velocity exceeded ip=%s hits=%d threshold=%d", ip, len(stamps), f.threshold)
	f.save(ctx, ip, append(stamps, now.Unix()))
	return f.failScore
}

// OnPostProcess counts the processed attempt against the IP.
func (f *IPVelocityFilter) OnPostProcess(ctx context.Context, fc FilterContext) {
	ip := fc.Value("user_ip")
	if ip == "" {
		return
	}
	stamps, _, err := f.store.Get(ctx, ipVelocityKeyPrefix+ip)
	if err != nil {
		log.Printf("[gateway][filters] ip velocity store unavailable, not recording ip=%s err=%v", ip, err)
		return
	}
	now := fc.Now()
	f.save(ctx, ip, append(pruneStamps(stamps, now, f.window), now.Unix()))
}

func (f *IPVelocityFilter) save(ctx context.Context, ip string, stamps []int64) {
	if err := f.store.Set(ctx, ipVelocityKeyPrefix+ip, stamps, f.window); err != nil {
		log.Printf("[gateway][filters] ip velocity store write failed ip=%s err=%v", ip, err)
	}
}

// pruneStamps keeps the unix timestamps newer than now-window.
func pruneStamps(stamps []int64, now time.Time, window time.Duration) []int64 {
	cutoff := now.Add(-window).Unix()
	kept := make([]int64, 0, len(stamps)+1)
	for _, s := range stamps {
		if s > cutoff {
			kept = append(kept, s)
		}
	}
	return kept
}
