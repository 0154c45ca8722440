package entities

import (
	"errors"
	"testing"
)

func TestFinalStatus(t *testing.T) {
	for _, s := range []string{"complete", "pending", "pending-poke", "failed", "revised"} {
		if _, err := ParseFinalStatus(s); err != nil {
			t.Fatalf("expected %q to be valid: %v", s, err)
		}
	}
	if _, err := ParseFinalStatus("approved"); !errors.Is(err, ErrInvalidFinalStatus) {
		t.Fatalf("expected ErrInvalidFinalStatus, got %v", err)
	}
	if !FinalStatusPendingPoke.RequiresHardReset() || FinalStatusRevised.RequiresHardReset() {
		t.Fatalf("unexpected reset classification")
	}
	if !FinalStatusPending.Successful() || FinalStatusFailed.Successful() || FinalStatus("").Successful() {
		t.Fatalf("unexpected success classification")
	}
}

func TestValidationAction(t *testing.T) {
	if !(ActionProcess < ActionReview && ActionReview < ActionChallenge && ActionChallenge < ActionReject) {
		t.Fatalf("actions must be ordered")
	}
	a, err := ParseValidationAction("Challenge")
	if err != nil || a != ActionChallenge {
		t.Fatalf("expected challenge, got %v %v", a, err)
	}
	b, err := ActionReject.MarshalText()
	if err != nil || string(b) != "reject" {
		t.Fatalf("unexpected text %q %v", b, err)
	}
	if _, err := ValidationAction(9).MarshalText(); !errors.Is(err, ErrInvalidValidationAction) {
		t.Fatalf("expected ErrInvalidValidationAction, got %v", err)
	}
}

func TestQueueRouting(t *testing.T) {
	cases := map[FinalStatus]Queue{
		FinalStatusComplete:    QueueDefault,
		FinalStatusPending:     QueuePending,
		FinalStatusPendingPoke: QueuePending,
	}
	for status, want := range cases {
		if got, ok := QueueForStatus(status); !ok || got != want {
			t.Fatalf("%s: expected %s, got %s", status, want, got)
		}
	}
	if _, ok := QueueForStatus(FinalStatusFailed); ok {
		t.Fatalf("failed has no queue")
	}

	anti := NewAntimessage("globalcollect", "123", "tx-9")
	if !anti.Antimessage || anti.CorrelationID != "globalcollect-123" || anti.Queue != QueueLimbo {
		t.Fatalf("unexpected antimessage %+v", anti)
	}
}
