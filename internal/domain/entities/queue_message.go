package entities

import (
	"strconv"
	"time"
)

// Queue names a downstream notification queue.
type Queue string

const (
	QueueDefault Queue = "default"
	QueuePending Queue = "pending"
	QueueLimbo   Queue = "limbo"
)

// QueueForStatus routes a final status to its queue. ok is false when the
// status has no queue.
func QueueForStatus(s FinalStatus) (Queue, bool) {
	switch s {
	case FinalStatusComplete:
		return QueueDefault, true
	case FinalStatusPending, FinalStatusPendingPoke:
		return QueuePending, true
	}
	return "", false
}

// QueueMessage is the flat message handed to the messaging collaborator.
type QueueMessage struct {
	Queue         Queue             `json:"queue"`
	CorrelationID string            `json:"correlation_id"`
	Antimessage   bool              `json:"antimessage,omitempty"`
	Body          map[string]string `json:"body"`
}

func CorrelationID(gatewayIdentifier, orderID string) string {
	return gatewayIdentifier + "-" + orderID
}

// NewQueueMessage builds a full message from the donor whitelist.
func NewQueueMessage(queue Queue, gatewayIdentifier string, donor map[string]string, gatewayTxnID, response string, now time.Time) QueueMessage {
	body := make(map[string]string, len(donor)+6)
	for k, v := range donor {
		body[k] = v
	}
	correlation := CorrelationID(gatewayIdentifier, donor["order_id"])
	body["gateway"] = gatewayIdentifier
	body["gateway_txn_id"] = gatewayTxnID
	body["response"] = response
	body["correlation-id"] = correlation
	body["date"] = strconv.FormatInt(now.Unix(), 10)
	return QueueMessage{Queue: queue, CorrelationID: correlation, Body: body}
}

// NewAntimessage voids a prior limbo message for the same order.
func NewAntimessage(gatewayIdentifier, orderID, gatewayTxnID string) QueueMessage {
	correlation := CorrelationID(gatewayIdentifier, orderID)
	return QueueMessage{
		Queue:         QueueLimbo,
		CorrelationID: correlation,
		Antimessage:   true,
		Body: map[string]string{
			"gateway":        gatewayIdentifier,
			"gateway_txn_id": gatewayTxnID,
			"order_id":       orderID,
			"correlation-id": correlation,
			"antimessage":    "true",
		},
	}
}
