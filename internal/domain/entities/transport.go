package entities

import (
	"net/http"
	"time"
)

// TransportRequest is a serialized payload ready to go over the wire.
type TransportRequest struct {
	URL               string
	Payload           string
	CommunicationType CommunicationType
	RequestID         string
}

// TransportResponse is what the last delivered attempt returned.
type TransportResponse struct {
	Body       string
	StatusCode int
	Header     http.Header
	Attempts   int
	Duration   time.Duration
}
