package payments

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase/interfaces"
)

const (
	maxSendAttempts = 3
	maxResponseSize = 1 << 20
	userAgent       = "DonationInterface/1.0"
)

// TransportOptions configures one gateway's HTTP transport.
type TransportOptions struct {
	Gateway           string
	Timeout           time.Duration
	UseHTTPProxy      bool
	HTTPProxy         string
	ClientTimeoutHint bool
}

// HTTPGatewayTransport posts serialized requests to a gateway. Up to three
// attempts are made while the gateway answers 403 or the connection fails.
type HTTPGatewayTransport struct {
	client   *http.Client
	opts     TransportOptions
	mockMode bool
}

var _ interfaces.IGatewayTransport = (*HTTPGatewayTransport)(nil)

func NewHTTPGatewayTransport(opts TransportOptions) (*HTTPGatewayTransport, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[gateway][transport] mock mode enabled gateway=%s", opts.Gateway)
		return &HTTPGatewayTransport{opts: opts, mockMode: true}, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.UseHTTPProxy && opts.HTTPProxy != "" {
		proxyURL, err := url.Parse(opts.HTTPProxy)
		if err != nil {
			return nil, fmt.Errorf("invalid http proxy %q: %w", opts.HTTPProxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return &HTTPGatewayTransport{
		client: &http.Client{Timeout: opts.Timeout, Transport: transport},
		opts:   opts,
	}, nil
}

func (t *HTTPGatewayTransport) Send(ctx context.Context, req entities.TransportRequest) (entities.TransportResponse, bool) {
	start := time.Now()
	if t.mockMode {
		return mockResponse(req, start), true
	}

	var resp entities.TransportResponse
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		resp.Attempts = attempt
		log.Printf("[gateway][transport] sending gateway=%s request_id=%s attempt=%d", t.opts.Gateway, req.RequestID, attempt)

		body, status, header, err := t.post(ctx, req)
		if err != nil {
			log.Printf("[gateway][transport] request failed gateway=%s request_id=%s attempt=%d err=%v",
				t.opts.Gateway, req.RequestID, attempt, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		resp.StatusCode = status
		resp.Header = header

		switch status {
		case http.StatusOK:
			resp.Body = body
			resp.Duration = time.Since(start)
			return resp, true
		case http.StatusBadRequest:
			log.Printf("[gateway][transport] bad request gateway=%s request_id=%s", t.opts.Gateway, req.RequestID)
			resp.Body = body
			resp.Duration = time.Since(start)
			return resp, true
		case http.StatusForbidden:
			log.Printf("[gateway][transport] forbidden, retrying gateway=%s request_id=%s attempt=%d",
				t.opts.Gateway, req.RequestID, attempt)
			continue
		default:
			log.Printf("[gateway][transport] unexpected status gateway=%s request_id=%s status=%d",
				t.opts.Gateway, req.RequestID, status)
			resp.Duration = time.Since(start)
			return resp, false
		}
	}
	resp.Duration = time.Since(start)
	return resp, false
}

func (t *HTTPGatewayTransport) post(ctx context.Context, req entities.TransportRequest) (string, int, http.Header, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, strings.NewReader(req.Payload))
	if err != nil {
		return "", 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "text/"+string(req.CommunicationType)+"; charset=utf-8")
	httpReq.Header.Set("Content-Length", strconv.Itoa(len(req.Payload)))
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("X-VPS-Request-ID", req.RequestID)
	if t.opts.ClientTimeoutHint {
		httpReq.Header.Set("X-VPS-Client-Timeout", strconv.Itoa(int(t.opts.Timeout.Seconds())))
	}
	httpReq.ContentLength = int64(len(req.Payload))

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return "", 0, nil, err
	}
	defer httpResp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return "", 0, nil, err
	}
	return string(b), httpResp.StatusCode, httpResp.Header, nil
}

// mockResponse answers every request as approved, in the wire format the
// request was sent in.
func mockResponse(req entities.TransportRequest, start time.Time) entities.TransportResponse {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	var body string
	switch req.CommunicationType {
	case entities.CommunicationXML:
		body = `<?xml version="1.0"?><XML><RESPONSE><RESULT>OK</RESULT><ROW>` +
			`<ORDERID>` + req.RequestID + `</ORDERID><STATUSID>800</STATUSID><EFFORTID>1</EFFORTID>` +
			`</ROW></RESPONSE></XML>`
	default:
		body = "RESULT=0&PNREF=MOCK" + id + "&RESPMSG=Approved&CVV2MATCH=Y"
	}
	log.Printf("[gateway][transport] mock response request_id=%s", req.RequestID)
	return entities.TransportResponse{Body: body, StatusCode: http.StatusOK, Attempts: 1, Duration: time.Since(start)}
}

func isPaymentGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
