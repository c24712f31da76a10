package edge

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned for events that carry no CloudFront record.
var ErrNoRecords = errors.New("event has no records")

// CloudFront event types the edge functions are associated with.
const (
	PhaseViewerRequest = "viewer-request"
	PhaseOriginRequest = "origin-request"
)

// Phases lists the supported event types in evaluation order.
var Phases = []string{PhaseViewerRequest, PhaseOriginRequest}

// RulesForPhase returns the preset rules of the function bound to phase.
func RulesForPhase(phase, canonicalHost string, style CleanURLStyle) (Rules, error) {
	switch phase {
	case PhaseViewerRequest:
		return ViewerRequestRules(canonicalHost), nil
	case PhaseOriginRequest:
		return OriginRequestRules(canonicalHost, style), nil
	default:
		return Rules{}, fmt.Errorf("unknown phase %q, expected one of %v", phase, Phases)
	}
}

// Handle applies rules to the request of the event's first record, which is
// the only record CloudFront sends.
func Handle(rules Rules, event Event) (Result, error) {
	if len(event.Records) == 0 {
		return Result{}, ErrNoRecords
	}
	return rules.Apply(event.Records[0].CF.Request), nil
}

// NewRequest builds a GET request for host and uri, as CloudFront would deliver it.
func NewRequest(host, uri, query string) Request {
	req := Request{Method: "GET", URI: uri, QueryString: query, Headers: Headers{}}
	if host != "" {
		req.Headers["host"] = []Header{{Key: "Host", Value: host}}
	}
	return req
}
