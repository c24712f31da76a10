package edge

import "encoding/json"

// Event is the payload CloudFront passes to a Lambda@Edge function.
type Event struct {
	Records []Record `json:"Records"`
}

type Record struct {
	CF CloudFront `json:"cf"`
}

type CloudFront struct {
	Config  Config  `json:"config"`
	Request Request `json:"request"`
}

type Config struct {
	DistributionDomainName string `json:"distributionDomainName,omitempty"`
	DistributionID         string `json:"distributionId,omitempty"`
	EventType              string `json:"eventType,omitempty"`
	RequestID              string `json:"requestId,omitempty"`
}

// Header is one value of a header; CloudFront keys headers by lowercase name
// and keeps the original casing in Key.
type Header struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

type Headers map[string][]Header

// Get returns the first value of the lowercase header name.
func (h Headers) Get(name string) string {
	if v := h[name]; len(v) > 0 {
		return v[0].Value
	}
	return ""
}

type Request struct {
	ClientIP    string  `json:"clientIp,omitempty"`
	Method      string  `json:"method,omitempty"`
	URI         string  `json:"uri"`
	QueryString string  `json:"querystring"`
	Headers     Headers `json:"headers"`
}

// Host returns the request's Host header value.
func (r Request) Host() string {
	return r.Headers.Get("host")
}

type Response struct {
	Status            string  `json:"status"`
	StatusDescription string  `json:"statusDescription,omitempty"`
	Headers           Headers `json:"headers,omitempty"`
}

// Result is what a handler hands back to CloudFront: a generated Response
// or the Request to forward.
type Result struct {
	Response *Response
	Request  *Request
}

// IsRedirect reports whether the result short-circuits with a response.
func (r Result) IsRedirect() bool {
	return r.Response != nil
}

// Location returns the redirect target, or "" when the request is forwarded.
func (r Result) Location() string {
	if r.Response == nil {
		return ""
	}
	return r.Response.Headers.Get("location")
}

// MarshalJSON encodes whichever side is set, matching the handler contract.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Response != nil {
		return json.Marshal(r.Response)
	}
	return json.Marshal(r.Request)
}
