package api

import (
	"encoding/json"
	"net/http"
)

// Envelope is the business-level wrapper every backend response carries on
// the happy transport path: {"code": int, "message": string, "data": any}.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Classification partitions every envelope code into exactly one class.
type Classification int

const (
	ClassSuccess Classification = iota
	ClassAuthExpired
	ClassBusinessError
)

func (c Classification) String() string {
	switch c {
	case ClassSuccess:
		return "success"
	case ClassAuthExpired:
		return "auth-expired"
	default:
		return "business-error"
	}
}

// Classify maps a business code to its class. Total over all ints: 0 and
// 200 are success, 3 and 4 are auth-expired, everything else is a business
// error.
func Classify(code int) Classification {
	switch code {
	case 0, 200:
		return ClassSuccess
	case 3, 4:
		return ClassAuthExpired
	default:
		return ClassBusinessError
	}
}

// authExpiredStatus reports whether an HTTP status signals an expired
// session. The backend mostly uses 401, but some deployments leak the
// business code 4 into the status line; both are honored so real expired
// sessions are never missed.
func authExpiredStatus(status int) bool {
	return status == http.StatusUnauthorized || status == 4
}

// probe is the lenient decode target used to detect whether a body follows
// the envelope convention at all. A nil Code means "no recognizable code
// field"; such payloads pass through unclassified.
type probe struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeEnvelope attempts to interpret body as an [Envelope]. The second
// return is false when the body is not an envelope-shaped JSON object.
func decodeEnvelope(body []byte) (*Envelope, bool) {
	var p probe
	if err := json.Unmarshal(body, &p); err != nil || p.Code == nil {
		return nil, false
	}
	return &Envelope{Code: *p.Code, Message: p.Message, Data: p.Data}, true
}
