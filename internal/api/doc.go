// Package api implements the HTTP client pipeline for the ETL backend and
// the typed wrappers over its endpoints.
//
// # Pipeline
//
// [Client] wraps the transport with two stages. The decoration stage reads
// the current token and language from a [TokenSource] and attaches
// Authorization (raw token, no scheme prefix), Accept-Language and
// X-Request-Id headers; it never blocks and never fails. The
// classification stage funnels every outcome (a well-formed [Envelope],
// a business envelope delivered with a non-2xx status, or a transport
// failure with no body at all) into a single outcome space:
//
//   - success: the envelope is returned and its data decoded for the caller
//   - auth-expired: the session-expiry side effect runs (once per request)
//     and the call fails with [KindAuthExpired]
//   - business error: the backend's message is displayed via [Notifier]
//     and the call fails with [KindBusiness]
//   - transport error: best-effort message, [KindTransport]
//
// The code partition is total: 0/200 succeed, 3/4 mean the token expired,
// everything else is a business failure. HTTP 401 and the backend's
// status-line 4 are honored as expiry signals too.
//
// # Endpoint wrappers
//
// [AuthService], [DataSourceService], [MissionService], [VariableService],
// [FileService] and [RunLogService] are thin typed functions over
// [Client.Post]; every backend endpoint is a POST. Request and response
// structs mirror the backend's JSON field names exactly.
//
// # Error Handling
//
// Failed calls return *[Error]. errors.Is works against the shared
// sentinels: [shared.ErrSessionExpired] for expired tokens,
// [shared.ErrAPIRequest] for transport failures.
package api
