// Package api is the HTTP client wrapper for the Client REST resource.
//
// Paths are resolved relative to the configured endpoint the same way a
// browser resolves a relative link on the endpoint page, so "api" and
// "api/42" address the collection and a single client respectively.
//
// Every request carries Accept: application/json and an X-Request-ID used to
// correlate debug logs. Write requests (POST, PUT, DELETE) additionally carry
// the anti-forgery header once both its name and token are known, either from
// configuration or from the meta tags of the endpoint page (see
// DiscoverAntiForgery).
//
// Failures are reported as one of two error types:
//
//   - *RequestError: the server answered with a non-2xx status, or a 2xx body
//     could not be decoded
//   - *TransportError: the request never produced a response
//
// There are no retries. Callers control cancellation through the context.
package api
