// Package api is a small HTTP client for the MDD REST API used by mddctl.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx replies become
// *Error, carrying the status code and the server's message; match them with
// errors.Is against ErrUnauthorized, ErrNotFound and friends.
//
// A Client is safe for concurrent use. The bearer token is held in memory
// only.
package api
