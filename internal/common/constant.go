// Package common contains shared constants and sentinel errors used across
// the MDD server and client.
package common

// AuthorizationHeader is the HTTP header that carries the access token.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// TokenType is reported to clients next to every issued token.
const TokenType = "Bearer"
