// Package api contains the HTTP handlers for the authentication, todo,
// webhook, and health endpoints, plus the request/response models and
// the error-to-status mapping shared between them.
package api
