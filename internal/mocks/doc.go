// Package mocks provides hand-rolled test doubles for the store and
// service interfaces. Each mock exposes function fields to override
// individual methods and falls back to a simple in-memory default.
package mocks
