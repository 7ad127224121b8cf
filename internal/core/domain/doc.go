// Package domain contains the core business types for convertd:
// conversion requests, outcomes, format definitions, and domain errors.
// It depends on nothing outside the standard library.
package domain
