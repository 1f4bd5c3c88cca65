// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// The core services depend only on these narrow contracts; concrete
// implementations live under internal/adapters/driven and are injected
// at startup.
package driven
