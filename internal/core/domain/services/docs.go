// Package services contains stateless domain services that operate across
// aggregates: the transition authorization policy and the daily report
// builder.
package services
