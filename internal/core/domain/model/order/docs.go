// Package order contains the Order aggregate and its value objects: the
// status enumeration, reason codes, payment types, customer details and the
// append-only audit history.
//
// The aggregate is the single write model of the workflow engine. All
// mutations flow through Order.ChangeStatus, which couples the status update
// with its history event so no reader can observe one without the other.
package order
