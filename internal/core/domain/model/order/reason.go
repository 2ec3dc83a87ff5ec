package order

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// ReasonCode is a short machine-readable qualifier attached to certain
// status transitions (failed contact, refusals, returns). ReasonNone marks
// the absence of a reason.
type ReasonCode int

const (
	// ReasonNone indicates no reason code was supplied.
	ReasonNone ReasonCode = iota

	ReasonNoAnswer
	ReasonBadNumber
	ReasonFake
	ReasonDeclined
	ReasonRescheduled
	ReasonPartialReturn
	ReasonFullReturn
)

func getReasonCodeStrings() map[ReasonCode]string {
	return map[ReasonCode]string{
		ReasonNoAnswer:      "NO_ANSWER",
		ReasonBadNumber:     "BAD_NUMBER",
		ReasonFake:          "FAKE",
		ReasonDeclined:      "DECLINED",
		ReasonRescheduled:   "RESCHEDULED",
		ReasonPartialReturn: "PARTIAL_RETURN",
		ReasonFullReturn:    "FULL_RETURN",
	}
}

// ReasonCodeFromString parses a wire name into a ReasonCode.
// The empty string parses to ReasonNone.
func ReasonCodeFromString(s string) (ReasonCode, error) {
	if s == "" {
		return ReasonNone, nil
	}
	for code, name := range getReasonCodeStrings() {
		if name == s {
			return code, nil
		}
	}
	return ReasonNone, errs.NewValueIsInvalidErrorWithCause("reasonCode",
		fmt.Errorf("%q is not a valid reason code", s))
}

// Validate checks that the ReasonCode is ReasonNone or one of the known codes.
func (r ReasonCode) Validate() error {
	if r == ReasonNone {
		return nil
	}
	if _, ok := getReasonCodeStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("reasonCode",
			fmt.Errorf("%d is not a valid reason code", r))
	}
	return nil
}

// String returns the wire name of the reason code, or "" for ReasonNone.
func (r ReasonCode) String() string {
	if name, ok := getReasonCodeStrings()[r]; ok {
		return name
	}
	return ""
}
