package domain

import "fmt"

// StalePolicy decides what a stale element right after a state-changing click means
type StalePolicy string

const (
	// StaleAssumeSuccess treats staleness as evidence the click took effect
	StaleAssumeSuccess StalePolicy = "assume-success"
	// StaleFail reports the item as failed
	StaleFail StalePolicy = "fail"
	// StaleVerify re-resolves the element and reads its state again
	StaleVerify StalePolicy = "verify"
)

// ParseStalePolicy validates a policy name
func ParseStalePolicy(s string) (StalePolicy, error) {
	switch StalePolicy(s) {
	case StaleAssumeSuccess, StaleFail, StaleVerify:
		return StalePolicy(s), nil
	case "":
		return StaleVerify, nil
	default:
		return "", fmt.Errorf("%w: unknown stale policy %q", ErrConfiguration, s)
	}
}

// ParseLoginMode validates a login mode name
func ParseLoginMode(s string) (LoginMode, error) {
	switch LoginMode(s) {
	case LoginAuto, LoginManual:
		return LoginMode(s), nil
	case "":
		return LoginManual, nil
	default:
		return "", fmt.Errorf("%w: unknown login mode %q", ErrConfiguration, s)
	}
}
