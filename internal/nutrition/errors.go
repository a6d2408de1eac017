package nutrition

import "errors"

var (
	// ErrInvalidDate is returned when the fight date is not after today,
	// or is too close in strict timing mode
	ErrInvalidDate = errors.New("invalid fight date")

	// ErrInvalidWeight is returned when current weight does not exceed target weight
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrInsufficientCampLength is returned when no weeks remain for gradual loss
	ErrInsufficientCampLength = errors.New("insufficient camp length")

	// ErrInvalidProfile is returned for out-of-range athlete or camp inputs
	ErrInvalidProfile = errors.New("invalid profile")
)

// ErrorKind maps a plan error to a stable machine-readable kind
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrInvalidWeight):
		return "invalid_weight"
	case errors.Is(err, ErrInsufficientCampLength):
		return "insufficient_camp_length"
	case errors.Is(err, ErrInvalidProfile):
		return "invalid_profile"
	default:
		return ""
	}
}
