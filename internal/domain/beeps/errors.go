package beeps

import "errors"

var (
	// ErrInvalidPayload is returned when a create request body is not a JSON
	// object with a string "text" field.
	ErrInvalidPayload = errors.New("invalid beep payload")

	// ErrTextTooLong is returned when a text exceeds the configured length cap.
	ErrTextTooLong = errors.New("beep text too long")
)
