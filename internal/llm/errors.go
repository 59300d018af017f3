package llm

import "errors"

var (
	// ErrUnavailable indicates the text-generation server is unreachable.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrNoJSON indicates the response held no complete JSON value. It is
	// always wrapped together with ErrInvalidOutput.
	ErrNoJSON = errors.New("no JSON value in response")

	// ErrShapeMismatch indicates the first top-level JSON value was an object
	// where an array was expected, or the reverse. It is always wrapped
	// together with ErrInvalidOutput.
	ErrShapeMismatch = errors.New("JSON value has the wrong shape")

	// ErrRetryExhausted indicates all attempts have failed.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrDisabled is returned by the disabled client.
	ErrDisabled = errors.New("llm disabled")
)
