package decoding

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "decoding: " + string(e) }

var (
	errLengthMismatch = Error("signal length does not match block length")

	// ErrNotConfigured is reported when Decode is called on a FastSSC
	// decoder before SetSignal has ever loaded a signal into it.
	ErrNotConfigured error = Error("decode called before SetSignal")
)
