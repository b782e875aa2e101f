package container

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "container: " + string(e) }

var errSizeMismatch = Error("packed buffer has the wrong length")
