package validation

// Status is the terminal classification of a sampling block. Every block
// starts Untested and ends in exactly one of the other states; it never
// transitions again afterwards.
type Status int

const (
	// StatusUntested is the initial state, only ever visible if a run
	// aborts before reaching the block.
	StatusUntested Status = iota
	// StatusValidated means the written payload came back unchanged.
	StatusValidated
	// StatusNoStorage means the readback differed from the payload: the
	// medium did not durably hold what was written, the signature of a
	// counterfeit or firmware-inflated drive.
	StatusNoStorage
	// StatusIOError means the read or write call itself failed.
	StatusIOError
	// StatusReadOK is the read-only mode result for a readable block.
	// With no ground truth to compare against it proves reachability,
	// not storage, and never counts toward the validated size.
	StatusReadOK
)

func (s Status) String() string {
	switch s {
	case StatusUntested:
		return "untested"
	case StatusValidated:
		return "validated"
	case StatusNoStorage:
		return "no-storage"
	case StatusIOError:
		return "io-error"
	case StatusReadOK:
		return "read-ok"
	default:
		return "unknown"
	}
}
