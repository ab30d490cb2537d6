package diag

// Severity ranks a diagnostic. Only SevError makes a run fail.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var sevNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(sevNames) {
		return sevNames[s]
	}
	return "UNKNOWN"
}

// AtLeast reports whether s is as severe as min.
func (s Severity) AtLeast(min Severity) bool { return s >= min }
