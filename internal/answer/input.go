package answer

// InputMode describes which keys an answer field should accept.
type InputMode int

const (
	ModeText    InputMode = iota // Any printable text
	ModeNumeric                  // Digits plus ". / -"
)

// InputModeFor returns the input mode for a question type. The question
// type only drives input affordances; it never changes validation.
func InputModeFor(questionType string) InputMode {
	switch questionType {
	case "numeric", "fraction":
		return ModeNumeric
	default:
		return ModeText
	}
}

// Accepts reports whether r may be typed in this mode.
func (m InputMode) Accepts(r rune) bool {
	if m != ModeNumeric {
		return true
	}
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '.', r == '/', r == '-':
		return true
	}
	return false
}
