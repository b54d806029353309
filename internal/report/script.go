package report

// Script tags a string with the writing system it should be rendered in.
// Classification is per field: any Arabic-range code point routes the whole
// field to Arabic-font, right-to-left rendering, else it renders Latin,
// left-to-right.
type Script int

const (
	ScriptLatin Script = iota
	ScriptArabic
)

// RTL reports whether the script is laid out right-to-left.
func (s Script) RTL() bool { return s == ScriptArabic }

// Align returns the gofpdf alignment tag for the script.
func (s Script) Align() string {
	if s == ScriptArabic {
		return "R"
	}
	return "L"
}

// DetectScript classifies one text field.
func DetectScript(text string) Script {
	for _, r := range text {
		if isArabicRune(r) {
			return ScriptArabic
		}
	}
	return ScriptLatin
}

// isArabicRune covers the Arabic block plus its supplement, extended, and
// presentation-form ranges.
func isArabicRune(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF:
		return true
	case r >= 0x0750 && r <= 0x077F:
		return true
	case r >= 0x08A0 && r <= 0x08FF:
		return true
	case r >= 0xFB50 && r <= 0xFDFF:
		return true
	case r >= 0xFE70 && r <= 0xFEFF:
		return true
	}
	return false
}
