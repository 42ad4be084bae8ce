package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/easeaico/moodjournal/internal/utils"
)

const (
	MaxTitleLen    = 50
	MaxNutshellLen = 150
	MaxSummaryLen  = 500
)

var (
	hexColorRE      = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	cssBackgroundRE = regexp.MustCompile(`^[A-Za-z0-9#%.,()\s-]{3,200}$`)
)

// sanitizeText keeps letters, digits, whitespace and basic punctuation,
// collapses whitespace and truncates to limit runes.
func sanitizeText(text string, limit int) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		case strings.ContainsRune(`.,!?'"():;-_`, r):
			return r
		default:
			return -1
		}
	}, text)
	return utils.Snippet(cleaned, limit)
}

// IsHexColor reports whether value is a #RRGGBB color.
func IsHexColor(value string) bool {
	return hexColorRE.MatchString(value)
}

// isSafeBackground accepts short CSS color or gradient values.
func isSafeBackground(value string) bool {
	return cssBackgroundRE.MatchString(value)
}
