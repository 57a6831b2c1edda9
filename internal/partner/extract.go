package partner

import (
	"regexp"
)

// extractionPatterns scan free-text error content for the partner
// identifier an API refused to tell us properly. Order is load-bearing:
// phrase-anchored patterns run before the bare numeric fallback so an
// unrelated number in the error body is only picked up as a last resort.
var extractionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"partnerId", regexp.MustCompile(`(?i)partnerid["'\s:=]*([0-9]{6,10})\b`)},
	{"partner_id", regexp.MustCompile(`(?i)partner[_ ]id["'\s:=]*([0-9]{6,10})\b`)},
	{"partner program id", regexp.MustCompile(`(?i)AI Cloud Partner Program ID[^0-9]*([0-9]{6,10})\b`)},
	{"associated partnerid", regexp.MustCompile(`(?i)associated partnerid[^0-9]*([0-9]{6,10})\b`)},
	{"already linked", regexp.MustCompile(`(?i)already linked[^0-9]*([0-9]{6,10})\b`)},
	{"existing partner", regexp.MustCompile(`(?i)existing partner[^0-9]*([0-9]{6,10})\b`)},
	{"current partner", regexp.MustCompile(`(?i)current partner[^0-9]*([0-9]{6,10})\b`)},
	{"conflict", regexp.MustCompile(`(?i)conflict[^0-9]*([0-9]{6,10})\b`)},
	{"management partner", regexp.MustCompile(`(?i)management partner[^0-9]*([0-9]{6,10})\b`)},
	{"partner", regexp.MustCompile(`(?i)partner[^0-9]*([0-9]{6,10})\b`)},
	// Last resort: any bare 6-10 digit run. Low confidence; can match
	// unrelated numeric content.
	{"bare number", regexp.MustCompile(`\b([0-9]{6,10})\b`)},
}

// extractPartnerID scans error text for a 6-10 digit partner identifier
// using the pattern cascade. Returns the identifier, the name of the
// pattern that matched, and whether anything matched.
func extractPartnerID(text string) (id, pattern string, ok bool) {
	for _, p := range extractionPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if ValidatePartnerID(m[1]) {
			return m[1], p.name, true
		}
	}
	return "", "", false
}
