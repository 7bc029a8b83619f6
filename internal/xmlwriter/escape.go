package xmlwriter

import "strings"

// Named entities written for special characters. Each replacer works in a
// single left-to-right pass, so "&" is never escaped twice and
// Unescape(Escape(s)) == s for every s.
var (
	escaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"`", "&#x60;",
	)
	unescaper = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#x27;", "'",
		"&#x60;", "`",
	)
)

// Escape replaces &, <, >, ", ' and ` with XML entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// NormalizeCell undoes CSV quoting of a raw cell: one layer of surrounding
// double quotes is removed, then each doubled quote becomes a single one.
func NormalizeCell(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}

// CellValue prepares a raw cell for output.
func CellValue(s string) string {
	return Escape(NormalizeCell(s))
}
