package html

// entities maps named character references to their replacement text.
// Numeric references (&#60;) are not supported.
var entities = map[string]string{
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"amp":    "&",
	"nbsp":   "\u00a0",
	"copy":   "©",
	"reg":    "®",
	"cent":   "¢",
	"pound":  "£",
	"yen":    "¥",
	"euro":   "€",
	"ndash":  "–",
	"mdash":  "—",
	"hellip": "…",
	"laquo":  "«",
	"raquo":  "»",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"times":  "×",
	"divide": "÷",
	"deg":    "°",
	"plusmn": "±",
	"middot": "·",
	"sect":   "§",
	"para":   "¶",
	"trade":  "™",
	"bull":   "•",
}

// DecodeEntity returns the replacement for the entity name found between
// '&' and ';'. Names are case-sensitive. Unknown names report false and
// are dropped by the tokenizer.
func DecodeEntity(name string) (string, bool) {
	s, ok := entities[name]
	return s, ok
}
