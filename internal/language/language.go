package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the ISO 639-2 code for an unknown language.
const Undetermined = "und"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"cs", "ces", "cze", "Czech", []string{"czech"}},
	{"el", "ell", "gre", "Greek", []string{"greek"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

func clean(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	// "en-US" and "eng_US" style tags carry the language first.
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}

// parseBase resolves codes outside the built-in table through x/text.
func parseBase(code string) (xlanguage.Base, bool) {
	if len(code) < 2 || len(code) > 3 {
		return xlanguage.Base{}, false
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return xlanguage.Base{}, false
	}
	if base.String() == Undetermined {
		return xlanguage.Base{}, false
	}
	return base, true
}

// ToISO2 converts any recognized language code or word to ISO 639-1.
// Unknown input yields an empty string; unknown 2-letter codes pass through.
func ToISO2(code string) string {
	code = clean(code)
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if base, ok := parseBase(code); ok {
		if short := base.String(); len(short) == 2 {
			return short
		}
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// ToISO3 converts any recognized language code to ISO 639-2.
// Returns "und" for empty or unrecognized 2-letter input and passes
// unrecognized 3-letter codes through.
func ToISO3(code string) string {
	code = clean(code)
	if code == "" {
		return Undetermined
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if base, ok := parseBase(code); ok {
		return base.ISO3()
	}
	if len(code) == 3 {
		return code
	}
	return Undetermined
}

// Matches reports whether two codes name the same identifiable language.
func Matches(a, b string) bool {
	left, right := ToISO3(a), ToISO3(b)
	return left != Undetermined && left == right
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	cleaned := clean(code)
	if cleaned == "" || cleaned == Undetermined {
		return "Unknown"
	}
	if e := lookup(cleaned); e != nil {
		return e.display
	}
	if base, ok := parseBase(cleaned); ok {
		if name := display.English.Languages().Name(base); name != "" {
			return name
		}
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
