package theory

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// qualityAliases is lookup data for ParseQuality: spelling variants that are
// not canonical tokens. It is not a second resolution path.
var qualityAliases = map[string]Quality{
	// Triads
	"M":          QualityMajor,
	"maj":        QualityMajor,
	"Maj":        QualityMajor,
	"ma":         QualityMajor,
	"major":      QualityMajor,
	"min":        QualityMinor,
	"mi":         QualityMinor,
	"-":          QualityMinor,
	"minor":      QualityMinor,
	"o":          QualityDiminished,
	"°":          QualityDiminished,
	"diminished": QualityDiminished,
	"+":          QualityAugmented,
	"#5":         QualityAugmented,
	"augmented":  QualityAugmented,
	"sus":        QualitySus4,
	"2sus":       QualitySus2,
	"4sus":       QualitySus4,
	"no3":        QualityPower,
	"power":      QualityPower,

	// Sixths
	"M6":     QualitySixth,
	"maj6":   QualitySixth,
	"add6":   QualitySixth,
	"min6":   QualityMinorSixth,
	"-6":     QualityMinorSixth,
	"6/9":    QualitySixNine,
	"6add9":  QualitySixNine,
	"m6/9":   QualityMinorSixNine,
	"min6/9": QualityMinorSixNine,
	"-6/9":   QualityMinorSixNine,

	// Sevenths
	"dom":            QualityDominantSeventh,
	"dom7":           QualityDominantSeventh,
	"M7":             QualityMajorSeventh,
	"Maj7":           QualityMajorSeventh,
	"MA7":            QualityMajorSeventh,
	"ma7":            QualityMajorSeventh,
	"j7":             QualityMajorSeventh,
	"Δ":              QualityMajorSeventh,
	"Δ7":             QualityMajorSeventh,
	"major7":         QualityMajorSeventh,
	"min7":           QualityMinorSeventh,
	"mi7":            QualityMinorSeventh,
	"-7":             QualityMinorSeventh,
	"minor7":         QualityMinorSeventh,
	"mM7":            QualityMinorMajorSeventh,
	"mmaj7":          QualityMinorMajorSeventh,
	"minmaj7":        QualityMinorMajorSeventh,
	"-maj7":          QualityMinorMajorSeventh,
	"-Δ7":            QualityMinorMajorSeventh,
	"mΔ7":            QualityMinorMajorSeventh,
	"o7":             QualityDiminishedSeventh,
	"°7":             QualityDiminishedSeventh,
	"diminished7":    QualityDiminishedSeventh,
	"ø":              QualityHalfDiminished,
	"ø7":             QualityHalfDiminished,
	"min7b5":         QualityHalfDiminished,
	"-7b5":           QualityHalfDiminished,
	"m7-5":           QualityHalfDiminished,
	"halfdiminished": QualityHalfDiminished,
	"7sus":           QualitySeventhSus4,
	"sus7":           QualitySeventhSus4,
	"aug7":           QualitySeventhSharpFive,
	"+7":             QualitySeventhSharpFive,
	"7+5":            QualitySeventhSharpFive,
	"7+":             QualitySeventhSharpFive,
	"7-5":            QualitySeventhFlatFive,
	"+maj7":          QualityMajorSeventhSharpFive,
	"augmaj7":        QualityMajorSeventhSharpFive,
	"maj7+5":         QualityMajorSeventhSharpFive,
	"Δ#5":            QualityMajorSeventhSharpFive,

	// Added tones
	"2":       QualityAddNine,
	"add2":    QualityAddNine,
	"minadd9": QualityMinorAddNine,
	"-add9":   QualityMinorAddNine,
	"madd2":   QualityMinorAddNine,
	"add4":    QualityAddEleven,

	// Extended
	"dom9":     QualityNinth,
	"M9":       QualityMajorNinth,
	"Δ9":       QualityMajorNinth,
	"maj79":    QualityMajorNinth,
	"min9":     QualityMinorNinth,
	"-9":       QualityMinorNinth,
	"7-9":      QualitySeventhFlatNine,
	"7+9":      QualitySeventhSharpNine,
	"9sus":     QualityNinthSus4,
	"sus9":     QualityNinthSus4,
	"dom11":    QualityEleventh,
	"min11":    QualityMinorEleventh,
	"-11":      QualityMinorEleventh,
	"7+11":     QualitySeventhSharpEleven,
	"M7#11":    QualityMajorSeventhSharpEleven,
	"Δ#11":     QualityMajorSeventhSharpEleven,
	"dom13":    QualityThirteenth,
	"M13":      QualityMajorThirteenth,
	"Δ13":      QualityMajorThirteenth,
	"min13":    QualityMinorThirteenth,
	"-13":      QualityMinorThirteenth,
	"7-13":     QualitySeventhFlatThirteen,
	"alt":      QualityAltered,
	"7#5b9#9":  QualityAltered,
	"4ths":     QualityQuartal,
	"mumajor":  QualityMu,
	"sus2sus4": QualitySus2Sus4,
	"sus4add2": QualitySus2Sus4,
}

// symbolFolder maps typographic chord symbols to their ASCII spellings and
// drops grouping characters, so "m7(♭5)" and "m7b5" read the same.
var symbolFolder = strings.NewReplacer(
	"♭", "b",
	"♯", "#",
	"−", "-",
	"△", "Δ",
	"∆", "Δ",
	"(", "",
	")", "",
	" ", "",
	",", "",
)

// foldToken canonicalizes the byte form of a token before lookup. NFKC turns
// superscripts and full-width letters into their plain forms ("⁷" -> "7").
func foldToken(token string) string {
	token = norm.NFKC.String(strings.TrimSpace(token))
	return symbolFolder.Replace(token)
}

// ParseQuality maps a textual quality token onto the closed Quality set. The
// boolean is false when the token is not recognised.
func ParseQuality(token string) (Quality, bool) {
	folded := foldToken(token)
	if q, ok := qualityByToken[folded]; ok {
		return q, true
	}
	if q, ok := qualityAliases[folded]; ok {
		return q, true
	}
	return QualityMajor, false
}

// NormalizeQualityToken returns the canonical token for a spelling variant
// ("min7" -> "m7"). Unknown tokens come back trimmed but otherwise unchanged.
func NormalizeQualityToken(token string) string {
	q, ok := ParseQuality(token)
	if !ok {
		return strings.TrimSpace(token)
	}
	return q.Token()
}

// AliasTokens returns every alias spelling, sorted
func AliasTokens() []string {
	out := make([]string, 0, len(qualityAliases))
	for token := range qualityAliases {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Aliases returns a copy of the alias table keyed by spelling, valued by
// canonical token.
func Aliases() map[string]string {
	out := make(map[string]string, len(qualityAliases))
	for token, q := range qualityAliases {
		out[token] = q.Token()
	}
	return out
}

// AliasesOf returns the alias spellings that parse to q, sorted
func AliasesOf(q Quality) []string {
	var out []string
	for token, target := range qualityAliases {
		if target == q {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}
