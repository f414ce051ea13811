package parser

import "strings"

// measureKind classifies an ingredient measure token.
type measureKind int

const (
	measureInvalid measureKind = iota
	measureDry
	measureWet
	measureUnspecified
)

// Measure vocabularies, verbatim from
// original_source/src/Parser/CheffeParser.h's ValidDryMeasures /
// ValidWetMeasures / ValidUnspecifiedMeasures (spec §4.2).
var (
	dryMeasures = map[string]bool{
		"g": true, "kg": true, "pinch": true, "pinches": true,
	}
	wetMeasures = map[string]bool{
		"ml": true, "l": true, "dash": true, "dashes": true,
	}
	unspecifiedMeasures = map[string]bool{
		"cup": true, "cups": true,
		"teaspoon": true, "teaspoons": true,
		"tablespoon": true, "tablespoons": true,
	}
	// measureSingular/measurePlural back each other up for the
	// plurality check (spec §4.2: "if integer is 1 ... measure must be
	// singular; otherwise plural").
	measureSingular = map[string]bool{
		"g": true, "kg": true, "pinch": true,
		"ml": true, "l": true, "dash": true,
		"cup": true, "teaspoon": true, "tablespoon": true,
	}
	measurePlural = map[string]bool{
		"g": true, "kg": true, "pinches": true,
		"ml": true, "l": true, "dashes": true,
		"cups": true, "teaspoons": true, "tablespoons": true,
	}
)

func classifyMeasure(word string) measureKind {
	switch {
	case dryMeasures[word]:
		return measureDry
	case wetMeasures[word]:
		return measureWet
	case unspecifiedMeasures[word]:
		return measureUnspecified
	default:
		return measureInvalid
	}
}

// measureTypes forces Dry and requires a subsequent dry-or-unspecified
// measure (spec §4.2's "heaped"/"level").
var measureTypes = map[string]bool{"heaped": true, "level": true}

// timeUnits backs the Cooking time header's plurality check.
var timeUnits = map[string][2]string{
	"hour":   {"hour", "hours"},
	"hours":  {"hour", "hours"},
	"minute": {"minute", "minutes"},
	"minutes": {"minute", "minutes"},
}

func isValidTimeUnit(word string) bool {
	_, ok := timeUnits[word]
	return ok
}

func timeUnitIsSingular(word string) bool {
	pair, ok := timeUnits[word]
	return ok && word == pair[0]
}

// methodKeywords are the leading identifiers of a non-loop method
// statement, verbatim from ValidMethodSteps (spec §4.2), including both
// the canonical "Liquefy" and the source's alternate "Liquify" spelling
// (spec.md §9 design notes: "implementers SHOULD accept both spellings
// on input").
var methodKeywords = map[string]bool{
	"Take": true, "Put": true, "Fold": true, "Add": true,
	"Remove": true, "Combine": true, "Divide": true,
	"Liquefy": true, "Liquify": true,
	"Stir": true, "Mix": true, "Clean": true, "Pour": true,
	"Set": true, "Serve": true, "Refrigerate": true,
}

// verbPairs is the closed table of irregular present/past-participle
// pairs, verbatim from ValidVerbKeywords (spec §4.2's closed table of
// known pairs).
var verbPairs = map[string]string{
	"Sift": "Sifted", "Rub": "Rubbed", "Melt": "Melted",
	"Caramelise": "Caramelised", "Cook": "Cooked", "Chop": "Chopped",
	"Bake": "Baked", "Roast": "Roasted", "Boil": "Boiled",
	"Chill": "Chilled", "Fry": "Fried", "Loop": "Looped",
	"Shake": "Shaked", "Sieve": "Sieved", "Squeeze": "Squeezed",
	"Drip": "Dripped", "Drop": "Dropped", "Scoop": "Scooped",
	"Coat": "Coated", "Randomize": "Randomized", "Toss": "Tossed",
	"Infuse": "Infused", "Watch": "Watched", "Smell": "Smelled",
	"Crush": "Crushed", "Mash": "Mashed", "Grind": "Ground",
	"Shuffle": "Shuffled", "Layer": "Layered", "Prepare": "Prepared",
	"Separate": "Separated", "Sprinkle": "Sprinkled", "Move": "Moved",
	"Recite": "Recited", "Repeat": "Repeated", "Siphon": "Siphoned",
	"Gulp": "Gulped", "Quote": "Quoted", "Part": "Parted",
	"Dissolve": "Dissolved", "Agitate": "Agitated", "Cool": "Cooled",
	"Leave": "Left", "Water": "Watered", "Heat": "Heated",
}

// participleToVerb is the reverse index of verbPairs, built once.
var participleToVerb = func() map[string]string {
	m := make(map[string]string, len(verbPairs))
	for verb, part := range verbPairs {
		m[part] = verb
	}
	return m
}()

// regularParticiple applies the regular English inflection fallback
// (spec §4.2: "drop trailing e, append ed") used for any verb not in the
// closed irregular table.
func regularParticiple(verb string) string {
	if strings.HasSuffix(verb, "e") {
		return verb + "d"
	}
	return verb + "ed"
}

// participleMatches reports whether participle is the correct
// past-participle closer for verb, checking the irregular table first
// and falling back to the regular rule. The comparison is
// case-insensitive: the opening verb is sentence-initial and so always
// capitalised ("Bake the numbers."), while its closing participle
// usually isn't ("Until baked.").
func participleMatches(verb, participle string) bool {
	want := regularParticiple(verb)
	if p, ok := verbPairs[verb]; ok {
		want = p
	}
	return strings.EqualFold(want, participle)
}

// isKnownVerb reports whether word can open a verb-loop: either it is a
// key of the irregular table, or — since Chef's verb set is open per
// spec §4.2 ("matches any verb in the open verb table") — any identifier
// not already claimed by the closed method-keyword vocabulary is
// accepted as a candidate verb. The parser only calls this once it has
// already ruled out methodKeywords, so in practice this always returns
// true; it exists to document and centralise that rule.
func isKnownVerb(word string) bool {
	return word != ""
}

// ordinalSuffix returns the grammatically correct ordinal suffix for n
// (spec §4.2: "11/12/13 -> th; else 1 -> st, 2 -> nd, 3 -> rd, else th").
func ordinalSuffix(n int64) string {
	if n < 0 {
		n = -n
	}
	mod100 := n % 100
	if mod100 >= 11 && mod100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
