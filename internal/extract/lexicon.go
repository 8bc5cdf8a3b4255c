package extract

// Lexicon holds the vocabulary tables the extraction passes run against.
// All fields are read-only after construction; an Engine compiles them into
// matchers once, so a shared Lexicon is safe for concurrent use.
//
// Tests are expected to build minimal lexicons instead of relying on the
// built-in ones.
type Lexicon struct {
	// Language is the BCP-47-ish tag used for cache keying ("tr", "en").
	Language string

	// DefaultTitle is returned when no caption line qualifies as a title.
	DefaultTitle string

	// NumericUnits are unit words accepted after a numeric amount ("3", "1,5").
	// Order matters: alternatives are tried left to right, so longer forms
	// must precede their prefixes ("gr" before "g").
	NumericUnits []string

	// WordNumerals are word-form quantities ("Yarım", "Bir", "half", "one").
	WordNumerals []string

	// WordUnits are unit words accepted after a word numeral.
	WordUnits []string

	// FractionUnits are unit words accepted after a vulgar fraction ("1/2").
	FractionUnits []string

	// Fillers are leading words stripped from an item after quantity/unit
	// removal ("adet", "tane", "of").
	Fillers []string

	// ActionVerbs distinguish instruction lines from other text. Presence is
	// checked by case-insensitive substring containment.
	ActionVerbs []string

	// Headers, HeaderPrefixes and HeaderSuffixes identify section-label lines
	// ("Malzemeler:", "For the filling") that are discarded, never emitted.
	Headers        []string
	HeaderPrefixes []string
	HeaderSuffixes []string

	// EasyWords and HardWords drive difficulty detection. Absence of both
	// vocabularies in the caption yields DifficultyMedium.
	EasyWords []string
	HardWords []string

	// ServingsWords follow a number in servings expressions ("kişilik",
	// "porsiyon", "servings"). ServingsFormat renders the canonical value,
	// with %s replaced by the matched number.
	ServingsWords  []string
	ServingsFormat string

	// DurationUnits follow a number (or "N-M" range) in step durations.
	// RestUnits cover rest/soak expressions ("2 gece", "overnight" style
	// waits) checked after the primary duration pattern.
	DurationUnits []string
	RestUnits     []string

	// MinutesWords mark the caption-wide total duration ("dakika", "minutes").
	MinutesWords []string
}

// Turkish returns the lexicon for Turkish captions. This is the vocabulary
// the parser was originally tuned on and the process-wide default.
func Turkish() *Lexicon {
	return &Lexicon{
		Language:     "tr",
		DefaultTitle: "Tarif",
		NumericUnits: []string{
			"adet", "su bardağı", "yemek kaşığı", "çay kaşığı", "tatlı kaşığı",
			"paket", "kg", "gr", "g", "ml", "lt", "l",
		},
		WordNumerals: []string{"Yarım", "Bir", "İki", "Üç", "Dört", "Beş"},
		WordUnits: []string{
			"su bardağı", "yemek kaşığı", "çay kaşığı", "paket", "avuç", "tutam",
		},
		FractionUnits: []string{"su bardağı", "yemek kaşığı", "çay kaşığı", "paket"},
		Fillers:       []string{"adet", "tane"},
		ActionVerbs: []string{
			"karıştır", "ekle", "dök", "pişir", "çırp", "ısıt", "doğra",
			"ren", "kes", "yoğur", "beklet", "dinlendir", "al", "koy",
			"ilave", "hazırla", "yıka", "temizle", "soy", "dilimle",
			"kavur", "haşla", "kaynat", "kızart", "servis", "süsle",
			"tat", "kontrol", "çevir", "karış", "yap", "oluştur",
		},
		Headers: []string{
			"malzemeler", "içindekiler", "gerekenler", "malzeme listesi",
			"yapılışı", "hazırlanışı",
		},
		HeaderSuffixes: []string{" için"},
		EasyWords:      []string{"kolay", "basit", "pratik"},
		HardWords:      []string{"zor", "profesyonel", "ileri"},
		ServingsWords:  []string{"kişilik", "porsiyon", "servis"},
		ServingsFormat: "%s kişilik",
		DurationUnits:  []string{"dakika", "saat", "saniye"},
		RestUnits:      []string{"gece", "saat"},
		MinutesWords:   []string{"dakika"},
	}
}

// English returns the lexicon for English captions.
func English() *Lexicon {
	return &Lexicon{
		Language:     "en",
		DefaultTitle: "Recipe",
		NumericUnits: []string{
			"cups", "cup", "tablespoons", "tablespoon", "tbsp", "teaspoons",
			"teaspoon", "tsp", "packets", "packet", "packs", "pack", "cloves",
			"clove", "slices", "slice", "cans", "can", "ounces", "ounce", "oz",
			"pounds", "pound", "lbs", "lb", "grams", "gram", "kg", "ml",
			"liters", "liter", "l", "g",
		},
		WordNumerals: []string{"Half", "One", "Two", "Three", "Four", "Five"},
		WordUnits: []string{
			"cups", "cup", "tablespoons", "tablespoon", "teaspoons", "teaspoon",
			"packets", "packet", "handfuls", "handful", "pinches", "pinch",
		},
		FractionUnits: []string{"cups", "cup", "tablespoons", "tablespoon", "teaspoons", "teaspoon", "packets", "packet"},
		Fillers:       []string{"of", "pieces", "piece"},
		ActionVerbs: []string{
			"mix", "add", "pour", "cook", "whisk", "heat", "chop", "grate",
			"cut", "knead", "rest", "take", "put", "prepare", "wash", "clean",
			"peel", "slice", "dice", "saute", "boil", "simmer", "fry", "bake",
			"roast", "serve", "garnish", "taste", "check", "flip", "stir",
			"combine", "blend", "preheat", "drain", "season", "fold",
		},
		Headers: []string{
			"ingredients", "instructions", "directions", "method", "steps",
			"what you need", "you will need",
		},
		HeaderPrefixes: []string{"for the "},
		EasyWords:      []string{"easy", "simple", "quick", "beginner"},
		HardWords:      []string{"hard", "difficult", "professional", "advanced"},
		ServingsWords:  []string{"servings", "serving", "portions", "portion", "people"},
		ServingsFormat: "serves %s",
		DurationUnits:  []string{"minutes", "minute", "mins", "min", "hours", "hour", "seconds", "second"},
		RestUnits:      []string{"nights", "night", "hours", "hour"},
		MinutesWords:   []string{"minutes", "minute", "mins", "min"},
	}
}

// ForLanguage returns the built-in lexicon for a language tag, falling back
// to Turkish for unknown tags so extraction stays total.
func ForLanguage(lang string) *Lexicon {
	switch lang {
	case "en":
		return English()
	default:
		return Turkish()
	}
}
