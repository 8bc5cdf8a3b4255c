package extract

// Difficulty is the estimated skill level of a recipe. It is always one of
// the three enumerated values, never empty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Ingredient is one structured (item, amount, unit) triple. Amount keeps the
// original textual quantity ("3", "1,5", "1/2", "Yarım") so fractional and
// word forms round-trip unchanged.
type Ingredient struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
	Unit   string `json:"unit,omitempty"`
}

// Step is one instruction in presentation order. Duration and Tip are
// annotations: substrings of Text, never removed from it. IngredientsUsed is
// only populated by extractors that can attribute ingredients to steps (the
// AI path); the heuristic engine leaves it nil.
type Step struct {
	Order           int      `json:"order"`
	Text            string   `json:"text"`
	IngredientsUsed []string `json:"ingredients_used,omitempty"`
	Duration        string   `json:"duration,omitempty"`
	Tip             string   `json:"tip,omitempty"`
}

// Recipe is the immutable structured result of one extraction. It carries no
// identity beyond its content; platform, author and URL fields are attached
// by the caller, outside this package.
//
// Hashtags is nil (not an empty slice) when the caption contains no #word
// token, distinguishing "no hashtags" from "not computed".
type Recipe struct {
	Title         string       `json:"title"`
	Difficulty    Difficulty   `json:"difficulty"`
	Servings      string       `json:"servings,omitempty"`
	TotalDuration string       `json:"total_duration,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []Step       `json:"steps"`
	Hashtags      []string     `json:"hashtags,omitempty"`
}
