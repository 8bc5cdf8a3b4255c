package extract

import (
	"reflect"
	"testing"
)

func TestExtractIngredientsTurkish(t *testing.T) {
	e := NewEngine(Turkish())

	tests := []struct {
		line string
		want []Ingredient
	}{
		{"3 yumurta", []Ingredient{{Item: "yumurta", Amount: "3"}}},
		{"1 su bardağı şeker", []Ingredient{{Item: "şeker", Amount: "1", Unit: "su bardağı"}}},
		{"2 yemek kaşığı kakao", []Ingredient{{Item: "kakao", Amount: "2", Unit: "yemek kaşığı"}}},
		{"1,5 kg kıyma", []Ingredient{{Item: "kıyma", Amount: "1,5", Unit: "kg"}}},
		{"250 gr tereyağı", []Ingredient{{Item: "tereyağı", Amount: "250", Unit: "gr"}}},
		{"1/2 su bardağı fındık", []Ingredient{{Item: "fındık", Amount: "1/2", Unit: "su bardağı"}}},
		{"Yarım su bardağı süt", []Ingredient{{Item: "süt", Amount: "Yarım", Unit: "su bardağı"}}},
		{"Bir tutam tuz", []Ingredient{{Item: "tuz", Amount: "Bir", Unit: "tutam"}}},
		// Leading filler words are stripped from the item.
		{"3 adet tane tane yumurta", []Ingredient{{Item: "tane yumurta", Amount: "3", Unit: "adet"}}},
		{"2 tane muz", []Ingredient{{Item: "muz", Amount: "2"}}},
		// No template match: skipped, not an error.
		{"tuzu da ekleyin", nil},
		{"Malzemeler:", nil},
		// Item collapses to <= 2 runes: dropped.
		{"1 su bardağı un", nil},
		{"2 adet su", nil},
	}

	for _, tt := range tests {
		got := e.extractIngredients([]string{tt.line})
		if len(tt.want) == 0 {
			if len(got) != 0 {
				t.Errorf("extractIngredients(%q) = %+v; want none", tt.line, got)
			}
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("extractIngredients(%q) = %+v; want %+v", tt.line, got, tt.want)
		}
	}
}

func TestExtractIngredientsEnglish(t *testing.T) {
	e := NewEngine(English())

	tests := []struct {
		line string
		want Ingredient
	}{
		{"3 eggs", Ingredient{Item: "eggs", Amount: "3"}},
		{"1 cup sugar", Ingredient{Item: "sugar", Amount: "1", Unit: "cup"}},
		{"2 cups of flour", Ingredient{Item: "flour", Amount: "2", Unit: "cups"}},
		{"1/2 teaspoon salt", Ingredient{Item: "salt", Amount: "1/2", Unit: "teaspoon"}},
		{"Half cup milk", Ingredient{Item: "milk", Amount: "Half", Unit: "cup"}},
		{"2 cloves garlic", Ingredient{Item: "garlic", Amount: "2", Unit: "cloves"}},
	}

	for _, tt := range tests {
		got := e.extractIngredients([]string{tt.line})
		if len(got) != 1 || !reflect.DeepEqual(got[0], tt.want) {
			t.Errorf("extractIngredients(%q) = %+v; want [%+v]", tt.line, got, tt.want)
		}
	}
}

func TestQuantityTemplateOrderIsFixed(t *testing.T) {
	e := NewEngine(Turkish())

	// The fraction template must win over the numeric one, otherwise the
	// numeric amount pattern consumes the "1" and corrupts the item.
	m, ok := e.matchQuantity("1/2 su bardağı fındık")
	if !ok {
		t.Fatal("expected a template match")
	}
	if m.template != "fraction" {
		t.Errorf("template = %q; want fraction", m.template)
	}
	if m.amount != "1/2" {
		t.Errorf("amount = %q; want 1/2", m.amount)
	}

	// First match wins: once the numeric template succeeds the word
	// template is never consulted.
	m, ok = e.matchQuantity("2 su bardağı süt")
	if !ok || m.template != "numeric" {
		t.Errorf("template = %q, ok=%v; want numeric", m.template, ok)
	}
}

func TestExtractIngredientsIsPermissive(t *testing.T) {
	// Lines are scanned even when the classifier would not have routed
	// them as quantity lines (no unit present).
	e := NewEngine(Turkish())
	if got := e.Classify("3 yumurta"); got == ClassQuantity {
		t.Fatalf("precondition: %v", got)
	}
	got := e.extractIngredients([]string{"3 yumurta"})
	if len(got) != 1 || got[0].Item != "yumurta" {
		t.Errorf("extractIngredients = %+v; want the unitless line matched", got)
	}
}

func TestMinimalLexiconSubstitution(t *testing.T) {
	lex := &Lexicon{
		Language:     "test",
		DefaultTitle: "Untitled",
		NumericUnits: []string{"cup"},
		WordNumerals: []string{"one"},
	}
	e := NewEngine(lex)

	got := e.extractIngredients([]string{"2 cup rice", "one rice bowl"})
	if len(got) != 2 {
		t.Fatalf("got %d ingredients, want 2: %+v", len(got), got)
	}
	if got[0].Unit != "cup" || got[0].Item != "rice" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Amount != "one" || got[1].Unit != "" {
		t.Errorf("got[1] = %+v", got[1])
	}
}
