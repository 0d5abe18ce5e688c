package usecase

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the rule tables the extractors and matchers run against.
// Defaults are compiled in; a deployment can override any table from a YAML
// file without a rebuild (see LoadVocabulary).
type Vocabulary struct {
	VolumeUnits []string `yaml:"volume_units"`
	WeightUnits []string `yaml:"weight_units"`
	CountUnits  []string `yaml:"count_units"`
	OtherUnits  []string `yaml:"other_units"`

	// UnitAbbreviations maps short forms to canonical unit names.
	UnitAbbreviations map[string]string `yaml:"unit_abbreviations"`

	Preparations []string `yaml:"preparations"`

	// Descriptors are adjectives stripped before retrying an exact catalog
	// match ("fresh basil" -> "basil").
	Descriptors []string `yaml:"descriptors"`

	Colors []string `yaml:"colors"`

	// CommonIngredients is the allowlist that breaks "X or Y" ties in favor of
	// the more commonly used option.
	CommonIngredients []string `yaml:"common_ingredients"`
}

// DefaultVocabulary returns the compiled-in rule tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		VolumeUnits: []string{
			"cup", "tablespoon", "teaspoon", "fluid ounce", "pint", "quart",
			"gallon", "milliliter", "liter",
		},
		WeightUnits: []string{
			"ounce", "pound", "gram", "kilogram",
		},
		CountUnits: []string{
			"clove", "slice", "piece", "can", "package", "bunch", "head",
			"stalk", "sprig", "stick", "ear",
		},
		OtherUnits: []string{
			"pinch", "dash", "handful", "knob", "splash",
		},
		UnitAbbreviations: map[string]string{
			"tbsp": "tablespoon",
			"tsp":  "teaspoon",
			"oz":   "ounce",
			"lb":   "pound",
			"g":    "gram",
			"kg":   "kilogram",
			"ml":   "milliliter",
			"l":    "liter",
		},
		Preparations: []string{
			"finely chopped", "coarsely chopped", "thinly sliced",
			"room temperature", "roughly chopped", "cut into chunks",
			"julienned", "quartered", "shredded", "softened", "crumbled",
			"squeezed", "chopped", "crushed", "drained", "grated", "melted",
			"toasted", "trimmed", "beaten", "halved", "minced", "peeled",
			"pitted", "rinsed", "sifted", "sliced", "cooked", "cubed",
			"diced", "zested",
		},
		Descriptors: []string{
			"fresh", "dried", "frozen", "canned", "raw", "ripe", "organic",
			"large", "medium", "small", "baby", "whole", "ground", "boneless",
			"skinless", "unsalted", "salted", "red", "green", "yellow",
			"white", "black", "purple", "brown", "orange",
		},
		Colors: []string{
			"red", "green", "yellow", "white", "black", "purple", "brown",
			"orange", "pink", "golden",
		},
		CommonIngredients: []string{
			"onion", "garlic", "butter", "olive oil", "vegetable oil", "salt",
			"pepper", "sugar", "flour", "egg", "milk", "water", "lemon",
			"lime", "tomato", "carrot", "celery", "potato", "rice", "chicken",
			"beef", "pork", "basil", "parsley", "cilantro", "thyme",
			"jalapeño", "jalapeno", "scallion", "ginger", "honey",
		},
	}
}

// LoadVocabulary reads rule-table overrides from a YAML file. Tables absent
// from the file keep their compiled-in defaults.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse vocabulary file: %w", err)
	}

	vocab := DefaultVocabulary()
	if len(override.VolumeUnits) > 0 {
		vocab.VolumeUnits = override.VolumeUnits
	}
	if len(override.WeightUnits) > 0 {
		vocab.WeightUnits = override.WeightUnits
	}
	if len(override.CountUnits) > 0 {
		vocab.CountUnits = override.CountUnits
	}
	if len(override.OtherUnits) > 0 {
		vocab.OtherUnits = override.OtherUnits
	}
	if len(override.UnitAbbreviations) > 0 {
		vocab.UnitAbbreviations = override.UnitAbbreviations
	}
	if len(override.Preparations) > 0 {
		vocab.Preparations = override.Preparations
	}
	if len(override.Descriptors) > 0 {
		vocab.Descriptors = override.Descriptors
	}
	if len(override.Colors) > 0 {
		vocab.Colors = override.Colors
	}
	if len(override.CommonIngredients) > 0 {
		vocab.CommonIngredients = override.CommonIngredients
	}

	return vocab, nil
}

// allUnits returns every unit name across the four unit vocabularies.
func (v *Vocabulary) allUnits() []string {
	units := make([]string, 0, len(v.VolumeUnits)+len(v.WeightUnits)+len(v.CountUnits)+len(v.OtherUnits))
	units = append(units, v.VolumeUnits...)
	units = append(units, v.WeightUnits...)
	units = append(units, v.CountUnits...)
	units = append(units, v.OtherUnits...)
	return units
}
