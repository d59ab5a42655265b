package vendors

import (
	"strings"
	"unicode"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Rule maps a keyword to a category. A keyword matches any word of the input
// that starts with it; a Whole rule only matches the word itself or its plural,
// so "suit" leaves "Suite" alone.
type Rule struct {
	Keyword  string
	Category enums.VendorCategory
	Whole    bool
}

func (r Rule) matches(word string) bool {
	if !r.Whole {
		return strings.HasPrefix(word, r.Keyword)
	}
	return word == r.Keyword || word == r.Keyword+"s" || word == r.Keyword+"es"
}

// Rules are evaluated in order; the first match wins.
var Rules = []Rule{
	{"photo", enums.VendorCategoryPhotography, false},
	{"video", enums.VendorCategoryVideography, false},
	{"film", enums.VendorCategoryVideography, true},
	{"filmmak", enums.VendorCategoryVideography, false},
	{"cinema", enums.VendorCategoryVideography, false},
	{"floral", enums.VendorCategoryFlorist, false},
	{"florist", enums.VendorCategoryFlorist, false},
	{"flower", enums.VendorCategoryFlorist, false},
	{"bloom", enums.VendorCategoryFlorist, false},
	{"bouquet", enums.VendorCategoryFlorist, false},
	{"decor", enums.VendorCategoryFlorist, false},
	{"cake", enums.VendorCategoryCake, false},
	{"baker", enums.VendorCategoryCake, false},
	{"dessert", enums.VendorCategoryCake, false},
	{"pastr", enums.VendorCategoryCake, false},
	{"cater", enums.VendorCategoryCatering, false},
	{"chef", enums.VendorCategoryCatering, false},
	{"food", enums.VendorCategoryCatering, false},
	{"kitchen", enums.VendorCategoryCatering, false},
	{"dj", enums.VendorCategoryMusic, true},
	{"band", enums.VendorCategoryMusic, true},
	{"music", enums.VendorCategoryMusic, false},
	{"orchestra", enums.VendorCategoryMusic, false},
	{"quartet", enums.VendorCategoryMusic, false},
	{"entertain", enums.VendorCategoryMusic, false},
	{"hair", enums.VendorCategoryBeauty, false},
	{"makeup", enums.VendorCategoryBeauty, false},
	{"beauty", enums.VendorCategoryBeauty, false},
	{"salon", enums.VendorCategoryBeauty, false},
	{"glam", enums.VendorCategoryBeauty, false},
	{"dress", enums.VendorCategoryAttire, false},
	{"gown", enums.VendorCategoryAttire, false},
	{"bridal", enums.VendorCategoryAttire, false},
	{"tux", enums.VendorCategoryAttire, false},
	{"suit", enums.VendorCategoryAttire, true},
	{"attire", enums.VendorCategoryAttire, false},
	{"invit", enums.VendorCategoryStationery, false},
	{"stationer", enums.VendorCategoryStationery, false},
	{"paper", enums.VendorCategoryStationery, false},
	{"calligraph", enums.VendorCategoryStationery, false},
	{"limo", enums.VendorCategoryTransportation, false},
	{"shuttle", enums.VendorCategoryTransportation, false},
	{"transport", enums.VendorCategoryTransportation, false},
	{"coach", enums.VendorCategoryTransportation, true},
	{"officiant", enums.VendorCategoryOfficiant, false},
	{"celebrant", enums.VendorCategoryOfficiant, false},
	{"minister", enums.VendorCategoryOfficiant, false},
	{"pastor", enums.VendorCategoryOfficiant, false},
	{"rental", enums.VendorCategoryRentals, false},
	{"tent", enums.VendorCategoryRentals, true},
	{"linen", enums.VendorCategoryRentals, false},
	{"venue", enums.VendorCategoryVenue, false},
	{"hall", enums.VendorCategoryVenue, true},
	{"ballroom", enums.VendorCategoryVenue, false},
	{"estate", enums.VendorCategoryVenue, false},
	{"manor", enums.VendorCategoryVenue, false},
	{"vineyard", enums.VendorCategoryVenue, false},
	{"winery", enums.VendorCategoryVenue, false},
	{"resort", enums.VendorCategoryVenue, false},
	{"chapel", enums.VendorCategoryVenue, false},
	{"barn", enums.VendorCategoryVenue, true},
}

// Classify returns the category of the first rule matching text, or other.
func Classify(text string) enums.VendorCategory {
	return classifyWith(Rules, text)
}

func classifyWith(rules []Rule, text string) enums.VendorCategory {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, rule := range rules {
		for _, word := range words {
			if rule.matches(word) {
				return rule.Category
			}
		}
	}
	return enums.VendorCategoryOther
}
