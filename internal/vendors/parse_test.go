package vendors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

func TestParseListSplitsHintedAndBareEntries(t *testing.T) {
	entries := ParseList("Photography: Lens & Light,  Sweet Tooth Bakery , Venue:  The  Grand Hall")
	require.Len(t, entries, 3)

	assert.Equal(t, "Photography", entries[0].Hint)
	assert.Equal(t, "Lens & Light", entries[0].Name)
	assert.Equal(t, "", entries[1].Hint)
	assert.Equal(t, "Sweet Tooth Bakery", entries[1].Name)
	assert.Equal(t, "The Grand Hall", entries[2].Name)
}

func TestParseListSkipsBlanksAndDuplicates(t *testing.T) {
	entries := ParseList(" , DJ Nova,\n dj nova ,Florist: ,,")
	require.Len(t, entries, 1)
	assert.Equal(t, "DJ Nova", entries[0].Name)
}

func TestParseListEmpty(t *testing.T) {
	assert.Empty(t, ParseList(""))
	assert.Empty(t, ParseList("  ,  "))
}

func TestEntryCategoryUsesHintAndName(t *testing.T) {
	assert.Equal(t, enums.VendorCategoryPhotography, Entry{Hint: "Photography", Name: "Lens & Light"}.Category())
	assert.Equal(t, enums.VendorCategoryCake, Entry{Name: "Sweet Tooth Bakery"}.Category())
	assert.Equal(t, enums.VendorCategoryOther, Entry{Name: "Acme Holdings"}.Category())
}

func TestEntryHintOutranksKeywordsInName(t *testing.T) {
	cases := []struct {
		raw  string
		want enums.VendorCategory
	}{
		{"Catering: Flower Street Kitchen", enums.VendorCategoryCatering},
		{"Music: Photo Booth Band", enums.VendorCategoryMusic},
		{"Florist: Filmore Florals", enums.VendorCategoryFlorist},
		{"Venue: Tentative Gardens Suite", enums.VendorCategoryVenue},
		{"Flowers & Decor: Lens House", enums.VendorCategoryFlorist},
		{"Hair & Makeup: Studio Photo Glam", enums.VendorCategoryBeauty},
		// a hint that names no category defers to the name
		{"Misc: Sweet Tooth Bakery", enums.VendorCategoryCake},
		{"Other: DJ Nova", enums.VendorCategoryMusic},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			entries := ParseList(tc.raw)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.want, entries[0].Category())
		})
	}
}
