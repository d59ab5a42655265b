package budget

import "github.com/shopspring/decimal"

const (
	WeddingTypeTraditional = "traditional"
	WeddingTypeDestination = "destination"
	WeddingTypeIntimate    = "intimate"
	WeddingTypeLuxury      = "luxury"

	templateVersion = 1
)

func line(category, segment, item string, pct int64) Line {
	return Line{Category: category, Segment: segment, Item: item, Percentage: decimal.NewFromInt(pct)}
}

func defaultTemplates() []Template {
	return []Template{
		{
			WeddingType: WeddingTypeTraditional,
			Version:     templateVersion,
			Lines: []Line{
				line("Venue", "Reception", "Venue rental", 30),
				line("Catering", "Reception", "Food & beverage", 25),
				line("Photography", "Ceremony & Reception", "Photographer", 10),
				line("Attire", "Couple", "Wedding attire", 8),
				line("Flowers & Decor", "Ceremony & Reception", "Florals & decor", 8),
				line("Music & Entertainment", "Reception", "Band or DJ", 7),
				line("Stationery", "Pre-wedding", "Invitations & paper goods", 4),
				line("Miscellaneous", "Contingency", "Contingency fund", 8),
			},
		},
		{
			WeddingType: WeddingTypeDestination,
			Version:     templateVersion,
			Lines: []Line{
				line("Travel & Lodging", "Guests", "Room blocks & transfers", 20),
				line("Venue", "Reception", "Venue rental", 25),
				line("Catering", "Reception", "Food & beverage", 20),
				line("Photography", "Ceremony & Reception", "Photographer", 12),
				line("Attire", "Couple", "Wedding attire", 6),
				line("Flowers & Decor", "Ceremony & Reception", "Florals & decor", 6),
				line("Music & Entertainment", "Reception", "Band or DJ", 5),
				line("Miscellaneous", "Contingency", "Contingency fund", 6),
			},
		},
		{
			WeddingType: WeddingTypeIntimate,
			Version:     templateVersion,
			Lines: []Line{
				line("Venue", "Reception", "Venue rental", 25),
				line("Catering", "Reception", "Food & beverage", 30),
				line("Photography", "Ceremony & Reception", "Photographer", 15),
				line("Attire", "Couple", "Wedding attire", 10),
				line("Flowers & Decor", "Ceremony & Reception", "Florals & decor", 8),
				line("Stationery", "Pre-wedding", "Invitations & paper goods", 4),
				line("Miscellaneous", "Contingency", "Contingency fund", 8),
			},
		},
		{
			WeddingType: WeddingTypeLuxury,
			Version:     templateVersion,
			Lines: []Line{
				line("Venue", "Reception", "Venue rental", 28),
				line("Catering", "Reception", "Food & beverage", 24),
				line("Photography", "Ceremony & Reception", "Photographer", 10),
				line("Videography", "Ceremony & Reception", "Videographer", 5),
				line("Attire", "Couple", "Wedding attire", 8),
				line("Flowers & Decor", "Ceremony & Reception", "Florals & decor", 10),
				line("Music & Entertainment", "Reception", "Band or DJ", 7),
				line("Stationery", "Pre-wedding", "Invitations & paper goods", 3),
				line("Miscellaneous", "Contingency", "Contingency fund", 5),
			},
		},
	}
}
