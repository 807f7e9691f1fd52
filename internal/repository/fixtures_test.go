package repository

import "github.com/guttosm/grind-calculator/internal/domain/model"

// testCatalogSeed is a small catalog shared by the backend tests.
func testCatalogSeed() CatalogSeed {
	return CatalogSeed{
		Categories: []model.Category{
			{ID: 3, Name: "Split"},
			{ID: 1, Name: "Grind"},
			{ID: 9, Name: "Zand"},
		},
		Products: []model.Product{
			{
				ID:             7,
				Name:           "Grind 8-16",
				Type:           model.ProductTypeVariable,
				CategoryIDs:    []int{1},
				LayerThickness: 4,
				Variations: []model.Variation{
					{ID: 11, Format: "8-16-mm", Quantity: "800-kg-0-5m3", BagType: "bigbag"},
					{ID: 12, Format: "8-16-mm", Quantity: "1500-kg", WeightPerBag: 1500, VolumePerBag: 1.2},
				},
			},
			{
				ID:          5,
				Name:        "Split 0-32",
				Type:        model.ProductTypeVariable,
				CategoryIDs: []int{1, 3},
				Variations: []model.Variation{
					{ID: 21, Quantity: "1000-kg"},
				},
			},
			{
				ID:          8,
				Name:        "Zand los",
				Type:        "simple",
				CategoryIDs: []int{9},
			},
		},
		Terms: []model.AttributeTerm{
			{Taxonomy: model.TaxonomyFormat, Slug: "8-16-mm", Name: "8-16 mm"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "800-kg-0-5m3", Name: "800 kg (0,5m3)"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "1500-kg", Name: "1500 kg"},
		},
	}
}
