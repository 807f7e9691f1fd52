package service

import (
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/repository"
)

// testSeed is a small catalog with parseable quantity labels.
//
//	7 Grind 8-16  formats 8-16-mm (800 kg, 1500 kg) and 16-32-mm (1000 kg), 4 cm
//	5 Split 0-32  no formats, 25 kg bags
//	9 Leem        only unparseable quantities
//	8 Zand los    simple product
func testSeed() repository.CatalogSeed {
	return repository.CatalogSeed{
		Categories: []model.Category{
			{ID: 3, Name: "split"},
			{ID: 1, Name: "Grind", Description: "Grind in bigbags"},
			{ID: 9, Name: "Zand"},
			{ID: 4, Name: "Aarde"},
		},
		Products: []model.Product{
			{
				ID:             7,
				Name:           "Grind 8-16",
				Type:           model.ProductTypeVariable,
				CategoryIDs:    []int{1},
				LayerThickness: 4,
				Variations: []model.Variation{
					{ID: 11, Format: "8-16-mm", Quantity: "800-kg-bigbag-0-5m3"},
					{ID: 12, Format: "8-16-mm", Quantity: "1500-kg-bigbag-1m3"},
					{ID: 13, Format: "16-32-mm", Quantity: "1000-kg-bigbag-1m3"},
					{ID: 14, Format: "8-16-mm", Quantity: "los-gestort"},
					{ID: 15, Format: "8-16-mm", Quantity: "800-kg-bigbag-0-5m3"},
				},
			},
			{
				ID:          5,
				Name:        "Split 0-32",
				Type:        model.ProductTypeVariable,
				CategoryIDs: []int{1, 3},
				Variations: []model.Variation{
					{ID: 21, Quantity: "25-kg-zak-0-016m3"},
					{ID: 22, Quantity: ""},
					{ID: 0, Quantity: "1000-kg-bigbag-1m3"},
				},
			},
			{
				ID:          9,
				Name:        "Leem",
				Type:        model.ProductTypeVariable,
				CategoryIDs: []int{4},
				Variations: []model.Variation{
					{ID: 31, Quantity: "los-gestort"},
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
			{Taxonomy: model.TaxonomyFormat, Slug: "16-32-mm", Name: "16-32 mm"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "800-kg-bigbag-0-5m3", Name: "800 kg Bigbag 0,5m3"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "1500-kg-bigbag-1m3", Name: "1500 kg Bigbag 1m3"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "1000-kg-bigbag-1m3", Name: "1000 kg Bigbag 1m3"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "25-kg-zak-0-016m3", Name: "25 kg Zak 0,016m3"},
		},
	}
}

func newTestCatalogService() *CatalogServiceImpl {
	return NewCatalogService(
		repository.NewMemoryCatalogRepository(testSeed()),
		NewSettingsService(nil, model.Settings{DefaultLayerThickness: 5}),
	)
}
