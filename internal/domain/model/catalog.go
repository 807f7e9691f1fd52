package model

// Attribute taxonomies used by catalog variations.
const (
	TaxonomyFormat   = "pa_formaat"
	TaxonomyQuantity = "pa_hoeveelheid"
)

// ProductTypeVariable marks products that carry variations.
const ProductTypeVariable = "variable"

// Category groups products in the wizard.
//
// @Description Product category
type Category struct {
	ID          int    `bson:"_id" json:"id" example:"12"`
	Name        string `bson:"name" json:"name" example:"Grind"`
	Description string `bson:"description,omitempty" json:"description"`
	Image       string `bson:"image,omitempty" json:"image"`
}

// Variation is one purchasable combination of a variable product.
// Format and Quantity hold the raw attribute values (usually term slugs).
// The structured packaging fields are optional.
type Variation struct {
	ID           int     `bson:"id" json:"variation_id"`
	Format       string  `bson:"format,omitempty" json:"format"`
	Quantity     string  `bson:"quantity" json:"quantity"`
	BagType      string  `bson:"bag_type,omitempty" json:"bag_type,omitempty"`
	WeightPerBag float64 `bson:"weight_per_bag,omitempty" json:"weight_per_bag,omitempty"`
	VolumePerBag float64 `bson:"volume_per_bag,omitempty" json:"volume_per_bag,omitempty"`
}

// Product is a catalog product.
type Product struct {
	ID          int    `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description"`
	Image       string `bson:"image,omitempty" json:"image"`
	Type        string `bson:"type" json:"type"`
	CategoryIDs []int  `bson:"category_ids" json:"category_ids"`
	// LayerThickness is the product specific layer thickness in cm; zero when unset.
	LayerThickness float64     `bson:"layer_thickness,omitempty" json:"layer_thickness,omitempty"`
	Variations     []Variation `bson:"variations" json:"variations"`
}

// IsVariable reports whether the product carries variations.
func (p *Product) IsVariable() bool {
	return p != nil && p.Type == ProductTypeVariable
}

// InCategory reports whether the product belongs to the category.
func (p *Product) InCategory(id int) bool {
	for _, c := range p.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}

// AttributeTerm maps an attribute slug to its display name.
type AttributeTerm struct {
	Taxonomy string `bson:"taxonomy" json:"taxonomy"`
	Slug     string `bson:"slug" json:"slug"`
	Name     string `bson:"name" json:"name"`
}

// ProductSummary is the product shape exposed to the wizard.
//
// @Description Product entry in the wizard catalog
type ProductSummary struct {
	ID          int    `json:"id" example:"42"`
	Name        string `json:"name" example:"Split 8-16"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// WizardCatalog lists the categories and their variable products.
//
// @Description Categories and products available in the wizard
type WizardCatalog struct {
	Categories []Category `json:"categories"`
	// ProductsByCategory is keyed by the category id as a string.
	ProductsByCategory map[string][]ProductSummary `json:"productsByCategory"`
}

// CalculatorData is the data set of the single product calculator.
//
// @Description Formats and quantities of one product
type CalculatorData struct {
	ProductID          int                         `json:"product_id"`
	ProductName        string                      `json:"product_name"`
	Formats            []Format                    `json:"formats"`
	QuantitiesByFormat map[string][]QuantityOption `json:"quantities_by_format"`
	LayerThickness     float64                     `json:"layer_thickness"`
	HasFormats         bool                        `json:"has_formats"`
}
