package model

// Settings are the runtime calculator settings.
//
// @Description Calculator settings
// @Example {"default_layer_thickness": 5, "wizard_category_ids": [12, 14]}
type Settings struct {
	// DefaultLayerThickness in cm, used when a product has no own thickness
	DefaultLayerThickness float64 `bson:"default_layer_thickness" json:"default_layer_thickness" example:"5"`
	// WizardCategoryIDs restricts the wizard to these categories; empty means all
	WizardCategoryIDs []int `bson:"wizard_category_ids" json:"wizard_category_ids"`
}

// Sanitize returns a copy with a positive thickness and unique positive category ids.
func (s Settings) Sanitize(defaultThickness float64) Settings {
	out := Settings{DefaultLayerThickness: s.DefaultLayerThickness}
	if out.DefaultLayerThickness <= 0 {
		out.DefaultLayerThickness = defaultThickness
	}
	seen := make(map[int]struct{}, len(s.WizardCategoryIDs))
	out.WizardCategoryIDs = make([]int, 0, len(s.WizardCategoryIDs))
	for _, id := range s.WizardCategoryIDs {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out.WizardCategoryIDs = append(out.WizardCategoryIDs, id)
	}
	return out
}
