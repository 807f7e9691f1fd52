package model

import (
	"fmt"
	"net/url"
	"strconv"
)

// CartHandoff is the add-to-cart tuple emitted by a finished wizard.
//
// @Description Add-to-cart handoff
// @Example {"product_id": 42, "variation_id": 501, "format": "0-16-mm", "quantity_slug": "1500-kg-bigbag-1-2m3", "bag_count": 1}
type CartHandoff struct {
	ProductID    int    `json:"product_id" example:"42"`
	VariationID  int    `json:"variation_id" example:"501"`
	Format       string `json:"format,omitempty" example:"0-16-mm"`
	QuantitySlug string `json:"quantity_slug" example:"1500-kg-bigbag-1-2m3"`
	BagCount     int    `json:"bag_count" example:"1"`
}

// URL builds the add-to-cart navigation URL on top of cartURL.
// Query parameters already present on cartURL are kept.
func (h CartHandoff) URL(cartURL string) (string, error) {
	u, err := url.Parse(cartURL)
	if err != nil {
		return "", fmt.Errorf("parse cart url: %w", err)
	}
	q := u.Query()
	q.Set("add-to-cart", strconv.Itoa(h.ProductID))
	q.Set("variation_id", strconv.Itoa(h.VariationID))
	if h.Format != "" {
		q.Set("attribute_"+TaxonomyFormat, h.Format)
	}
	q.Set("attribute_"+TaxonomyQuantity, h.QuantitySlug)
	q.Set("quantity", strconv.Itoa(h.BagCount))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
