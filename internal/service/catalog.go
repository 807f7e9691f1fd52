package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/grind-calculator/internal/calculator"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/metrics"
	"github.com/guttosm/grind-calculator/internal/repository"
	"github.com/guttosm/grind-calculator/internal/service/cache"
)

// CatalogGateway is the catalog lookup surface used by the wizard and the calculator.
type CatalogGateway interface {
	// GetFormats returns the distinct formats of a variable product and its layer thickness.
	// Unknown or non-variable products yield no formats.
	GetFormats(ctx context.Context, productID int) ([]model.Format, float64, error)
	// GetQuantities returns the usable quantity options of a product, restricted
	// to format when it is not empty, and the product layer thickness.
	GetQuantities(ctx context.Context, productID int, format string) ([]model.QuantityOption, float64, error)
	// ResolveVariation returns the variation id for (format, quantity) or ErrVariationNotFound.
	ResolveVariation(ctx context.Context, productID int, format, quantity string) (int, error)
}

// CatalogService extends CatalogGateway with the data sets rendered by the frontends.
type CatalogService interface {
	CatalogGateway
	GetWizardCatalog(ctx context.Context) (*model.WizardCatalog, error)
	// GetCalculatorData returns nil without error when the product has neither formats nor quantities.
	GetCalculatorData(ctx context.Context, productID int) (*model.CalculatorData, error)
	Ping(ctx context.Context) error
}

// labelEntry is a cached ParseLabel outcome.
type labelEntry struct {
	parsed model.ParsedLabel
	ok     bool
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithLabelCache caches parsed quantity labels.
func WithLabelCache(capacity int, ttl time.Duration) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if capacity > 0 {
			s.labels = NewShardedCache[string, labelEntry](capacity, ttl, 0)
		}
	}
}

// WithLabelCacheInterface injects a label cache implementation.
func WithLabelCacheInterface(c cache.Cache[string, labelEntry]) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.labels = c
	}
}

// WithCatalogTimeout bounds every gateway call.
func WithCatalogTimeout(d time.Duration) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.timeout = d
	}
}

// CatalogServiceImpl implements CatalogService on top of a catalog repository.
type CatalogServiceImpl struct {
	repo     repository.CatalogRepositoryInterface
	settings SettingsService
	labels   cache.Cache[string, labelEntry]
	timeout  time.Duration
}

// NewCatalogService creates a catalog service.
func NewCatalogService(repo repository.CatalogRepositoryInterface, settings SettingsService, opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		repo:     repo,
		settings: settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the label cache.
func (s *CatalogServiceImpl) Close() {
	if s.labels != nil {
		s.labels.Stop()
	}
}

// GetFormats returns the formats of a variable product in catalog order.
func (s *CatalogServiceImpl) GetFormats(ctx context.Context, productID int) (formats []model.Format, thickness float64, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer observe("formats", time.Now(), &err)

	product, err := s.variableProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	formats, err = s.formats(ctx, product)
	if err != nil {
		return nil, 0, err
	}
	return formats, s.settings.LayerThickness(ctx, product), nil
}

// GetQuantities returns the quantity options of a variable product.
func (s *CatalogServiceImpl) GetQuantities(ctx context.Context, productID int, format string) (options []model.QuantityOption, thickness float64, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer observe("quantities", time.Now(), &err)

	product, err := s.variableProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}

	formatSlug := ""
	if format != "" {
		if formatSlug, err = s.normalizeAttribute(ctx, model.TaxonomyFormat, format); err != nil {
			return nil, 0, err
		}
	}
	options, err = s.quantities(ctx, product, formatSlug)
	if err != nil {
		return nil, 0, err
	}
	return options, s.settings.LayerThickness(ctx, product), nil
}

// ResolveVariation finds the variation whose attributes equal the normalized format and quantity.
func (s *CatalogServiceImpl) ResolveVariation(ctx context.Context, productID int, format, quantity string) (id int, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer observe("variation", time.Now(), &err)

	product, err := s.variableProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, ErrVariationNotFound
	}

	formatSlug := ""
	if format != "" {
		if formatSlug, err = s.normalizeAttribute(ctx, model.TaxonomyFormat, format); err != nil {
			return 0, err
		}
	}
	quantitySlug, err := s.normalizeAttribute(ctx, model.TaxonomyQuantity, quantity)
	if err != nil {
		return 0, err
	}
	if quantitySlug == "" {
		return 0, ErrVariationNotFound
	}

	for _, v := range product.Variations {
		if v.Format == formatSlug && v.Quantity == quantitySlug && v.ID > 0 {
			return v.ID, nil
		}
	}
	return 0, ErrVariationNotFound
}

// GetWizardCatalog lists the wizard categories that hold at least one variable
// product, sorted by name, with their products.
func (s *CatalogServiceImpl) GetWizardCatalog(ctx context.Context) (catalog *model.WizardCatalog, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer observe("wizard", time.Now(), &err)

	allowed := s.settings.GetActive(ctx).WizardCategoryIDs
	products, err := s.repo.ListProducts(ctx, allowed)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	byCategory := make(map[int][]model.ProductSummary)
	for i := range products {
		p := &products[i]
		if !p.IsVariable() {
			continue
		}
		for _, cid := range p.CategoryIDs {
			if len(allowed) > 0 && !slices.Contains(allowed, cid) {
				continue
			}
			if slices.ContainsFunc(byCategory[cid], func(ps model.ProductSummary) bool { return ps.ID == p.ID }) {
				continue
			}
			byCategory[cid] = append(byCategory[cid], model.ProductSummary{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Image:       p.Image,
			})
		}
	}

	catalog = &model.WizardCatalog{
		Categories:         []model.Category{},
		ProductsByCategory: map[string][]model.ProductSummary{},
	}
	if len(byCategory) == 0 {
		return catalog, nil
	}

	ids := make([]int, 0, len(byCategory))
	for id := range byCategory {
		ids = append(ids, id)
	}
	categories, err := s.repo.ListCategories(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})

	for _, c := range categories {
		catalog.Categories = append(catalog.Categories, c)
		catalog.ProductsByCategory[strconv.Itoa(c.ID)] = byCategory[c.ID]
	}
	return catalog, nil
}

// GetCalculatorData returns everything the single product calculator needs in one call.
func (s *CatalogServiceImpl) GetCalculatorData(ctx context.Context, productID int) (data *model.CalculatorData, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer observe("calculator_data", time.Now(), &err)

	product, err := s.variableProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	formats, err := s.formats(ctx, product)
	if err != nil {
		return nil, err
	}

	byFormat := make(map[string][]model.QuantityOption, len(formats))
	if len(formats) == 0 {
		options, err := s.quantities(ctx, product, "")
		if err != nil {
			return nil, err
		}
		if len(options) == 0 {
			return nil, nil
		}
		byFormat[""] = options
	} else {
		for _, f := range formats {
			options, err := s.quantities(ctx, product, f.Slug)
			if err != nil {
				return nil, err
			}
			byFormat[f.Slug] = options
		}
	}

	return &model.CalculatorData{
		ProductID:          product.ID,
		ProductName:        product.Name,
		Formats:            formats,
		QuantitiesByFormat: byFormat,
		LayerThickness:     s.settings.LayerThickness(ctx, product),
		HasFormats:         len(formats) > 0,
	}, nil
}

// Ping checks the catalog backend.
func (s *CatalogServiceImpl) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// variableProduct returns nil without error for unknown or non-variable products.
func (s *CatalogServiceImpl) variableProduct(ctx context.Context, productID int) (*model.Product, error) {
	if productID <= 0 {
		return nil, nil
	}
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", productID, err)
	}
	if !product.IsVariable() {
		return nil, nil
	}
	return product, nil
}

func (s *CatalogServiceImpl) formats(ctx context.Context, product *model.Product) ([]model.Format, error) {
	formats := []model.Format{}
	if product == nil {
		return formats, nil
	}

	seen := make(map[string]int)
	for _, v := range product.Variations {
		slug := strings.TrimSpace(v.Format)
		if slug == "" {
			continue
		}
		name, err := s.resolveLabel(ctx, model.TaxonomyFormat, slug)
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}
		if i, ok := seen[slug]; ok {
			formats[i].Name = name
			continue
		}
		seen[slug] = len(formats)
		formats = append(formats, model.Format{Slug: slug, Name: name})
	}
	return formats, nil
}

// quantities builds the options of product. Options are keyed by quantity
// slug: a later variation replaces an earlier one but keeps its position.
func (s *CatalogServiceImpl) quantities(ctx context.Context, product *model.Product, formatSlug string) ([]model.QuantityOption, error) {
	options := []model.QuantityOption{}
	if product == nil {
		return options, nil
	}

	seen := make(map[string]int)
	for _, v := range product.Variations {
		if v.Quantity == "" || v.ID <= 0 {
			continue
		}
		if formatSlug != "" && v.Format != formatSlug {
			continue
		}

		label, err := s.resolveLabel(ctx, model.TaxonomyQuantity, v.Quantity)
		if err != nil {
			return nil, err
		}
		option, ok := calculator.BuildOption(model.RawQuantityRecord{
			Slug:         v.Quantity,
			Label:        label,
			VariationID:  v.ID,
			BagType:      v.BagType,
			WeightPerBag: v.WeightPerBag,
			VolumePerBag: v.VolumePerBag,
		}, s.parseLabel)
		if !ok {
			continue
		}

		if i, dup := seen[option.Slug]; dup {
			options[i] = option
			continue
		}
		seen[option.Slug] = len(options)
		options = append(options, option)
	}
	return options, nil
}

// parseLabel is calculator.ParseLabel behind the label cache.
func (s *CatalogServiceImpl) parseLabel(label string) (model.ParsedLabel, bool) {
	if s.labels != nil {
		if entry, ok := s.labels.Get(label); ok {
			return entry.parsed, entry.ok
		}
	}

	parsed, ok := calculator.ParseLabel(label)
	if !ok {
		metrics.RecordLabelParseFailure()
		log.Debug().Str("label", label).Msg("Skipping unparseable quantity label")
	}
	if s.labels != nil {
		s.labels.Set(label, labelEntry{parsed: parsed, ok: ok})
	}
	return parsed, ok
}

// resolveLabel returns the display name of an attribute value that may be a slug or a name.
func (s *CatalogServiceImpl) resolveLabel(ctx context.Context, taxonomy, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	term, err := s.findTerm(ctx, taxonomy, value)
	if err != nil {
		return "", err
	}
	if term != nil {
		return term.Name, nil
	}
	return value, nil
}

// normalizeAttribute returns the slug of an attribute value that may be a slug or a name.
func (s *CatalogServiceImpl) normalizeAttribute(ctx context.Context, taxonomy, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	term, err := s.findTerm(ctx, taxonomy, value)
	if err != nil {
		return "", err
	}
	if term != nil {
		return term.Slug, nil
	}
	return Slugify(value), nil
}

// findTerm looks value up by slug first, then by name.
func (s *CatalogServiceImpl) findTerm(ctx context.Context, taxonomy, value string) (*model.AttributeTerm, error) {
	term, err := s.repo.FindTermBySlug(ctx, taxonomy, value)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s term %q: %w", taxonomy, value, err)
	}
	if term != nil {
		return term, nil
	}
	term, err = s.repo.FindTermByName(ctx, taxonomy, value)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s term %q: %w", taxonomy, value, err)
	}
	return term, nil
}

func (s *CatalogServiceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func observe(operation string, start time.Time, err *error) {
	metrics.RecordCatalogRequest(operation, time.Since(start), *err)
}

// Slugify turns a display value into an attribute slug: lower case, runs of
// spaces, dots and dashes become a single dash, other punctuation is dropped.
func Slugify(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r == '-' || r == '.' || unicode.IsSpace(r):
			dash = b.Len() > 0
		case r == '_' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9'):
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
