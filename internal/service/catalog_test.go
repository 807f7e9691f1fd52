//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/repository"
)

func slugs(options []model.QuantityOption) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Slug
	}
	return out
}

func TestCatalogService_GetFormats(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	tests := []struct {
		name          string
		productID     int
		wantFormats   []model.Format
		wantThickness float64
	}{
		{
			name:      "variable product keeps first seen order",
			productID: 7,
			wantFormats: []model.Format{
				{Slug: "8-16-mm", Name: "8-16 mm"},
				{Slug: "16-32-mm", Name: "16-32 mm"},
			},
			wantThickness: 4,
		},
		{name: "product without formats", productID: 5, wantFormats: []model.Format{}, wantThickness: 5},
		{name: "simple product", productID: 8, wantFormats: []model.Format{}, wantThickness: 5},
		{name: "unknown product", productID: 999, wantFormats: []model.Format{}, wantThickness: 5},
		{name: "invalid id", productID: 0, wantFormats: []model.Format{}, wantThickness: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formats, thickness, err := svc.GetFormats(ctx, tt.productID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormats, formats)
			assert.Equal(t, tt.wantThickness, thickness)
		})
	}
}

func TestCatalogService_GetQuantities(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	tests := []struct {
		name      string
		productID int
		format    string
		want      []string
	}{
		{"by format slug", 7, "8-16-mm", []string{"800-kg-bigbag-0-5m3", "1500-kg-bigbag-1m3"}},
		{"by format name", 7, "8-16 mm", []string{"800-kg-bigbag-0-5m3", "1500-kg-bigbag-1m3"}},
		{"other format", 7, "16-32-mm", []string{"1000-kg-bigbag-1m3"}},
		{"all formats", 7, "", []string{"800-kg-bigbag-0-5m3", "1500-kg-bigbag-1m3", "1000-kg-bigbag-1m3"}},
		{"unknown format", 7, "0-4-mm", []string{}},
		{"no formats skips empty and id-less variations", 5, "", []string{"25-kg-zak-0-016m3"}},
		{"only unparseable labels", 9, "", []string{}},
		{"simple product", 8, "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options, _, err := svc.GetQuantities(ctx, tt.productID, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(options))
		})
	}
}

func TestCatalogService_GetQuantities_Options(t *testing.T) {
	svc := newTestCatalogService()

	options, thickness, err := svc.GetQuantities(context.Background(), 7, "8-16-mm")
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, 4.0, thickness)

	// the later duplicate replaces the earlier one in place
	assert.Equal(t, model.QuantityOption{
		Slug:         "800-kg-bigbag-0-5m3",
		Label:        "800 kg Bigbag 0,5m3",
		VariationID:  15,
		BagType:      "Bigbag",
		WeightPerBag: 800,
		VolumePerBag: 0.5,
	}, options[0])
	assert.Equal(t, 12, options[1].VariationID)

	options, _, err = svc.GetQuantities(context.Background(), 5, "")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Zak", options[0].BagType)
	assert.Equal(t, 25.0, options[0].WeightPerBag)
	assert.InDelta(t, 0.016, options[0].VolumePerBag, 1e-9)
}

func TestCatalogService_ResolveVariation(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	tests := []struct {
		name      string
		productID int
		format    string
		quantity  string
		want      int
		wantErr   error
	}{
		{"slugs", 7, "8-16-mm", "1500-kg-bigbag-1m3", 12, nil},
		{"display names", 7, "8-16 mm", "1500 kg Bigbag 1m3", 12, nil},
		{"first matching variation", 7, "8-16-mm", "800-kg-bigbag-0-5m3", 11, nil},
		{"no formats", 5, "", "25-kg-zak-0-016m3", 21, nil},
		{"empty quantity", 7, "8-16-mm", "", 0, ErrVariationNotFound},
		{"combination does not exist", 7, "16-32-mm", "1500-kg-bigbag-1m3", 0, ErrVariationNotFound},
		{"missing format", 7, "", "1500-kg-bigbag-1m3", 0, ErrVariationNotFound},
		{"simple product", 8, "", "anything", 0, ErrVariationNotFound},
		{"unknown product", 999, "", "25-kg-zak-0-016m3", 0, ErrVariationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.ResolveVariation(ctx, tt.productID, tt.format, tt.quantity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestCatalogService_GetWizardCatalog(t *testing.T) {
	t.Run("all categories", func(t *testing.T) {
		svc := newTestCatalogService()

		catalog, err := svc.GetWizardCatalog(context.Background())
		require.NoError(t, err)

		names := make([]string, len(catalog.Categories))
		for i, c := range catalog.Categories {
			names[i] = c.Name
		}
		assert.Equal(t, []string{"Aarde", "Grind", "split"}, names)
		assert.Equal(t, "Grind in bigbags", catalog.Categories[1].Description)

		require.Len(t, catalog.ProductsByCategory, 3)
		assert.Equal(t, []model.ProductSummary{{ID: 5, Name: "Split 0-32"}, {ID: 7, Name: "Grind 8-16"}}, catalog.ProductsByCategory["1"])
		assert.Equal(t, []model.ProductSummary{{ID: 5, Name: "Split 0-32"}}, catalog.ProductsByCategory["3"])
		assert.Equal(t, []model.ProductSummary{{ID: 9, Name: "Leem"}}, catalog.ProductsByCategory["4"])
		assert.NotContains(t, catalog.ProductsByCategory, "9")
	})

	t.Run("restricted to configured categories", func(t *testing.T) {
		svc := NewCatalogService(
			repository.NewMemoryCatalogRepository(testSeed()),
			NewSettingsService(nil, model.Settings{WizardCategoryIDs: []int{3, 9}}),
		)

		catalog, err := svc.GetWizardCatalog(context.Background())
		require.NoError(t, err)
		require.Len(t, catalog.Categories, 1)
		assert.Equal(t, 3, catalog.Categories[0].ID)
		assert.Equal(t, []model.ProductSummary{{ID: 5, Name: "Split 0-32"}}, catalog.ProductsByCategory["3"])
		assert.NotContains(t, catalog.ProductsByCategory, "1")
	})

	t.Run("empty catalog", func(t *testing.T) {
		svc := NewCatalogService(
			repository.NewMemoryCatalogRepository(repository.CatalogSeed{}),
			NewSettingsService(nil, model.Settings{}),
		)

		catalog, err := svc.GetWizardCatalog(context.Background())
		require.NoError(t, err)
		assert.Empty(t, catalog.Categories)
		assert.NotNil(t, catalog.ProductsByCategory)
	})
}

func TestCatalogService_GetCalculatorData(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	t.Run("product with formats", func(t *testing.T) {
		data, err := svc.GetCalculatorData(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, data)

		assert.Equal(t, "Grind 8-16", data.ProductName)
		assert.True(t, data.HasFormats)
		assert.Len(t, data.Formats, 2)
		assert.Equal(t, 4.0, data.LayerThickness)
		assert.Equal(t, []string{"800-kg-bigbag-0-5m3", "1500-kg-bigbag-1m3"}, slugs(data.QuantitiesByFormat["8-16-mm"]))
		assert.Equal(t, []string{"1000-kg-bigbag-1m3"}, slugs(data.QuantitiesByFormat["16-32-mm"]))
	})

	t.Run("product without formats", func(t *testing.T) {
		data, err := svc.GetCalculatorData(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, data)

		assert.False(t, data.HasFormats)
		assert.Empty(t, data.Formats)
		assert.Equal(t, 5.0, data.LayerThickness)
		assert.Equal(t, []string{"25-kg-zak-0-016m3"}, slugs(data.QuantitiesByFormat[""]))
	})

	t.Run("nothing to calculate", func(t *testing.T) {
		data, err := svc.GetCalculatorData(ctx, 9)
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	for _, id := range []int{8, 999} {
		_, err := svc.GetCalculatorData(ctx, id)
		assert.ErrorIs(t, err, ErrProductNotFound)
	}
}

func TestCatalogService_LabelCache(t *testing.T) {
	svc := NewCatalogService(
		repository.NewMemoryCatalogRepository(testSeed()),
		NewSettingsService(nil, model.Settings{}),
		WithLabelCache(64, time.Minute),
	)
	defer svc.Close()

	_, _, err := svc.GetQuantities(context.Background(), 7, "")
	require.NoError(t, err)

	entry, ok := svc.labels.Get("1500 kg Bigbag 1m3")
	require.True(t, ok)
	assert.True(t, entry.ok)
	assert.Equal(t, 1500.0, entry.parsed.WeightPerBag)

	entry, ok = svc.labels.Get("los-gestort")
	require.True(t, ok)
	assert.False(t, entry.ok)

	// cached results are served on the next call
	options, _, err := svc.GetQuantities(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Len(t, options, 3)
}

type brokenCatalog struct {
	repository.CatalogRepositoryInterface
	err error
}

func (b brokenCatalog) GetProduct(context.Context, int) (*model.Product, error) {
	return nil, b.err
}

func (b brokenCatalog) ListProducts(context.Context, []int) ([]model.Product, error) {
	return nil, b.err
}

func (b brokenCatalog) Ping(context.Context) error {
	return b.err
}

type slowCatalog struct {
	repository.CatalogRepositoryInterface
}

func (slowCatalog) GetProduct(ctx context.Context, _ int) (*model.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestCatalogService_BackendErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewCatalogService(brokenCatalog{err: boom}, NewSettingsService(nil, model.Settings{}))
	ctx := context.Background()

	_, _, err := svc.GetFormats(ctx, 7)
	assert.ErrorIs(t, err, boom)

	_, _, err = svc.GetQuantities(ctx, 7, "")
	assert.ErrorIs(t, err, boom)

	_, err = svc.ResolveVariation(ctx, 7, "", "x")
	assert.ErrorIs(t, err, boom)

	_, err = svc.GetWizardCatalog(ctx)
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, svc.Ping(ctx), boom)
}

func TestCatalogService_Timeout(t *testing.T) {
	svc := NewCatalogService(slowCatalog{}, NewSettingsService(nil, model.Settings{}), WithCatalogTimeout(20*time.Millisecond))

	_, _, err := svc.GetFormats(context.Background(), 7)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8-16 mm", "8-16-mm"},
		{"  800 kg (0,5m3) ", "800-kg-05m3"},
		{"1.5 Ton", "1-5-ton"},
		{"--A  b--", "a-b"},
		{"big_bag", "big_bag"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
