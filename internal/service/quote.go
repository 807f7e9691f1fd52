package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/grind-calculator/internal/calculator"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/metrics"
)

// QuoteRequest is a standalone calculation for one product and format.
// A non-positive ThicknessCm means the product layer thickness.
type QuoteRequest struct {
	AreaM2      float64
	ThicknessCm float64
	ProductID   int
	Format      string
}

// Quote is the best fitting option and its calculation.
type Quote struct {
	Option      *model.QuantityOption
	Result      model.CalculationResult
	ThicknessCm float64
	Options     []model.QuantityOption
}

// QuoteService runs the calculator outside the wizard.
type QuoteService interface {
	// Quote returns ErrNoPackaging with a zero result when the product has no usable option.
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

// QuoteServiceImpl implements QuoteService.
type QuoteServiceImpl struct {
	gateway CatalogGateway
}

// NewQuoteService creates a quote service.
func NewQuoteService(gateway CatalogGateway) *QuoteServiceImpl {
	return &QuoteServiceImpl{gateway: gateway}
}

func (s *QuoteServiceImpl) Quote(ctx context.Context, req QuoteRequest) (q *Quote, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		switch {
		case errors.Is(err, ErrNoPackaging):
			status = "no_packaging"
		case err != nil:
			status = "error"
		}
		metrics.RecordQuantityCalculation(time.Since(start), status)
	}()

	options, thickness, err := s.gateway.GetQuantities(ctx, req.ProductID, req.Format)
	if err != nil {
		return nil, err
	}
	if req.ThicknessCm > 0 {
		thickness = req.ThicknessCm
	}

	q = &Quote{
		ThicknessCm: thickness,
		Options:     options,
		Result:      model.ZeroResult(),
	}
	if len(options) == 0 {
		return q, ErrNoPackaging
	}

	q.Option, q.Result = calculator.Quote(req.AreaM2, thickness, options)
	if q.Option != nil {
		metrics.RecordBestFitSelection(q.Option.BagType)
	}
	return q, nil
}
