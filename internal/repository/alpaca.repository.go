package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradedesk/internal/logger"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PriceRepository interface {
	GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

type BrokerRepository interface {
	PlaceOrder(req PlaceOrderRequest) (*alpaca.Order, error)
	IsMarketOpen() (bool, error)
}

type AlpacaRepository interface {
	PriceRepository
	BrokerRepository
}

// QuoteSource is the slice of the alpaca market data client used for
// prices.
type QuoteSource interface {
	GetLatestQuotes(symbols []string, req marketdata.GetLatestQuoteRequest) (map[string]marketdata.Quote, error)
}

const priceTTL = 30 * time.Second

type alpacaRepositoryHandler struct {
	Client   *alpaca.Client
	MdClient QuoteSource
	Cache    *ristretto.Cache
}

func NewAlpacaRepository(apiKey, apiSecret string, endpoint string) (AlpacaRepository, error) {
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    endpoint,
		RetryLimit: 3,
	})

	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return newAlpacaRepository(client, mdClient)
}

func newAlpacaRepository(client *alpaca.Client, quotes QuoteSource) (*alpacaRepositoryHandler, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create price cache: %w", err)
	}

	return &alpacaRepositoryHandler{
		Client:   client,
		MdClient: quotes,
		Cache:    cache,
	}, nil
}

// GetLatestPrices returns bid prices, serving recently fetched symbols
// from cache. A zero price for any symbol fails the whole call.
func (h alpacaRepositoryHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	log := logger.FromContext(ctx)
	out := map[string]decimal.Decimal{}

	missing := []string{}
	for _, s := range symbols {
		symbol := strings.ToUpper(s)
		if cached, ok := h.Cache.Get(symbol); ok {
			out[symbol] = cached.(decimal.Decimal)
		} else {
			missing = append(missing, symbol)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	log.Debugf("fetching quotes for %d symbols", len(missing))
	results, err := h.MdClient.GetLatestQuotes(missing, marketdata.GetLatestQuoteRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to get latest quotes: %w", err)
	}

	for _, symbol := range missing {
		result, ok := results[symbol]
		if !ok {
			return nil, fmt.Errorf("failed to get price for %s: no quote", symbol)
		}
		price := decimal.NewFromFloat(result.BidPrice)
		if price.IsZero() {
			return nil, fmt.Errorf("failed to get price for %s: got 0 price", symbol)
		}
		out[symbol] = price
		h.Cache.SetWithTTL(symbol, price, 1, priceTTL)
	}

	return out, nil
}

func (h alpacaRepositoryHandler) IsMarketOpen() (bool, error) {
	clock, err := h.Client.GetClock()
	if err != nil {
		return false, err
	}
	return clock.IsOpen, nil
}

type PlaceOrderRequest struct {
	AllocationID uuid.UUID
	Quantity     decimal.Decimal
	Symbol       string
	Side         alpaca.Side
	LimitPrice   *decimal.Decimal
}

func (a PlaceOrderRequest) isValid() error {
	if a.Quantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("quantity %s is <= 0", a.Quantity.String())
	}
	return nil
}

func (h alpacaRepositoryHandler) PlaceOrder(req PlaceOrderRequest) (*alpaca.Order, error) {
	if err := req.isValid(); err != nil {
		return nil, fmt.Errorf("invalid order for allocation %s: %w", req.AllocationID.String(), err)
	}

	order, err := h.Client.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:        req.Symbol,
		Qty:           &req.Quantity,
		Side:          req.Side,
		Type:          alpaca.Limit,
		LimitPrice:    req.LimitPrice,
		TimeInForce:   alpaca.Day,
		ClientOrderID: req.AllocationID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("order for allocation %s %s %s failed: %w", req.Side, req.Symbol, req.Quantity.String(), err)
	}

	return order, nil
}
