package cmd

import (
	"time"

	"tradedesk/internal/repository"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
)

// paper broker for test environments: orders are filled immediately at
// their limit price and never reach alpaca. the market is always open
type paperBrokerRepositoryHandler struct {
	// only consulted for market hours when set
	realBrokerRepository repository.BrokerRepository
}

func NewPaperBrokerRepository(brokerRepository repository.BrokerRepository) repository.BrokerRepository {
	return paperBrokerRepositoryHandler{
		realBrokerRepository: brokerRepository,
	}
}

func (m paperBrokerRepositoryHandler) PlaceOrder(req repository.PlaceOrderRequest) (*alpaca.Order, error) {
	now := time.Now().UTC()
	order := &alpaca.Order{
		ID:            uuid.NewString(),
		ClientOrderID: req.AllocationID.String(),
		FilledAt:      &now,
		Symbol:        req.Symbol,
		Qty:           &req.Quantity,
		FilledQty:     req.Quantity,
		Side:          req.Side,
		Type:          alpaca.Limit,
		TimeInForce:   alpaca.Day,
		Status:        "filled",
	}
	if req.LimitPrice != nil {
		order.LimitPrice = req.LimitPrice
		order.FilledAvgPrice = req.LimitPrice
	}
	return order, nil
}

func (m paperBrokerRepositoryHandler) IsMarketOpen() (bool, error) {
	if m.realBrokerRepository != nil {
		return m.realBrokerRepository.IsMarketOpen()
	}
	return true, nil
}
