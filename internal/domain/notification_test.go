package domain_test

import (
	"testing"

	"github.com/alejandrodnm/ahbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func book(lots ...domain.Lot) domain.OrderBook {
	return domain.OrderBook{ItemID: 100, Lots: lots}
}

func rule(price, minQty int64) domain.Notification {
	return domain.Notification{ItemID: 100, Price: price, MinQty: minQty}
}

func TestNotification_Matches_CheapestFirst(t *testing.T) {
	// 10 unidades a 300 + 3 a 500: pedir 12 unidades a techo 500 junta 10+3
	b := book(
		domain.Lot{Price: 300, Quantity: 10},
		domain.Lot{Price: 500, Quantity: 3},
	)

	assert.True(t, rule(500, 12).Matches(b))
	assert.True(t, rule(300, 10).Matches(b))
	// El techo 300 corta antes del lot de 500: solo hay 10 unidades
	assert.False(t, rule(300, 11).Matches(b))
	// Techo por debajo del lot más barato
	assert.False(t, rule(299, 1).Matches(b))
}

func TestNotification_Matches_ExactBoundary(t *testing.T) {
	b := book(domain.Lot{Price: 500, Quantity: 5})

	// Precio exactamente en el techo y cantidad exactamente el mínimo
	assert.True(t, rule(500, 5).Matches(b))
	assert.False(t, rule(500, 6).Matches(b))
	assert.False(t, rule(499, 5).Matches(b))
}

func TestNotification_Matches_ZeroMinQtyMeansOne(t *testing.T) {
	b := book(domain.Lot{Price: 100, Quantity: 1})

	assert.True(t, rule(100, 0).Matches(b))
}

func TestNotification_Matches_EmptyBook(t *testing.T) {
	assert.False(t, rule(1000000, 1).Matches(book()))
}

func TestOrderBook_QuantityAtOrBelow(t *testing.T) {
	b := book(
		domain.Lot{Price: 300, Quantity: 10},
		domain.Lot{Price: 300, Quantity: 2},
		domain.Lot{Price: 500, Quantity: 3},
	)

	assert.Equal(t, int64(12), b.QuantityAtOrBelow(300))
	assert.Equal(t, int64(15), b.QuantityAtOrBelow(500))
	assert.Equal(t, int64(0), b.QuantityAtOrBelow(299))
	assert.Equal(t, int64(15), b.TotalQuantity())
}

func TestOrderBook_BestPrice(t *testing.T) {
	assert.Equal(t, int64(0), book().BestPrice())
	assert.Equal(t, int64(300), book(domain.Lot{Price: 300, Quantity: 1}).BestPrice())
}
