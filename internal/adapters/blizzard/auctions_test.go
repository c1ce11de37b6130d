package blizzard_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alejandrodnm/ahbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// auctionsFixture: item 100 con dos listings desordenados, item 200 con
// listing bid-only (fallback a buyout) y un item 300 que nadie pide.
const auctionsFixture = `{
	"auctions": [
		{"id": 1, "item": {"id": 100}, "quantity": 3, "unit_price": 500, "time_left": "LONG"},
		{"id": 2, "item": {"id": 100}, "quantity": 10, "unit_price": 300, "time_left": "SHORT"},
		{"id": 3, "item": {"id": 200}, "quantity": 1, "bid": 900, "buyout": 1200, "time_left": "LONG"},
		{"id": 4, "item": {"id": 300}, "quantity": 5, "unit_price": 50, "time_left": "LONG"}
	]
}`

func watched(ids ...int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func newAuctionsServer(t *testing.T, fixture string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/wow/connected-realm/1403/auctions", r.URL.Path)
		assert.Equal(t, "dynamic-eu", r.URL.Query().Get("namespace"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, fixture)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAuctions_LotsSortedAscending(t *testing.T) {
	tokenSrv, _ := newTokenServer(t)
	apiSrv := newAuctionsServer(t, auctionsFixture)

	client := newTestClient(tokenSrv.URL, apiSrv.URL)
	books, err := client.FetchAuctions(context.Background(), 1403, watched(100))

	require.NoError(t, err)
	require.Len(t, books, 1)

	book := books[100]
	assert.Equal(t, int64(100), book.ItemID)
	require.Len(t, book.Lots, 2)
	assert.Equal(t, domain.Lot{Price: 300, Quantity: 10}, book.Lots[0])
	assert.Equal(t, domain.Lot{Price: 500, Quantity: 3}, book.Lots[1])
}

func TestFetchAuctions_BuyoutFallback(t *testing.T) {
	tokenSrv, _ := newTokenServer(t)
	apiSrv := newAuctionsServer(t, auctionsFixture)

	client := newTestClient(tokenSrv.URL, apiSrv.URL)
	books, err := client.FetchAuctions(context.Background(), 1403, watched(200))

	require.NoError(t, err)
	book, ok := books[200]
	require.True(t, ok)
	require.Len(t, book.Lots, 1)
	// Sin unit_price, el precio del lot es el buyout — no el bid
	assert.Equal(t, int64(1200), book.Lots[0].Price)
}

func TestFetchAuctions_UnitPriceWinsOverBuyout(t *testing.T) {
	tokenSrv, _ := newTokenServer(t)
	apiSrv := newAuctionsServer(t, `{
		"auctions": [
			{"id": 1, "item": {"id": 100}, "quantity": 2, "unit_price": 400, "buyout": 9999}
		]
	}`)

	client := newTestClient(tokenSrv.URL, apiSrv.URL)
	books, err := client.FetchAuctions(context.Background(), 1403, watched(100))

	require.NoError(t, err)
	assert.Equal(t, int64(400), books[100].Lots[0].Price)
}

func TestFetchAuctions_MissingItemHasNoEntry(t *testing.T) {
	tokenSrv, _ := newTokenServer(t)
	apiSrv := newAuctionsServer(t, auctionsFixture)

	client := newTestClient(tokenSrv.URL, apiSrv.URL)
	// El item 999 no tiene listings: clave ausente, sin error
	books, err := client.FetchAuctions(context.Background(), 1403, watched(100, 999))

	require.NoError(t, err)
	assert.Len(t, books, 1)
	_, ok := books[999]
	assert.False(t, ok)
}

func TestFetchAuctions_SamePriceLotsNotMerged(t *testing.T) {
	tokenSrv, _ := newTokenServer(t)
	apiSrv := newAuctionsServer(t, `{
		"auctions": [
			{"id": 1, "item": {"id": 100}, "quantity": 4, "unit_price": 250},
			{"id": 2, "item": {"id": 100}, "quantity": 6, "unit_price": 250}
		]
	}`)

	client := newTestClient(tokenSrv.URL, apiSrv.URL)
	books, err := client.FetchAuctions(context.Background(), 1403, watched(100))

	require.NoError(t, err)
	// Un lot por listing: los empates de precio conservan el orden de llegada
	require.Len(t, books[100].Lots, 2)
	assert.Equal(t, int64(4), books[100].Lots[0].Quantity)
	assert.Equal(t, int64(6), books[100].Lots[1].Quantity)
}

func TestFetchAuctions_ServerErrorMeansNoPartialResult(t *testing.T) {
	tokenSrv, _ := newTokenServer(t)

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer apiSrv.Close()

	client := newTestClient(tokenSrv.URL, apiSrv.URL)
	books, err := client.FetchAuctions(context.Background(), 1403, watched(100))

	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Nil(t, books)
}
