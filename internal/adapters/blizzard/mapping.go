package blizzard

import (
	"sort"

	"github.com/alejandrodnm/ahbot/internal/domain"
)

// mapConnectedRealm elige el primer candidato del search con id distinto de
// cero y deriva el nombre de su primer realm constituyente, con el propio slug
// como fallback si no hay nombre localizado.
func mapConnectedRealm(resp realmSearchResponse, slug string) (domain.ConnectedRealm, bool) {
	for _, result := range resp.Results {
		if result.Data.ID == 0 {
			continue
		}
		name := slug
		if len(result.Data.Realms) > 0 && result.Data.Realms[0].Name.EnUS != "" {
			name = result.Data.Realms[0].Name.EnUS
		}
		return domain.ConnectedRealm{
			ID:   result.Data.ID,
			Slug: slug,
			Name: name,
		}, true
	}
	return domain.ConnectedRealm{}, false
}

// lotPrice es la política de precio unitario de un listing: preferimos
// unit_price; si viene ausente o a cero, usamos buyout. Los listings bid-only
// con buyout siguen siendo comprables "ya" y deben contar para el matching.
func lotPrice(a auctionListing) int64 {
	if a.UnitPrice > 0 {
		return a.UnitPrice
	}
	return a.Buyout
}

// mapOrderBooks filtra los listings a los items pedidos y agrupa un order book
// por item: un Lot por listing (nunca se fusionan), ordenados de menor a mayor
// precio. Empates conservan el orden de llegada. Un item sin listings no
// aparece en el resultado.
func mapOrderBooks(resp auctionsResponse, itemIDs map[int64]struct{}) map[int64]domain.OrderBook {
	books := make(map[int64]domain.OrderBook, len(itemIDs))
	for _, listing := range resp.Auctions {
		if _, ok := itemIDs[listing.Item.ID]; !ok {
			continue
		}
		book := books[listing.Item.ID]
		book.ItemID = listing.Item.ID
		book.Lots = append(book.Lots, domain.Lot{
			Price:    lotPrice(listing),
			Quantity: listing.Quantity,
		})
		books[listing.Item.ID] = book
	}

	for id, book := range books {
		sort.SliceStable(book.Lots, func(i, j int) bool {
			return book.Lots[i].Price < book.Lots[j].Price
		})
		books[id] = book
	}
	return books
}
