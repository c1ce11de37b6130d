package domain

// Notification es la petición permanente de un usuario: avisar cuando el item
// se pueda comprar en el realm a Price copper o menos por unidad, con al menos
// MinQty unidades disponibles.
type Notification struct {
	ID               int64
	UserID           int64
	ConnectedRealmID int64
	ItemID           int64
	Price            int64 // techo en copper por unidad
	MinQty           int64
}

// Matches evalúa la regla contra un order book con política cheapest-first:
// acumula cantidad recorriendo los lots en orden ascendente de precio y
// dispara si junta MinQty unidades sin que ningún lot incluido supere el
// techo. Equivale a "las MinQty unidades más baratas cuestan ≤ Price cada una".
func (n Notification) Matches(book OrderBook) bool {
	want := n.MinQty
	if want <= 0 {
		want = 1
	}
	var acc int64
	for _, lot := range book.Lots {
		if lot.Price > n.Price {
			break
		}
		acc += lot.Quantity
		if acc >= want {
			return true
		}
	}
	return false
}

// Alert es una regla que disparó en el ciclo actual, enriquecida con la
// metadata que el notifier necesita para presentarla.
type Alert struct {
	Notification Notification
	Realm        ConnectedRealm
	Item         Item
	BestPrice    int64 // precio unitario más barato observado
	Available    int64 // unidades disponibles a precio <= techo
}
