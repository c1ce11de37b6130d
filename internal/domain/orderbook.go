package domain

// OrderBook es la vista agregada de las subastas activas de un item en un
// connected realm: un Lot por listing, ordenados de menor a mayor precio.
// Se reconstruye en cada fetch, nunca se persiste.
type OrderBook struct {
	ItemID int64
	Lots   []Lot // ordenados ascendente por precio
}

// Lot es el par precio/cantidad de un listing individual. El precio va en
// copper por unidad; los lots no se fusionan aunque compartan precio.
type Lot struct {
	Price    int64
	Quantity int64
}

// BestPrice devuelve el precio unitario más barato del book.
// Devuelve 0 si el book está vacío.
func (b OrderBook) BestPrice() int64 {
	if len(b.Lots) == 0 {
		return 0
	}
	return b.Lots[0].Price
}

// TotalQuantity devuelve la cantidad total de unidades listadas.
func (b OrderBook) TotalQuantity() int64 {
	var total int64
	for _, lot := range b.Lots {
		total += lot.Quantity
	}
	return total
}

// QuantityAtOrBelow devuelve cuántas unidades se pueden comprar sin pasar del
// precio unitario dado. Como los lots están ordenados ascendente, el primer
// lot que supera el techo corta la suma.
func (b OrderBook) QuantityAtOrBelow(price int64) int64 {
	var total int64
	for _, lot := range b.Lots {
		if lot.Price > price {
			break
		}
		total += lot.Quantity
	}
	return total
}
