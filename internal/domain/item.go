package domain

// Item es un objeto comerciable del juego. Inmutable una vez resuelto.
type Item struct {
	ID   int64
	Name string
}
