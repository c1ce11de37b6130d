package domain

// Niveles de privilegio de un usuario.
const (
	LevelUser  = 0
	LevelAdmin = 1
)

// User es un usuario registrado del bot. AccountID es el identificador de la
// cuenta externa (el front-end que lo recolecta queda fuera de este core).
type User struct {
	ID        int64
	AccountID int64
	Level     int
}

// IsAdmin devuelve true si el usuario tiene privilegios de administrador.
func (u User) IsAdmin() bool {
	return u.Level >= LevelAdmin
}
