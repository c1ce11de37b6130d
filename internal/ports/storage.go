package ports

import (
	"context"

	"github.com/alejandrodnm/ahbot/internal/domain"
)

// Storage persiste usuarios, items, connected realms y reglas de notificación.
// CRUD plano sobre un schema fijo — el core no requiere transacciones que
// abarquen varias filas.
type Storage interface {
	// AddUser registra un usuario por su id de cuenta externa.
	AddUser(ctx context.Context, accountID int64) error
	// GetUser busca un usuario por id de cuenta externa.
	// Devuelve domain.ErrNotFound si no existe.
	GetUser(ctx context.Context, accountID int64) (domain.User, error)
	// GetUserByID busca un usuario por primary key.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	// DeleteUser elimina un usuario; sus notificaciones caen en cascada.
	DeleteUser(ctx context.Context, id int64) error

	// AddItem persiste la metadata de un item resuelto.
	AddItem(ctx context.Context, item domain.Item) error
	// GetItem devuelve un item o domain.ErrNotFound.
	GetItem(ctx context.Context, id int64) (domain.Item, error)
	// GetItems devuelve los items conocidos entre los ids dados.
	GetItems(ctx context.Context, ids []int64) ([]domain.Item, error)

	// AddConnectedRealm persiste un connected realm resuelto.
	AddConnectedRealm(ctx context.Context, realm domain.ConnectedRealm) error
	// GetConnectedRealm busca por slug. Devuelve domain.ErrNotFound si no existe.
	GetConnectedRealm(ctx context.Context, slug string) (domain.ConnectedRealm, error)
	// GetConnectedRealmByID busca por primary key.
	GetConnectedRealmByID(ctx context.Context, id int64) (domain.ConnectedRealm, error)

	// AddNotification registra una regla de notificación.
	AddNotification(ctx context.Context, n domain.Notification) error
	// GetNotifications devuelve todas las reglas activas (las recorre el watcher).
	GetNotifications(ctx context.Context) ([]domain.Notification, error)
	// GetUserNotifications devuelve las reglas de un usuario.
	GetUserNotifications(ctx context.Context, userID int64) ([]domain.Notification, error)
	// CountUserNotifications cuenta las reglas de un usuario.
	CountUserNotifications(ctx context.Context, userID int64) (int64, error)
	// DeleteNotification borra una regla del usuario dado. Devuelve false si
	// la regla no existía o pertenece a otro usuario.
	DeleteNotification(ctx context.Context, userID, notificationID int64) (bool, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
