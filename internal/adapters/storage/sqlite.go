package storage

// sqlite.go — persistencia de usuarios, items, connected realms y reglas de
// notificación. CRUD plano sobre un schema fijo; sin transacciones multi-fila
// porque ninguna operación las necesita.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alejandrodnm/ahbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         INTEGER PRIMARY KEY,
    account_id INTEGER NOT NULL UNIQUE,
    level      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS items (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS connected_realms (
    id   INTEGER PRIMARY KEY,
    slug TEXT NOT NULL,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id            INTEGER NOT NULL,
    connected_realm_id INTEGER NOT NULL,
    item_id            INTEGER NOT NULL,
    price              INTEGER NOT NULL,
    min_qty            INTEGER NOT NULL DEFAULT 1,
    FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY(connected_realm_id) REFERENCES connected_realms(id) ON DELETE NO ACTION,
    FOREIGN KEY(item_id) REFERENCES items(id) ON DELETE NO ACTION
);

CREATE INDEX IF NOT EXISTS idx_realm_slug    ON connected_realms(slug);
CREATE INDEX IF NOT EXISTS idx_notif_user    ON notifications(user_id);
CREATE INDEX IF NOT EXISTS idx_notif_realm   ON notifications(connected_realm_id);
`

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica el
// schema. Usar ":memory:" en tests.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// AddUser registra un usuario nuevo con nivel 0 (usuario normal).
func (s *SQLiteStorage) AddUser(ctx context.Context, accountID int64) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users(account_id) VALUES (?)`, accountID,
	); err != nil {
		return fmt.Errorf("storage.AddUser: %w", err)
	}
	slog.Info("added user", "account_id", accountID)
	return nil
}

// GetUser busca un usuario por su id de cuenta externa.
func (s *SQLiteStorage) GetUser(ctx context.Context, accountID int64) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, level FROM users WHERE account_id = ?`, accountID)
	return scanUser(row, fmt.Sprintf("account_id=%d", accountID))
}

// GetUserByID busca un usuario por primary key.
func (s *SQLiteStorage) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, level FROM users WHERE id = ?`, id)
	return scanUser(row, fmt.Sprintf("id=%d", id))
}

// DeleteUser elimina un usuario; sus notificaciones caen por la FK en cascada.
func (s *SQLiteStorage) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("storage.DeleteUser %d: %w", id, err)
	}
	slog.Info("deleted user", "id", id)
	return nil
}

// AddItem persiste la metadata de un item resuelto. Idempotente: un item ya
// conocido no se duplica ni falla.
func (s *SQLiteStorage) AddItem(ctx context.Context, item domain.Item) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO items(id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		item.ID, item.Name,
	); err != nil {
		return fmt.Errorf("storage.AddItem %d: %w", item.ID, err)
	}
	slog.Info("added item", "id", item.ID, "name", item.Name)
	return nil
}

// GetItem devuelve un item por id, o domain.ErrNotFound.
func (s *SQLiteStorage) GetItem(ctx context.Context, id int64) (domain.Item, error) {
	var item domain.Item
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, fmt.Errorf("storage.GetItem %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("storage.GetItem %d: %w", id, err)
	}
	return item, nil
}

// GetItems devuelve los items conocidos entre los ids dados. Ids desconocidos
// simplemente no aparecen en el resultado.
func (s *SQLiteStorage) GetItems(ctx context.Context, ids []int64) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM items WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("storage.GetItems: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("storage.GetItems: scan row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddConnectedRealm persiste un connected realm resuelto. Idempotente.
func (s *SQLiteStorage) AddConnectedRealm(ctx context.Context, realm domain.ConnectedRealm) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO connected_realms(id, slug, name) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET slug = excluded.slug, name = excluded.name`,
		realm.ID, realm.Slug, realm.Name,
	); err != nil {
		return fmt.Errorf("storage.AddConnectedRealm %d: %w", realm.ID, err)
	}
	slog.Info("added connected realm", "id", realm.ID, "name", realm.Name)
	return nil
}

// GetConnectedRealm busca un connected realm por slug.
func (s *SQLiteStorage) GetConnectedRealm(ctx context.Context, slug string) (domain.ConnectedRealm, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, name FROM connected_realms WHERE slug = ?`, slug)
	return scanRealm(row, "slug="+slug)
}

// GetConnectedRealmByID busca un connected realm por primary key.
func (s *SQLiteStorage) GetConnectedRealmByID(ctx context.Context, id int64) (domain.ConnectedRealm, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, name FROM connected_realms WHERE id = ?`, id)
	return scanRealm(row, fmt.Sprintf("id=%d", id))
}

// AddNotification registra una regla de notificación de un usuario.
func (s *SQLiteStorage) AddNotification(ctx context.Context, n domain.Notification) error {
	minQty := n.MinQty
	if minQty <= 0 {
		minQty = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications(user_id, connected_realm_id, item_id, price, min_qty)
		 VALUES (?, ?, ?, ?, ?)`,
		n.UserID, n.ConnectedRealmID, n.ItemID, n.Price, minQty,
	)
	if err != nil {
		return fmt.Errorf("storage.AddNotification: %w", err)
	}
	id, _ := res.LastInsertId()
	slog.Info("added notification", "id", id, "user_id", n.UserID, "item_id", n.ItemID)
	return nil
}

// GetNotifications devuelve todas las reglas activas.
func (s *SQLiteStorage) GetNotifications(ctx context.Context) ([]domain.Notification, error) {
	return s.queryNotifications(ctx,
		`SELECT id, user_id, connected_realm_id, item_id, price, min_qty FROM notifications`)
}

// GetUserNotifications devuelve las reglas de un usuario.
func (s *SQLiteStorage) GetUserNotifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.queryNotifications(ctx,
		`SELECT id, user_id, connected_realm_id, item_id, price, min_qty
		 FROM notifications WHERE user_id = ?`, userID)
}

// CountUserNotifications cuenta las reglas de un usuario.
func (s *SQLiteStorage) CountUserNotifications(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage.CountUserNotifications %d: %w", userID, err)
	}
	return count, nil
}

// DeleteNotification borra una regla del usuario dado. Devuelve false si la
// regla no existía o pertenece a otro usuario.
func (s *SQLiteStorage) DeleteNotification(ctx context.Context, userID, notificationID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = ? AND id = ?`, userID, notificationID)
	if err != nil {
		return false, fmt.Errorf("storage.DeleteNotification %d: %w", notificationID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage.DeleteNotification %d: rows affected: %w", notificationID, err)
	}
	if n > 0 {
		slog.Info("deleted notification", "id", notificationID, "user_id", userID)
	}
	return n > 0, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

func (s *SQLiteStorage) queryNotifications(ctx context.Context, query string, args ...any) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage.queryNotifications: %w", err)
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.ConnectedRealmID, &n.ItemID, &n.Price, &n.MinQty); err != nil {
			return nil, fmt.Errorf("storage.queryNotifications: scan row: %w", err)
		}
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

func scanUser(row *sql.Row, desc string) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.AccountID, &u.Level)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("storage: user %s: %w", desc, domain.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("storage: user %s: %w", desc, err)
	}
	return u, nil
}

func scanRealm(row *sql.Row, desc string) (domain.ConnectedRealm, error) {
	var r domain.ConnectedRealm
	err := row.Scan(&r.ID, &r.Slug, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ConnectedRealm{}, fmt.Errorf("storage: connected realm %s: %w", desc, domain.ErrNotFound)
	}
	if err != nil {
		return domain.ConnectedRealm{}, fmt.Errorf("storage: connected realm %s: %w", desc, err)
	}
	return r, nil
}
