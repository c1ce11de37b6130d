package ports

import (
	"context"

	"github.com/alejandrodnm/ahbot/internal/domain"
)

// Notifier presenta al usuario las alertas que dispararon en un ciclo.
// La implementación de consola imprime una tabla; la entrega por mensajería
// queda fuera de este core y se enchufa detrás de este mismo port.
type Notifier interface {
	Notify(ctx context.Context, alerts []domain.Alert) error
}
