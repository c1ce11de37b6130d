package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/ahbot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier escribiendo las alertas a un io.Writer.
// La entrega por mensajería (Telegram, etc.) se enchufa detrás del mismo port.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime las alertas en el modo configurado.
func (c *Console) Notify(_ context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		fmt.Fprintf(c.out, "[%s] no alerts\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printTable(alerts)
	} else {
		c.printCompact(alerts)
	}
	return nil
}

// printCompact imprime lo esencial en una línea por ciclo.
func (c *Console) printCompact(alerts []domain.Alert) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d alerts", time.Now().Format("15:04:05"), len(alerts))

	shown := 0
	for _, a := range alerts {
		if shown >= 4 {
			fmt.Fprintf(&sb, " | +%d more", len(alerts)-shown)
			break
		}
		fmt.Fprintf(&sb, " | %s@%s %s ≤ %s (x%d)",
			itemLabel(a), a.Realm.Name,
			domain.FormatCopper(a.BestPrice), domain.FormatCopper(a.Notification.Price),
			a.Available)
		shown++
	}

	fmt.Fprintln(c.out, sb.String())
}

// printTable imprime la tabla completa de alertas.
func (c *Console) printTable(alerts []domain.Alert) {
	fmt.Fprintf(c.out, "\n[%s] %d price alerts\n", time.Now().Format("15:04:05"), len(alerts))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Realm", "Item", "Ceiling", "Best", "Avail", "Min", "User")

	for i, a := range alerts {
		table.Append(
			fmt.Sprintf("%d", i+1),
			a.Realm.Name,
			itemLabel(a),
			domain.FormatCopper(a.Notification.Price),
			domain.FormatCopper(a.BestPrice),
			fmt.Sprintf("%d", a.Available),
			fmt.Sprintf("%d", a.Notification.MinQty),
			fmt.Sprintf("%d", a.Notification.UserID),
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  Ceiling = techo de la regla | Best = precio unitario más barato observado")
	fmt.Fprintln(c.out, "  Avail = unidades comprables sin pasar del techo")
}

// itemLabel devuelve el nombre del item, o el id si la metadata no está en el store.
func itemLabel(a domain.Alert) string {
	if a.Item.Name != "" {
		return a.Item.Name
	}
	return fmt.Sprintf("item:%d", a.Notification.ItemID)
}
