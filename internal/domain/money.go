package domain

import "fmt"

// FormatCopper renderiza un precio en copper como "12g34s56c", omitiendo las
// denominaciones altas cuando son cero.
func FormatCopper(copper int64) string {
	gold := copper / 10000
	silver := (copper % 10000) / 100
	c := copper % 100
	switch {
	case gold > 0:
		return fmt.Sprintf("%dg%02ds%02dc", gold, silver, c)
	case silver > 0:
		return fmt.Sprintf("%ds%02dc", silver, c)
	default:
		return fmt.Sprintf("%dc", c)
	}
}
