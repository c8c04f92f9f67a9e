// Package format holds the display formatting helpers shared by the
// bills list and the dashboard cards.
package format

import (
	"fmt"
	"time"

	"github.com/billed-app/billed/internal/domain/entity"
)

// Abbreviated French month names, as rendered on bill cards: the
// locale short month, capitalized and cut to three runes. Juin and
// juillet both abbreviate to "Jui".
var frenchMonths = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// Date renders an ISO date string as e.g. "4 Avr. 04". It returns an
// error for unparseable input so callers can fall back to the raw
// value.
func Date(dateStr string) (string, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", dateStr, err)
	}
	return fmt.Sprintf("%d %s. %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100), nil
}

// Status renders a bill status for display.
func Status(status string) string {
	switch status {
	case entity.StatusPending:
		return "En attente"
	case entity.StatusAccepted:
		return "Accepté"
	case entity.StatusRefused:
		return "Refused"
	}
	return status
}
