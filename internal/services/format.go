package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// esCO renders amounts with es-CO digit grouping, matching the app's
// Colombian-peso display conventions.
var esCO = message.NewPrinter(language.MustParse("es-CO"))

// formatCurrency renders an amount in minor units for user-facing messages.
func formatCurrency(amount int64) string {
	return esCO.Sprintf("$ %d", amount)
}
