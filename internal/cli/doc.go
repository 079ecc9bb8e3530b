// Package cli — команды для newsletter CLI.
//
// CLI публикует события напрямую в очереди брокера (минуя app-server) —
// инструмент для отладки и ручного прогона конвейера доставки.
package cli
