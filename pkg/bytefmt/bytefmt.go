// Package bytefmt форматирует количество байт в читаемый вид.
package bytefmt

import "fmt"

const step = 1024.0

var units = []string{"B", "KB", "MB", "GB", "TB"}

// Human возвращает n в наибольшей подходящей единице:
// целым числом от 10 и выше, с одним знаком после запятой ниже.
func Human(n uint64) string {
	f := float64(n)
	i := 0
	for f >= step && i < len(units)-1 {
		f /= step
		i++
	}
	if f >= 10 || f == float64(uint64(f)) {
		return fmt.Sprintf("%d %s", uint64(f), units[i])
	}
	return fmt.Sprintf("%.1f %s", f, units[i])
}
