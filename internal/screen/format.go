package screen

import "fmt"

func formatRADec(ra, dec float64) string {
	return fmt.Sprintf("RA %.2f  Dec %.2f", ra, dec)
}
