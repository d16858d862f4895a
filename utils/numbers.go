package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateTicketNumber membentuk nomor ticket/order dengan format
// PREFIX-YYYYMMDD-HHMMSS-NNN. Suffix 3 digit random; keunikan dijamin
// oleh unique index di database plus retry di service, bukan di sini.
func GenerateTicketNumber(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%03d",
		prefix,
		at.Format("20060102"),
		at.Format("150405"),
		rand.Intn(1000))
}
