package billing

import "errors"

// Error taxonomy untuk core ticketing/billing. Controller yang memetakan
// error ini ke status HTTP, bukan package ini.
var (
	ErrInvalidTimeRange      = errors.New("exit time is before entry time")
	ErrInvalidDiscount       = errors.New("discount exceeds chargeable amount")
	ErrSpotUnavailable       = errors.New("spot is occupied or not active")
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrInvalidState          = errors.New("operation not valid for current status")
	ErrDuplicateTicketNumber = errors.New("ticket number collision after retries")
)
