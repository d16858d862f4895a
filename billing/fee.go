package billing

import "math"

// Semua nominal dalam peso COP utuh (int64), tanpa floating point
// supaya tidak ada drift pembulatan antar agregasi.

// Fee adalah breakdown tarif satu ticket.
type Fee struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// RoundHalfUp membulatkan hasil perkalian float ke peso utuh terdekat,
// setengah ke atas.
func RoundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// CalculateFee menghitung subtotal/pajak/total dari jam tagihan.
// discount yang melebihi subtotal+tax ditolak dengan ErrInvalidDiscount;
// total tidak pernah negatif.
func CalculateFee(hours, hourlyRate int64, taxRate float64, discount int64) (Fee, error) {
	subtotal := hours * hourlyRate
	tax := RoundHalfUp(float64(subtotal) * taxRate)
	if discount < 0 || discount > subtotal+tax {
		return Fee{}, ErrInvalidDiscount
	}
	return Fee{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + tax - discount,
	}, nil
}
