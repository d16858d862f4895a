package billing

import "time"

// ElapsedMinutes menghitung durasi parkir dalam menit.
// ref yang zero berarti "sekarang" (ticket masih aktif).
// ref sebelum entry mengembalikan ErrInvalidTimeRange, tidak pernah nilai negatif;
// caller yang memutuskan mau clamp ke nol atau menolak operasi.
func ElapsedMinutes(entry, ref time.Time) (int64, error) {
	if ref.IsZero() {
		ref = time.Now()
	}
	if ref.Before(entry) {
		return 0, ErrInvalidTimeRange
	}
	return int64(ref.Sub(entry) / time.Minute), nil
}

// BilledHours membulatkan menit ke atas menjadi jam tagihan.
// Durasi nol menit tetap kena minimum satu jam (ceiling, bukan floor).
func BilledHours(minutes int64) int64 {
	if minutes <= 0 {
		return 1
	}
	hours := minutes / 60
	if minutes%60 != 0 {
		hours++
	}
	return hours
}
