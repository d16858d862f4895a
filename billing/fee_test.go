package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFee(t *testing.T) {
	// Kasus referensi: tarif 3000/jam, masuk 10:00 keluar 12:30.
	// 150 menit -> 3 jam tagihan, subtotal 9000, IVA 19% = 1710, total 10710.
	fee, err := CalculateFee(3, 3000, 0.19, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(9000), fee.Subtotal)
	assert.Equal(t, int64(1710), fee.Tax)
	assert.Equal(t, int64(10710), fee.Total)
}

func TestCalculateFeeDiscount(t *testing.T) {
	tests := []struct {
		name      string
		discount  int64
		wantTotal int64
		wantErr   error
	}{
		{name: "diskon normal", discount: 710, wantTotal: 10000},
		{name: "diskon penuh total nol", discount: 10710, wantTotal: 0},
		{name: "diskon melebihi total ditolak", discount: 10711, wantErr: ErrInvalidDiscount},
		{name: "diskon negatif ditolak", discount: -1, wantErr: ErrInvalidDiscount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := CalculateFee(3, 3000, 0.19, tt.discount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, fee.Total)
			assert.GreaterOrEqual(t, fee.Total, int64(0))
		})
	}
}

func TestCalculateFeeTaxRounding(t *testing.T) {
	// 0.5 peso dibulatkan ke atas: 2500 * 0.19 = 475 tepat,
	// 1750 * 0.19 = 332.5 -> 333
	fee, err := CalculateFee(1, 1750, 0.19, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(333), fee.Tax)

	fee, err = CalculateFee(1, 2500, 0.19, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(475), fee.Tax)
}

func TestCalculateFeeZeroTaxRate(t *testing.T) {
	fee, err := CalculateFee(2, 4000, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(8000), fee.Subtotal)
	assert.Equal(t, int64(0), fee.Tax)
	assert.Equal(t, int64(8000), fee.Total)
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.49, 1},
		{332.5, 333},
		{1709.99, 1710},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%v)", tt.in)
	}
}
