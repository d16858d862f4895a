package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db *gorm.DB
	mu sync.RWMutex
)

// InitDB menyimpan koneksi gorm untuk dipakai lintas package (token cleanup,
// helper yang tidak menerima DB lewat constructor). Pemanggilan setelah yang
// pertama diabaikan supaya koneksi produksi tidak tertimpa.
func InitDB(database *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		db = database
	}
}

// GetDB mengembalikan koneksi yang dipasang InitDB; nil sebelum itu.
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
