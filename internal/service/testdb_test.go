package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Ingredient{},
		&model.Product{},
		&model.ProductVariant{},
		&model.User{},
		&model.EmailVerificationToken{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.PurchaseStat{},
	))
	return db
}

// fakeEmail records outbound mail instead of talking SMTP.
type fakeEmail struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeEmail) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errSMTPDown
	}
	f.sent = append(f.sent, to)
	return nil
}

var errSMTPDown = errors.New("smtp down")
