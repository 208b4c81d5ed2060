package payments

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ngo-portal/internal/domain/memberships"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return db, mock
}

func TestGormMembershipStoreFindByPayment(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormMembershipStore{DB: db}

	rows := sqlmock.NewRows([]string{"id", "reference_id", "razorpay_order_id", "razorpay_payment_id", "status"}).
		AddRow(1, "M-ABCD1234", "order_1", "pay_1", memberships.StatusActive)
	mock.ExpectQuery(`SELECT \* FROM "memberships" WHERE razorpay_order_id = \$1 AND razorpay_payment_id = \$2`).
		WithArgs("order_1", "pay_1", 1).
		WillReturnRows(rows)

	m, err := store.FindByPayment("order_1", "pay_1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "M-ABCD1234", m.ReferenceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMembershipStoreFindByPaymentMissRowIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormMembershipStore{DB: db}

	mock.ExpectQuery(`SELECT \* FROM "memberships"`).
		WithArgs("order_x", "pay_x", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	m, err := store.FindByPayment("order_x", "pay_x")
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestGormMembershipStoreCreate(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormMembershipStore{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "memberships"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	m := &memberships.Membership{
		ReferenceID:       "M-ABCD1234",
		AudienceType:      string(memberships.AudienceStudent),
		Name:              "Asha",
		Email:             "asha@example.com",
		Phone:             "9999999999",
		AmountINR:         300,
		Currency:          memberships.Currency,
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		Status:            memberships.StatusActive,
	}
	require.NoError(t, store.Create(m))
	assert.Equal(t, uint(1), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
