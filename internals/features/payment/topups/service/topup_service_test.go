package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"courtclub_backend/internals/features/payment/topups/model"
	userModel "courtclub_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &model.TopupModel{}))
	return db
}

func seedPendingTopup(t *testing.T, db *gorm.DB, credits int) (uuid.UUID, string) {
	t.Helper()

	u := userModel.UserModel{
		UserName: "member-topup",
		Email:    uuid.NewString() + "@test.local",
		Password: "rahasia-banget",
	}
	require.NoError(t, db.Create(&u).Error)

	top := model.TopupModel{
		TopupUserID:      u.ID,
		TopupPackageCode: "CREDIT_10",
		TopupCredits:     credits,
		TopupAmountIDR:   100000,
		TopupStatus:      model.TopupStatusPending,
		TopupOrderID:     "TOPUP-" + uuid.NewString()[:12],
	}
	require.NoError(t, db.Create(&top).Error)
	return u.ID, top.TopupOrderID
}

func notification(orderID, status string) map[string]interface{} {
	return map[string]interface{}{
		"order_id":           orderID,
		"transaction_status": status,
		"fraud_status":       "accept",
	}
}

func TestHandleTopupNotification_SettlementGrantsOnce(t *testing.T) {
	db := newTestDB(t)
	userID, orderID := seedPendingTopup(t, db, 10)

	require.NoError(t, HandleTopupNotification(db, notification(orderID, "settlement")))

	var u userModel.UserModel
	require.NoError(t, db.First(&u, "id = ?", userID).Error)
	require.Equal(t, 10, u.Credits)

	var top model.TopupModel
	require.NoError(t, db.First(&top, "topup_order_id = ?", orderID).Error)
	require.Equal(t, model.TopupStatusPaid, top.TopupStatus)
	require.NotNil(t, top.TopupPaidAt)

	// Midtrans bisa mengirim ulang notifikasi yang sama — tidak boleh grant dobel
	require.NoError(t, HandleTopupNotification(db, notification(orderID, "settlement")))
	require.NoError(t, db.First(&u, "id = ?", userID).Error)
	require.Equal(t, 10, u.Credits)
}

func TestHandleTopupNotification_ExpireAndDeny(t *testing.T) {
	db := newTestDB(t)
	userID, orderID := seedPendingTopup(t, db, 10)

	require.NoError(t, HandleTopupNotification(db, notification(orderID, "expire")))

	var top model.TopupModel
	require.NoError(t, db.First(&top, "topup_order_id = ?", orderID).Error)
	require.Equal(t, model.TopupStatusExpired, top.TopupStatus)

	var u userModel.UserModel
	require.NoError(t, db.First(&u, "id = ?", userID).Error)
	require.Equal(t, 0, u.Credits)

	// Order kedua ditolak gateway
	_, orderID2 := seedPendingTopup(t, db, 10)
	require.NoError(t, HandleTopupNotification(db, notification(orderID2, "deny")))
	top = model.TopupModel{}
	require.NoError(t, db.First(&top, "topup_order_id = ?", orderID2).Error)
	require.Equal(t, model.TopupStatusFailed, top.TopupStatus)
}

func TestHandleTopupNotification_UnknownOrder(t *testing.T) {
	db := newTestDB(t)

	err := HandleTopupNotification(db, notification("TOPUP-tidak-ada", "settlement"))
	require.ErrorIs(t, err, ErrTopupNotFound)
}

func TestFindTopupPackage(t *testing.T) {
	pkg, ok := FindTopupPackage("CREDIT_25")
	require.True(t, ok)
	require.Equal(t, 25, pkg.Credits)

	_, ok = FindTopupPackage("CREDIT_999")
	require.False(t, ok)
}
