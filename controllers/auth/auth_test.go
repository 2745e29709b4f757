package authController

import (
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.OTP{}))

	database.Database = database.DbInstance{Db: db}
	return db
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupAuthTestDb(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpass123"), config.AppConfig.SaltRound)
	require.NoError(t, err)
	user := models.User{FullName: "Sam Student", Email: "sam@example.com", Role: "STUDENT", Password: string(hashed)}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Post("/forgot", func(c *fiber.Ctx) error {
		c.Locals("validatedForgotPassword", &struct {
			Email string `json:"email"`
		}{Email: user.Email})
		return ForgotPassword(c)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/forgot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A 6-digit reset code is stored for the user
	var otp models.OTP
	require.NoError(t, db.Where("user_id = ? AND is_used = ?", user.ID, false).First(&otp).Error)
	require.Len(t, otp.Code, 6)
	for _, ch := range otp.Code {
		assert.True(t, ch >= '0' && ch <= '9')
	}

	resetApp := func(token, password string) *fiber.App {
		a := fiber.New()
		a.Post("/reset", func(c *fiber.Ctx) error {
			c.Locals("validatedResetPassword", &struct {
				Token    string `json:"token"`
				Password string `json:"password"`
			}{Token: token, Password: password})
			return ResetPassword(c)
		})
		return a
	}

	// A wrong code is rejected
	resp, err = resetApp("000000x", "newpass123").Test(httptest.NewRequest("POST", "/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The issued code resets the password and is consumed
	resp, err = resetApp(otp.Code, "newpass123").Test(httptest.NewRequest("POST", "/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpass123")))

	var usedOtp models.OTP
	require.NoError(t, db.First(&usedOtp, otp.ID).Error)
	assert.True(t, usedOtp.IsUsed)
}
