// utils/otp.go
package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"gopkg.in/gomail.v2"
)

// GenerateNumericOTP generates a 6-digit one-time password
func GenerateNumericOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ValidateOTPAttempts rate-limits OTP verification to 5 attempts per hour
func ValidateOTPAttempts(userID string, rdb *redis.Client) error {
	key := "otp_attempts:" + userID
	attempts, err := rdb.Incr(context.Background(), key).Result()
	if err != nil {
		return err
	}

	if attempts == 1 {
		rdb.Expire(context.Background(), key, 1*time.Hour)
	}

	if attempts > 5 {
		return errors.New("too many OTP attempts")
	}

	return nil
}

// SendPasswordResetEmail mails a reset OTP to the member
func SendPasswordResetEmail(toEmail, name, otp string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	if smtpHost == "" {
		return errors.New("SMTP_HOST not configured")
	}

	body := fmt.Sprintf("Dear %s,\n\nYour Viva4all password reset code is %s.\nThe code expires in 10 minutes. If you did not request a reset, ignore this email.\n\nBest regards,\nViva4all", name, otp)

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Viva4all Password Reset")
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send password reset email: %v", err)
		return err
	}
	return nil
}
