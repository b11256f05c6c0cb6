package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordLength     = errors.New("password length out of range")
)

// bcrypt 只使用前 72 字节
const maxPasswordBytes = 72

// PasswordCost 测试中可调低
var PasswordCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	if password == "" || len(password) > maxPasswordBytes {
		return "", ErrPasswordLength
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash 不匹配时返回 ErrInvalidCredentials
func CheckPasswordHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	return err
}
