package service

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// defaultPasswordFromDOB derives the initial password handed to newly
// provisioned accounts: the decimal sum of day, calendar month and year of
// the date of birth.
func defaultPasswordFromDOB(dob time.Time) string {
	return strconv.Itoa(dob.Day() + int(dob.Month()) + dob.Year())
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
