package util

import "golang.org/x/crypto/bcrypt"

// GenerateEncrypt hashes an account password for storage. The identity
// provider keeps only the hash, never the plain text.
func GenerateEncrypt(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

// ComparePassword checks a sign-in attempt against the stored hash.
func ComparePassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
