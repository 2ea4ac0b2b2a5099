package services

import (
	"crypto/rand"
	"math/big"
)

const credentialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CredentialLength is the default size of generated voter credentials.
const CredentialLength = 10

// GenerateCredential produces a random alphanumeric credential. Voter
// credentials are delivered by mail and are regenerable at any time, so
// collision resistance matters less than unpredictability.
func GenerateCredential(length int) (string, error) {
	if length <= 0 {
		length = CredentialLength
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(credentialAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = credentialAlphabet[n.Int64()]
	}
	return string(out), nil
}
