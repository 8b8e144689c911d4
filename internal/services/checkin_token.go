package services

import (
	"crypto/rand"
	"math/big"
)

// Check-in ids look like "KQX-4821": three letters, a dash, four digits.
const (
	checkInIDLetters = 3
	checkInIDDigits  = 4
)

var (
	checkInIDLetterAlphabet = []byte("ABCDEFGHIJKLMNOPQRSTUVXWYZ")
	checkInIDDigitAlphabet  = []byte("0123456789")
)

func generateCheckInID() (string, error) {
	b := make([]byte, 0, checkInIDLetters+1+checkInIDDigits)
	var err error
	if b, err = appendRandom(b, checkInIDLetterAlphabet, checkInIDLetters); err != nil {
		return "", err
	}
	b = append(b, '-')
	if b, err = appendRandom(b, checkInIDDigitAlphabet, checkInIDDigits); err != nil {
		return "", err
	}
	return string(b), nil
}

func appendRandom(b, alphabet []byte, n int) ([]byte, error) {
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, err
		}
		b = append(b, alphabet[idx.Int64()])
	}
	return b, nil
}
