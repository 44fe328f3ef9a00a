package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/models"
)

const (
	uidLength   = 11
	uidLetters  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	uidAlphabet = uidLetters + "0123456789"
)

var uidPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]{10}$`)

// GenerateUid returns a random identifier of 11 alphanumeric characters starting with a letter.
func GenerateUid() string {
	uid := make([]byte, uidLength)
	uid[0] = uidLetters[randomIndex(len(uidLetters))]
	for i := 1; i < uidLength; i++ {
		uid[i] = uidAlphabet[randomIndex(len(uidAlphabet))]
	}
	return string(uid)
}

func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand failure: %v", err))
	}
	return int(n.Int64())
}

func IsValidUid(uid string) bool {
	return uidPattern.MatchString(uid)
}

func ValidateUid(uid string) error {
	if !IsValidUid(uid) {
		return errors.Wrapf(models.BadParameterError, "'%s' is not a valid uid", uid)
	}
	return nil
}
