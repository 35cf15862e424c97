package auth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Email-verification links carry a short-lived signed token so a user can be
// verified without logging in. Signed with VERIFY_SECRET, not the access-token
// secret, so leaking one cannot forge the other.

const verificationTTL = 180 * time.Minute

func SignVerification(userID uint) (string, error) {
	key := []byte(os.Getenv("VERIFY_SECRET"))
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"pur": "email_verify",
		"exp": time.Now().Add(verificationTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// VerifySignature validates a verification token and returns the user id it
// was issued for.
func VerifySignature(tokenStr string) (uint, error) {
	key := []byte(os.Getenv("VERIFY_SECRET"))
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return 0, errors.New("invalid or expired signature")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	if pur, _ := mapc["pur"].(string); pur != "email_verify" {
		return 0, errors.New("wrong token purpose")
	}
	sub, _ := mapc["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errors.New("invalid subject")
	}
	return uint(id), nil
}
