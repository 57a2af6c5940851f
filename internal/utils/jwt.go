package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ValidateTokenAccountID verifies the token signature with signKey and
// returns the account identifier carried in the subject claim.
//
// Token issuance is outside this module; the server only needs to verify
// tokens minted by the surrounding auth system and scope requests to the
// account they name.
func ValidateTokenAccountID(tokenString, signKey string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	accountID, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if accountID == "" {
		return "", errors.New("empty subject error")
	}

	return accountID, nil
}
