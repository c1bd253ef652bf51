package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

func GenerateSessionID() string {
	return uuid.New().String()
}

func GenerateSessionJWT(sessionID, secret string, jwtExpiryTime time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constvars.SessionJWTClaimKey:  sessionID,
		constvars.SessionJWTExpiryKey: time.Now().Add(jwtExpiryTime).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GenerateDigits draws a zero-padded decimal string of the given length uniformly
// from crypto/rand.
func GenerateDigits(length int) (string, error) {
	const digits = "0123456789"
	max := big.NewInt(int64(len(digits)))

	out := make([]byte, length)
	for i := range out {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = digits[num.Int64()]
	}

	return string(out), nil
}

// PlacerGroupIdentifierSuffix strips the issuer prefix from an HPI-O. Identifiers
// shorter than the prefix yield an empty suffix.
func PlacerGroupIdentifierSuffix(hpio string) string {
	if len(hpio) <= constvars.ServiceRequestHPIOPrefixLength {
		return ""
	}
	return hpio[constvars.ServiceRequestHPIOPrefixLength:]
}

// GeneratePlacerGroupIdentifier returns ORD<hpio suffix>-<5 random digits>.
// Uniqueness is probabilistic only; collisions are not detected.
func GeneratePlacerGroupIdentifier(hpio string) (string, error) {
	random, err := GenerateDigits(constvars.ServiceRequestPlacerGroupRandLen)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s-%s", constvars.ServiceRequestPlacerGroupPrefix, PlacerGroupIdentifierSuffix(hpio), random), nil
}
