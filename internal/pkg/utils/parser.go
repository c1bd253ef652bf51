package utils

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"
)

var enclosingQuotes = regexp.MustCompile(`^"(.+)"$`)

// ParseRequestCode splits a `<code> "<display>"` form value on its first space and
// removes one layer of double quotes around the display.
func ParseRequestCode(requestCode string) (code, display string) {
	parts := strings.SplitN(strings.TrimSpace(requestCode), constvars.ServiceRequestRequestCodeSplitter, 2)
	code = parts[0]
	if len(parts) < 2 {
		return code, ""
	}
	display = strings.TrimSpace(parts[1])
	return code, enclosingQuotes.ReplaceAllString(display, "$1")
}

// DecodeForm maps submitted form values onto a struct tagged with `mapstructure`.
// Only the first value of repeated fields is kept.
func DecodeForm(values url.Values, target interface{}) error {
	flat := make(map[string]string, len(values))
	for key := range values {
		flat[key] = strings.TrimSpace(values.Get(key))
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(flat)
}

func ParseSessionJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sessionID, ok := claims[constvars.SessionJWTClaimKey].(string); ok && sessionID != "" {
			return sessionID, nil
		}
	}

	return "", errors.New(constvars.ErrDevAuthTokenInvalidOrExpired)
}
