package utils

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestCode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCode    string
		wantDisplay string
	}{
		{"quoted display", `12345 "Chest X-ray"`, "12345", "Chest X-ray"},
		{"display with spaces", `399208008 "Plain chest X-ray"`, "399208008", "Plain chest X-ray"},
		{"unquoted display", `12345 Chest X-ray`, "12345", "Chest X-ray"},
		{"code only", `12345`, "12345", ""},
		{"surrounding whitespace", `  12345 "CT head"  `, "12345", "CT head"},
		{"empty quotes kept", `12345 ""`, "12345", `""`},
		{"one quote layer removed", `12345 ""nested""`, "12345", `"nested"`},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, display := ParseRequestCode(tt.input)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantDisplay, display)
		})
	}
}

type decodeTarget struct {
	PatientID string `mapstructure:"patient_id"`
	Priority  string `mapstructure:"priority"`
	Ignored   string `mapstructure:"-"`
}

func TestDecodeForm(t *testing.T) {
	values := url.Values{
		"patient_id": {"  pat-1 ", "pat-2"},
		"priority":   {"urgent"},
		"unknown":    {"x"},
		"Ignored":    {"should not land"},
	}

	target := new(decodeTarget)
	require.NoError(t, DecodeForm(values, target))

	assert.Equal(t, "pat-1", target.PatientID)
	assert.Equal(t, "urgent", target.Priority)
	assert.Empty(t, target.Ignored)
}

func TestSessionJWTRoundTrip(t *testing.T) {
	token, err := GenerateSessionJWT("sess-1", "secret", time.Hour)
	require.NoError(t, err)

	sessionID, err := ParseSessionJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)

	_, err = ParseSessionJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateSessionJWT("sess-1", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseSessionJWT(expired, "secret")
	assert.Error(t, err)
}
