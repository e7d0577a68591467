package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// KeyParam is the query parameter that carries the API key. Forwarders add
// no auth headers, so the key travels inside the endpoint URL.
const KeyParam = "key"

// IssueAPIKey generates a specialized API key for the given clientID signed with the secret.
// Format: clientID.signature
func IssueAPIKey(clientID string, secret []byte) string {
	encodedSig := sign(clientID, secret)
	return fmt.Sprintf("%s.%s", clientID, encodedSig)
}

// VerifyAPIKey verifies the API key against the secret.
// Returns valid bool and the extracted clientID if valid.
func VerifyAPIKey(apiKey string, secret []byte) (bool, string, error) {
	parts := strings.Split(apiKey, ".")
	if len(parts) != 2 {
		return false, "", errors.New("invalid api key format")
	}

	clientID := parts[0]
	providedSig := parts[1]

	if hmac.Equal([]byte(providedSig), []byte(sign(clientID, secret))) {
		return true, clientID, nil
	}

	return false, "", errors.New("invalid signature")
}

// KeyFromURL returns the API key embedded in a request URL, or "".
func KeyFromURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Query().Get(KeyParam)
}

// EndpointWithKey returns endpoint with apiKey set as its key parameter,
// ready to be handed to a forwarder as its server URL.
func EndpointWithKey(endpoint, apiKey string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set(KeyParam, apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func sign(clientID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(clientID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
