// Package fingerprint extracts the fixed set of identifying fields that is
// attached to every forwarded envelope.
package fingerprint

import (
	"encoding/json"
	"reflect"
)

// Environment is the read-only view of the embedding host. Each accessor
// returns "" when the host has no value for it.
type Environment interface {
	AppCodeName() string
	AppName() string
	AppVersion() string
	CookieEnabled() string
	Geolocation() string
	Language() string
	Platform() string
	Product() string
	UserAgent() string
	OSCPU() string
}

// Fingerprint holds the ten fields copied from an Environment. The zero
// value means no fingerprint and encodes as {}.
type Fingerprint struct {
	AppCodeName   string `json:"appCodeName"`
	AppName       string `json:"appName"`
	AppVersion    string `json:"appVersion"`
	CookieEnabled string `json:"cookieEnabled"`
	Geolocation   string `json:"geolocation"`
	Language      string `json:"language"`
	Platform      string `json:"platform"`
	Product       string `json:"product"`
	UserAgent     string `json:"userAgent"`
	OSCPU         string `json:"oscpu"`
}

// Absent reports whether env carries no environment at all: a nil
// interface, or an interface holding a nil pointer, map or func.
func Absent(env Environment) bool {
	if env == nil {
		return true
	}
	v := reflect.ValueOf(env)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Collect copies the fingerprint fields out of env. An absent env, or one
// without a user agent, yields the empty fingerprint.
func Collect(env Environment) Fingerprint {
	if Absent(env) || env.UserAgent() == "" {
		return Fingerprint{}
	}
	return Fingerprint{
		AppCodeName:   env.AppCodeName(),
		AppName:       env.AppName(),
		AppVersion:    env.AppVersion(),
		CookieEnabled: env.CookieEnabled(),
		Geolocation:   env.Geolocation(),
		Language:      env.Language(),
		Platform:      env.Platform(),
		Product:       env.Product(),
		UserAgent:     env.UserAgent(),
		OSCPU:         env.OSCPU(),
	}
}

// IsEmpty reports whether no fields were collected.
func (f Fingerprint) IsEmpty() bool {
	return f == Fingerprint{}
}

// Map returns the fingerprint as a plain mapping. The empty fingerprint
// returns an empty map.
func (f Fingerprint) Map() map[string]string {
	if f.IsEmpty() {
		return map[string]string{}
	}
	return map[string]string{
		"appCodeName":   f.AppCodeName,
		"appName":       f.AppName,
		"appVersion":    f.AppVersion,
		"cookieEnabled": f.CookieEnabled,
		"geolocation":   f.Geolocation,
		"language":      f.Language,
		"platform":      f.Platform,
		"product":       f.Product,
		"userAgent":     f.UserAgent,
		"oscpu":         f.OSCPU,
	}
}

func (f Fingerprint) MarshalJSON() ([]byte, error) {
	if f.IsEmpty() {
		return []byte("{}"), nil
	}
	type fields Fingerprint
	return json.Marshal(fields(f))
}
