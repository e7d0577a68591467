package fingerprint

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Version is reported in the host user agent. Overridden at build time with
// -ldflags "-X github.com/predatorx7/thoth/pkg/fingerprint.Version=...".
var Version = "dev"

// Static is an Environment backed by plain fields. Embedders use it for
// browser-like hosts whose values are known up front, and it is the shape
// read from config files.
type Static struct {
	AppCodeNameValue   string `yaml:"appCodeName" json:"appCodeName"`
	AppNameValue       string `yaml:"appName" json:"appName"`
	AppVersionValue    string `yaml:"appVersion" json:"appVersion"`
	CookieEnabledValue string `yaml:"cookieEnabled" json:"cookieEnabled"`
	GeolocationValue   string `yaml:"geolocation" json:"geolocation"`
	LanguageValue      string `yaml:"language" json:"language"`
	PlatformValue      string `yaml:"platform" json:"platform"`
	ProductValue       string `yaml:"product" json:"product"`
	UserAgentValue     string `yaml:"userAgent" json:"userAgent"`
	OSCPUValue         string `yaml:"oscpu" json:"oscpu"`
}

var _ Environment = (*Static)(nil)

func (s *Static) AppCodeName() string   { return s.AppCodeNameValue }
func (s *Static) AppName() string       { return s.AppNameValue }
func (s *Static) AppVersion() string    { return s.AppVersionValue }
func (s *Static) CookieEnabled() string { return s.CookieEnabledValue }
func (s *Static) Geolocation() string   { return s.GeolocationValue }
func (s *Static) Language() string      { return s.LanguageValue }
func (s *Static) Platform() string      { return s.PlatformValue }
func (s *Static) Product() string       { return s.ProductValue }
func (s *Static) UserAgent() string     { return s.UserAgentValue }
func (s *Static) OSCPU() string         { return s.OSCPUValue }

// Host describes the running Go process as an Environment, for forwarders
// embedded in services and CLIs rather than browsers.
func Host() *Static {
	appName := "thoth"
	if exe, err := os.Executable(); err == nil {
		appName = filepath.Base(exe)
	}

	return &Static{
		AppCodeNameValue: "thoth",
		AppNameValue:     appName,
		AppVersionValue:  Version,
		LanguageValue:    hostLanguage(),
		PlatformValue:    runtime.GOOS + "/" + runtime.GOARCH,
		ProductValue:     "Go",
		UserAgentValue:   fmt.Sprintf("thoth/%s (%s; %s) %s", Version, runtime.GOOS, runtime.GOARCH, runtime.Version()),
		OSCPUValue:       runtime.GOARCH,
	}
}

// hostLanguage turns a POSIX locale such as "en_US.UTF-8" into "en-US".
func hostLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}
