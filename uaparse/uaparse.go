// Package uaparse adapts github.com/mssola/user_agent into the narrow
// shape expr.Str's Browser/BrowserVersion/OperatingSystem variants
// need.
package uaparse

import useragent "github.com/mssola/user_agent"

// UserAgent is the parsed form of a "user-agent" header value.
type UserAgent struct {
	inner *useragent.UserAgent
}

// Parse parses raw and returns nil if raw is empty.
func Parse(raw string) *UserAgent {
	if raw == "" {
		return nil
	}
	return &UserAgent{inner: useragent.New(raw)}
}

// Browser returns the browser name and version.
func (u *UserAgent) Browser() (name, version string) {
	return u.inner.Browser()
}

// OS returns the operating system string.
func (u *UserAgent) OS() string {
	return u.inner.OS()
}
