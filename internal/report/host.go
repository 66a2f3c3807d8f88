package report

import (
	"os"
	"os/user"
	"runtime"
)

// HostSnapshot carries the facts about the generating machine written to the
// environment element.
type HostSnapshot struct {
	Platform    string
	OSVersion   string
	Cwd         string
	MachineName string
	User        string
	UserDomain  string
}

// CaptureHost reads a HostSnapshot from the running process. Facts that cannot
// be determined are left empty.
func CaptureHost() HostSnapshot {
	host := HostSnapshot{
		Platform:  runtime.GOOS,
		OSVersion: osRelease(),
	}
	if cwd, err := os.Getwd(); err == nil {
		host.Cwd = cwd
	}
	if name, err := os.Hostname(); err == nil {
		host.MachineName = name
	}
	if u, err := user.Current(); err == nil {
		host.User = u.Username
	} else {
		host.User = firstEnv("USER", "USERNAME")
	}

	host.UserDomain = firstEnv("USERDOMAIN")
	if host.UserDomain == "" {
		host.UserDomain = host.MachineName
	}
	return host
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
