//go:build linux || darwin || freebsd || netbsd || openbsd

package report

import "golang.org/x/sys/unix"

func osRelease() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}
