// Copyright (c) 2012 VMware, Inc.

//go:build darwin || freebsd || linux || netbsd || openbsd
// +build darwin freebsd linux netbsd openbsd

package tower

import (
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

func (self *ProcUsage) Get() error {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return err
	}

	self.User = time.Duration(ru.Utime.Nano())
	self.Sys = time.Duration(ru.Stime.Nano())

	// darwin reports bytes, the others kilobytes
	self.MaxRSS = uint64(ru.Maxrss)
	if runtime.GOOS != "darwin" {
		self.MaxRSS *= 1024
	}

	return nil
}
