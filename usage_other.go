// Copyright (c) 2012 VMware, Inc.

//go:build !(darwin || freebsd || linux || netbsd || openbsd)
// +build !darwin,!freebsd,!linux,!netbsd,!openbsd

package tower

func (self *ProcUsage) Get() error {
	return ErrNotImplemented
}
