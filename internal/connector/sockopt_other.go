//go:build !linux

package connector

import "errors"

var errSockoptUnsupported = errors.New("mark and interface options are only supported on linux")

func setMark(fd uintptr, mark int) error { return errSockoptUnsupported }

func bindToDevice(fd uintptr, iface string) error { return errSockoptUnsupported }
