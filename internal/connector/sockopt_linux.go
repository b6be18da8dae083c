//go:build linux

package connector

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func setMark(fd uintptr, mark int) error {
	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_MARK, mark); err != nil {
		return fmt.Errorf("failed to set SO_MARK: %w", err)
	}
	return nil
}

func bindToDevice(fd uintptr, iface string) error {
	if err := unix.BindToDevice(int(fd), iface); err != nil {
		return fmt.Errorf("failed to bind to interface %s: %w", iface, err)
	}
	return nil
}
