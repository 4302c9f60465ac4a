//go:build linux

package tun

import (
	"os"

	"golang.org/x/sys/unix"
)

var cloneDevicePath = "/dev/net/tun"

// Open creates the named TUN interface, or attaches to it if it already
// exists as a TUN device. An empty name lets the kernel assign one. The
// confirmed name is returned in Device.Name.
func Open(name string) (*Device, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	fd, err := unix.Open(cloneDevicePath, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &OpenError{Kind: ErrDeviceOpen, Name: name, Path: cloneDevicePath, Err: err}
	}
	opened := false
	defer func() {
		if !opened {
			_ = unix.Close(fd)
		}
	}()

	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return nil, &OpenError{Kind: ErrInterfaceConfig, Name: name, Path: cloneDevicePath, Err: err}
	}
	ifr.SetUint16(unix.IFF_TUN | unix.IFF_NO_PI)
	if err := unix.IoctlIfreq(fd, unix.TUNSETIFF, ifr); err != nil {
		return nil, &OpenError{Kind: ErrInterfaceConfig, Name: name, Path: cloneDevicePath, Err: err}
	}
	// Non-blocking so the runtime poller owns the fd and Close wakes a pending Read.
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, &OpenError{Kind: ErrInterfaceConfig, Name: name, Path: cloneDevicePath, Err: err}
	}

	actual := ifr.Name()
	opened = true
	return &Device{Name: actual, file: os.NewFile(uintptr(fd), actual)}, nil
}
