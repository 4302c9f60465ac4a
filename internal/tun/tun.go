// Package tun opens Linux TUN interfaces and hands back the descriptor.
package tun

import (
	"errors"
	"fmt"
	"os"
)

// NameMaxLen is the longest interface name the kernel accepts (IFNAMSIZ minus the terminator).
const NameMaxLen = 15

var (
	ErrInvalidName     = errors.New("invalid interface name")
	ErrDeviceOpen      = errors.New("open tun control device")
	ErrInterfaceConfig = errors.New("configure tun interface")
	ErrNotSupported    = errors.New("tun not supported on this platform")
)

// OpenError reports a failed Open after name validation passed.
// Kind is ErrDeviceOpen or ErrInterfaceConfig; Err is the OS error.
type OpenError struct {
	Kind error
	Name string
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	if e.Kind == ErrDeviceOpen {
		return fmt.Sprintf("%v %s: %v", e.Kind, e.Path, e.Err)
	}
	name := e.Name
	if name == "" {
		name = "(auto)"
	}
	return fmt.Sprintf("%v %s: %v", e.Kind, name, e.Err)
}

func (e *OpenError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Device is an open TUN interface in IP mode without packet information headers.
// The caller owns it and must Close it.
type Device struct {
	Name string
	file *os.File
}

// File returns the underlying descriptor wrapper.
func (d *Device) File() *os.File {
	return d.file
}

func (d *Device) Read(buf []byte) (int, error) {
	return d.file.Read(buf)
}

func (d *Device) Write(buf []byte) (int, error) {
	return d.file.Write(buf)
}

func (d *Device) Close() error {
	return d.file.Close()
}

// ValidateName applies the kernel's interface name rules. The empty name is
// valid and asks the kernel to pick one.
func ValidateName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > NameMaxLen {
		return fmt.Errorf("%w: %q is %d bytes, max %d", ErrInvalidName, name, len(name), NameMaxLen)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for i := 0; i < len(name); i++ {
		if badNameByte(name[i]) {
			return fmt.Errorf("%w: %q has forbidden byte %#x at %d", ErrInvalidName, name, name[i], i)
		}
	}
	return nil
}

// badNameByte matches the kernel's per-byte check, where isspace also covers 0xa0.
func badNameByte(b byte) bool {
	switch b {
	case '/', ':', 0, ' ', '\t', '\n', '\v', '\f', '\r', 0xa0:
		return true
	}
	return false
}
