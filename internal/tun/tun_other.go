//go:build !linux

package tun

func Open(name string) (*Device, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return nil, ErrNotSupported
}
