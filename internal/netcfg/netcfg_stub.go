//go:build !linux

package netcfg

func LinkInfo(name string) (Link, error) { return Link{}, ErrNotSupported }
