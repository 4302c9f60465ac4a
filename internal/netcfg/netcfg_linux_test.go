//go:build linux

package netcfg

import (
	"errors"
	"testing"
)

func TestLinkInfoLoopback(t *testing.T) {
	link, err := LinkInfo("lo")
	if err != nil {
		t.Skipf("netlink unavailable: %v", err)
	}
	if link.Name != "lo" {
		t.Fatalf("name = %q", link.Name)
	}
	if link.Index <= 0 {
		t.Fatalf("index = %d", link.Index)
	}
	if link.Type != "device" {
		t.Fatalf("type = %q, want device", link.Type)
	}
}

func TestLinkInfoMissing(t *testing.T) {
	if _, err := LinkInfo("lo"); err != nil {
		t.Skipf("netlink unavailable: %v", err)
	}
	_, err := LinkInfo("tunfdnope0")
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}
