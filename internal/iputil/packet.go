// Package iputil decodes the fixed IPv4 and UDP headers of packets read from a TUN device.
package iputil

import (
	"encoding/binary"
	"errors"
	"net/netip"
)

const (
	IPv4MinHeaderLen = 20
	UDPHeaderLen     = 8

	ProtocolUDP = 17
)

var (
	ErrPacketTooShort = errors.New("packet too short")
	ErrUnknownIP      = errors.New("unknown ip version")
	ErrBadHeaderLen   = errors.New("bad header length")
	ErrNotUDP         = errors.New("not a udp packet")
)

type IPv4Header struct {
	IHL        uint8
	TOS        uint8
	TotalLen   uint16
	ID         uint16
	Flags      uint8
	FragOffset uint16
	TTL        uint8
	Protocol   uint8
	Checksum   uint16
	Src        netip.Addr
	Dst        netip.Addr
}

// HeaderLen is the header length in bytes, options included.
func (h IPv4Header) HeaderLen() int {
	return int(h.IHL) * 4
}

type UDPHeader struct {
	SrcPort  uint16
	DstPort  uint16
	Length   uint16
	Checksum uint16
}

// ParseIPv4 decodes the IPv4 header at the start of pkt. TotalLen must fit in pkt.
func ParseIPv4(pkt []byte) (IPv4Header, error) {
	ver, err := ipVersion(pkt)
	if err != nil {
		return IPv4Header{}, err
	}
	if ver != 4 {
		return IPv4Header{}, ErrUnknownIP
	}
	if len(pkt) < IPv4MinHeaderLen {
		return IPv4Header{}, ErrPacketTooShort
	}
	h := IPv4Header{
		IHL:        pkt[0] & 0x0F,
		TOS:        pkt[1],
		TotalLen:   binary.BigEndian.Uint16(pkt[2:4]),
		ID:         binary.BigEndian.Uint16(pkt[4:6]),
		Flags:      pkt[6] >> 5,
		FragOffset: binary.BigEndian.Uint16(pkt[6:8]) & 0x1FFF,
		TTL:        pkt[8],
		Protocol:   pkt[9],
		Checksum:   binary.BigEndian.Uint16(pkt[10:12]),
		Src:        netip.AddrFrom4([4]byte(pkt[12:16])),
		Dst:        netip.AddrFrom4([4]byte(pkt[16:20])),
	}
	ihl := h.HeaderLen()
	if ihl < IPv4MinHeaderLen {
		return IPv4Header{}, ErrBadHeaderLen
	}
	if len(pkt) < ihl {
		return IPv4Header{}, ErrPacketTooShort
	}
	if int(h.TotalLen) < ihl {
		return IPv4Header{}, ErrBadHeaderLen
	}
	if len(pkt) < int(h.TotalLen) {
		return IPv4Header{}, ErrPacketTooShort
	}
	return h, nil
}

func ParseUDP(b []byte) (UDPHeader, error) {
	if len(b) < UDPHeaderLen {
		return UDPHeader{}, ErrPacketTooShort
	}
	h := UDPHeader{
		SrcPort:  binary.BigEndian.Uint16(b[0:2]),
		DstPort:  binary.BigEndian.Uint16(b[2:4]),
		Length:   binary.BigEndian.Uint16(b[4:6]),
		Checksum: binary.BigEndian.Uint16(b[6:8]),
	}
	if h.Length < UDPHeaderLen {
		return UDPHeader{}, ErrBadHeaderLen
	}
	if len(b) < int(h.Length) {
		return UDPHeader{}, ErrPacketTooShort
	}
	return h, nil
}

// ParseIPv4UDP decodes both headers and returns the UDP payload, bounded by
// the IPv4 total length and the UDP length field. The payload aliases pkt.
func ParseIPv4UDP(pkt []byte) (IPv4Header, UDPHeader, []byte, error) {
	ip, err := ParseIPv4(pkt)
	if err != nil {
		return IPv4Header{}, UDPHeader{}, nil, err
	}
	if ip.Protocol != ProtocolUDP {
		return ip, UDPHeader{}, nil, ErrNotUDP
	}
	if ip.FragOffset != 0 {
		// Only the first fragment carries the UDP header.
		return ip, UDPHeader{}, nil, ErrNotUDP
	}
	seg := pkt[ip.HeaderLen():ip.TotalLen]
	udp, err := ParseUDP(seg)
	if err != nil {
		return ip, UDPHeader{}, nil, err
	}
	return ip, udp, seg[UDPHeaderLen:udp.Length], nil
}

func ipVersion(pkt []byte) (int, error) {
	if len(pkt) == 0 {
		return 0, ErrPacketTooShort
	}
	return int(pkt[0] >> 4), nil
}
