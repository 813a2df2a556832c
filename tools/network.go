package tools

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/bits"
	"net/netip"
	"strings"
)

// ipv4Subnet describes the network of an IPv4 CIDR block.
func ipv4Subnet(ctx context.Context, args map[string]any) (any, error) {
	raw, err := stringArg(args, "cidr")
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "/") {
		raw += "/32"
	}
	prefix, err := netip.ParsePrefix(raw)
	if err != nil || !prefix.Addr().Is4() {
		return nil, invalidArg("cidr must be an IPv4 CIDR block")
	}

	ones := prefix.Bits()
	mask := uint32(0)
	if ones > 0 {
		mask = ^uint32(0) << (32 - ones)
	}
	network := toUint32(prefix.Masked().Addr())
	broadcast := network | ^mask
	total := uint64(1) << (32 - ones)

	out := map[string]any{
		"network":    fromUint32(network).String(),
		"mask":       fromUint32(mask).String(),
		"maskBits":   ones,
		"wildcard":   fromUint32(^mask).String(),
		"broadcast":  fromUint32(broadcast).String(),
		"totalHosts": total,
		"class":      ipv4Class(network),
	}
	switch {
	case ones == 32:
		out["firstHost"] = fromUint32(network).String()
		out["lastHost"] = fromUint32(network).String()
		out["usableHosts"] = uint64(1)
	case ones == 31:
		out["firstHost"] = fromUint32(network).String()
		out["lastHost"] = fromUint32(broadcast).String()
		out["usableHosts"] = uint64(2)
	default:
		out["firstHost"] = fromUint32(network + 1).String()
		out["lastHost"] = fromUint32(broadcast - 1).String()
		out["usableHosts"] = total - 2
	}
	return out, nil
}

// ipv4Convert renders an IPv4 address in its other common notations.
func ipv4Convert(ctx context.Context, args map[string]any) (any, error) {
	raw, err := stringArg(args, "address")
	if err != nil {
		return nil, err
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil || !addr.Is4() {
		return nil, invalidArg("address must be an IPv4 address")
	}

	v := toUint32(addr)
	a := addr.As4()
	return map[string]any{
		"decimal":     v,
		"hexadecimal": fmt.Sprintf("%08X", v),
		"binary":      fmt.Sprintf("%032b", v),
		"ipv6":        netip.AddrFrom16(addr.As16()).String(),
		"ipv6Short":   fmt.Sprintf("::ffff:%02x%02x:%02x%02x", a[0], a[1], a[2], a[3]),
		"leadingOnes": bits.LeadingZeros32(^v),
	}, nil
}

func toUint32(addr netip.Addr) uint32 {
	a := addr.As4()
	return binary.BigEndian.Uint32(a[:])
}

func fromUint32(v uint32) netip.Addr {
	var a [4]byte
	binary.BigEndian.PutUint32(a[:], v)
	return netip.AddrFrom4(a)
}

func ipv4Class(v uint32) string {
	first := v >> 24
	switch {
	case first < 128:
		return "A"
	case first < 192:
		return "B"
	case first < 224:
		return "C"
	case first < 240:
		return "D"
	default:
		return "E"
	}
}
