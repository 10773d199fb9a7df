package network

import (
	"fmt"
	"net"
	"strings"
)

// InterfaceAddr is one IPv4 address bound to a host interface.
type InterfaceAddr struct {
	Addr      string
	Interface string
}

func (a InterfaceAddr) String() string {
	return fmt.Sprintf("%s (%s)", a.Addr, a.Interface)
}

// AvailableIPv4s lists every IPv4 address on the host, loopback included,
// in interface order. These are the addresses the DNS server can bind to.
func AvailableIPv4s() ([]InterfaceAddr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	var addrs []InterfaceAddr
	for _, iface := range ifaces {
		ifaceAddrs, err := iface.Addrs()
		if err != nil {
			return nil, fmt.Errorf("failed to list addresses for %s: %w", iface.Name, err)
		}

		for _, addr := range ifaceAddrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipNet.IP.To4()
			if ip4 == nil {
				continue
			}
			addrs = append(addrs, InterfaceAddr{Addr: ip4.String(), Interface: iface.Name})
		}
	}

	return addrs, nil
}

// FormatList renders addresses one per line for --ips output, with the
// bind-everything shorthand appended.
func FormatList(addrs []InterfaceAddr) string {
	lines := make([]string, 0, len(addrs)+1)
	for _, addr := range addrs {
		lines = append(lines, addr.String())
	}
	lines = append(lines, "0.0.0.0 (all above)")
	return strings.Join(lines, "\n")
}
