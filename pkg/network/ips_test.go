package network

import (
	"net"
	"strings"
	"testing"
)

// TestAvailableIPv4s tests host address enumeration
func TestAvailableIPv4s(t *testing.T) {
	addrs, err := AvailableIPv4s()
	if err != nil {
		t.Fatalf("AvailableIPv4s() error: %v", err)
	}

	for _, addr := range addrs {
		ip := net.ParseIP(addr.Addr)
		if ip == nil || ip.To4() == nil {
			t.Errorf("AvailableIPv4s() entry %q is not an IPv4 address", addr.Addr)
		}
		if addr.Interface == "" {
			t.Errorf("AvailableIPv4s() entry %q has no interface name", addr.Addr)
		}
	}
}

// TestInterfaceAddrString tests the display format
func TestInterfaceAddrString(t *testing.T) {
	addr := InterfaceAddr{Addr: "192.168.1.10", Interface: "eth0"}

	if got, want := addr.String(), "192.168.1.10 (eth0)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// TestFormatList tests --ips output assembly
func TestFormatList(t *testing.T) {
	tests := []struct {
		name  string
		addrs []InterfaceAddr
		want  string
	}{
		{
			name: "typical host",
			addrs: []InterfaceAddr{
				{Addr: "127.0.0.1", Interface: "lo"},
				{Addr: "192.168.1.10", Interface: "eth0"},
			},
			want: "127.0.0.1 (lo)\n192.168.1.10 (eth0)\n0.0.0.0 (all above)",
		},
		{
			name:  "no addresses still offers the catch-all",
			addrs: nil,
			want:  "0.0.0.0 (all above)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatList(tt.addrs); got != tt.want {
				t.Errorf("FormatList() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFormatListLineCount tests that every address contributes one line
func TestFormatListLineCount(t *testing.T) {
	addrs := []InterfaceAddr{
		{Addr: "10.0.0.1", Interface: "eth0"},
		{Addr: "10.0.0.2", Interface: "eth1"},
		{Addr: "10.0.0.3", Interface: "eth2"},
	}

	lines := strings.Split(FormatList(addrs), "\n")
	if len(lines) != len(addrs)+1 {
		t.Fatalf("FormatList() produced %d lines, want %d", len(lines), len(addrs)+1)
	}
	if last := lines[len(lines)-1]; last != "0.0.0.0 (all above)" {
		t.Errorf("FormatList() last line = %q, want the catch-all", last)
	}
}
