/*
Package network enumerates the host addresses the DNS server can bind to.

The package backs the --ips flag: it walks the host's interfaces, collects
every IPv4 address with the interface it lives on, and formats the list the
way the flag prints it, ending with the 0.0.0.0 shorthand for binding to
everything. Loopback addresses are included on purpose; binding the DNS
server to 127.0.0.1 is the common single-machine setup.

# Usage

	addrs, err := network.AvailableIPv4s()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(network.FormatList(addrs))

Output:

	127.0.0.1 (lo)
	192.168.1.10 (eth0)
	172.17.0.1 (docker0)
	0.0.0.0 (all above)

Only IPv4 addresses are listed. The DNS listener binds a single socket and
the daemon's transport defaults assume IPv4; anyone binding an IPv6 address
knows it without being told.
*/
package network
