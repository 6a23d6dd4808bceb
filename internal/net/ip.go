package net

import (
	"net"

	"GraphicsStudio/internal/logging"
)

// OutboundIP returns the address other machines on the LAN should use to
// reach this host.
func OutboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; look at the interfaces instead.
		return interfaceIP()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

func interfaceIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		logging.Logger().Warn("listing interfaces", "err", err)
		return "127.0.0.1"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4().String()
			}
		}
	}
	logging.Logger().Warn("no LAN address found, join links will use loopback")
	return "127.0.0.1"
}
