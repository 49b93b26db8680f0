package ip

import (
	"encoding/hex"
	"net"
)

// localIPv4 returns the first non-loopback IPv4 address of the host,
// or nil when none is up.
func localIPv4() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4
		}
	}
	return nil
}

func IPv4() string {
	if v4 := localIPv4(); v4 != nil {
		return v4.String()
	}
	return ""
}

// IPv4Hex is the 8-char hex form used inside generated log ids.
func IPv4Hex() string {
	if v4 := localIPv4(); v4 != nil {
		return hex.EncodeToString(v4)
	}
	return "00000000"
}
