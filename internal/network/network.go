// Package network provides address discovery for the command bridge.
package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// GetLocalIPs returns all available local IPv4 addresses
func GetLocalIPs() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var ips []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue // interface down
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip = ip.To4(); ip == nil {
				continue
			}
			ips = append(ips, ip.String())
		}
	}
	return ips, nil
}

// Addresses returns the host:port pairs the bridge can be reached on when
// bound to listen. A wildcard bind expands to every local IPv4 address.
func Addresses(listen string, port int) []string {
	p := strconv.Itoa(port)
	ip := net.ParseIP(listen)
	if ip == nil || !ip.IsUnspecified() {
		return []string{net.JoinHostPort(listen, p)}
	}
	ips, err := GetLocalIPs()
	if err != nil || len(ips) == 0 {
		return []string{net.JoinHostPort("127.0.0.1", p)}
	}
	out := make([]string, 0, len(ips)+1)
	out = append(out, net.JoinHostPort("127.0.0.1", p))
	for _, v := range ips {
		out = append(out, net.JoinHostPort(v, p))
	}
	return out
}

// Answering reports whether a bridge already answers on addr
func Answering(ctx context.Context, addr string) bool {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s/health", addr), nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
