//go:build !windows

package osutils

import "github.com/PurpleSec/logx"

// EnsureFirewallRule is a stub for non-Windows platforms
func EnsureFirewallRule(port int, log logx.Log) error {
	log.Debug("Firewall: Automatic rule management is only supported on Windows")
	return nil
}
