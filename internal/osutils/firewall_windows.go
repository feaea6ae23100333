//go:build windows

package osutils

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/PurpleSec/logx"
	"golang.org/x/sys/windows"
)

// RuleName is the inbound firewall rule that opens the bridge port
const RuleName = "DeskAgent Command Bridge"

// IsAdmin checks if the current process has administrative privileges
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err = windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}
	return member
}

// EnsureFirewallRule makes sure an inbound TCP rule for port exists. When the
// process is not elevated the rule is created through an elevated PowerShell.
func EnsureFirewallRule(port int, log logx.Log) error {
	log.Debug("Firewall: Checking rule %q on port %d...", RuleName, port)

	out, err := exec.Command("netsh", "advfirewall", "firewall", "show", "rule", "name="+RuleName).CombinedOutput()
	if s := string(out); err == nil && strings.Contains(s, RuleName) {
		if strings.Contains(s, strconv.Itoa(port)) && strings.Contains(s, "Allow") {
			log.Debug("Firewall: Rule %q already allows port %d.", RuleName, port)
			return nil
		}
		log.Info("Firewall: Rule %q exists but does not match port %d, updating...", RuleName, port)
	} else {
		log.Info("Firewall: Rule %q not found, creating...", RuleName)
	}

	ps := fmt.Sprintf(
		"Remove-NetFirewallRule -DisplayName '%s' -ErrorAction SilentlyContinue; New-NetFirewallRule -DisplayName '%s' -Direction Inbound -LocalPort %d -Protocol TCP -Action Allow -Profile Private,Domain",
		RuleName, RuleName, port,
	)

	if !IsAdmin() {
		verb, _ := syscall.UTF16PtrFromString("runas")
		exe, _ := syscall.UTF16PtrFromString("powershell.exe")
		args, _ := syscall.UTF16PtrFromString(fmt.Sprintf("-NoProfile -WindowStyle Hidden -Command \"%s\"", ps))
		if err := windows.ShellExecute(0, verb, exe, args, nil, windows.SW_HIDE); err != nil {
			return fmt.Errorf("failed to launch elevated powershell: %w", err)
		}
		log.Info("Firewall: UAC elevation requested for rule %q.", RuleName)
		return nil
	}

	if out, err := exec.Command("powershell", "-NoProfile", "-Command", ps).CombinedOutput(); err != nil {
		return fmt.Errorf("failed to create firewall rule: %w (output: %s)", err, string(out))
	}
	log.Info("Firewall: Rule %q now allows port %d.", RuleName, port)
	return nil
}
