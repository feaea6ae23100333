// Package identity provides the machine id and pairing code the UI shell
// uses to address this agent.
package identity

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/denisbrodbeck/machineid"
)

// AppID salts the machine id so it is not the raw OS identifier
const AppID = "deskagent"

// Identity describes this agent instance
type Identity struct {
	MachineID      string `json:"machine_id"`
	ConnectionCode string `json:"connection_code"`
}

// New reads the protected machine id and generates a fresh connection code
func New() (*Identity, error) {
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		return nil, fmt.Errorf("read machine id: %w", err)
	}
	code, err := NewCode()
	if err != nil {
		return nil, err
	}
	return &Identity{MachineID: id, ConnectionCode: code}, nil
}

// NewCode returns a random six digit code in [100000, 999999]
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate connection code: %w", err)
	}
	return fmt.Sprintf("%06d", 100000+n.Int64()), nil
}
