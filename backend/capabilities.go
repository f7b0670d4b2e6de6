package backend

import (
	"slices"

	"github.com/mwantia/vfsh/data/errors"
)

// BackendCapability represents a capability that a backend can provide.
type BackendCapability string

const (
	CapabilityEntries BackendCapability = "entries"
	CapabilityUsers   BackendCapability = "users"
	CapabilityContent BackendCapability = "content"
)

func GetAllCapabilities() *BackendCapabilities {
	return &BackendCapabilities{
		Capabilities: []BackendCapability{
			CapabilityEntries,
			CapabilityUsers,
			CapabilityContent,
		},
	}
}

// BackendCapabilities describes what a backend supports
type BackendCapabilities struct {
	Capabilities []BackendCapability `json:"capabilities"`
	// Upper bound for a single stored value, zero if unlimited
	MaxValueSize int64 `json:"max_value_size"`
}

// Contains checks if a capability is supported
func (bc *BackendCapabilities) Contains(cap BackendCapability) bool {
	return bc != nil && slices.Contains(bc.Capabilities, cap)
}

// Require returns an error unless b supports every capability in caps.
func Require(b Backend, caps ...BackendCapability) error {
	capabilities := b.GetCapabilities()
	for _, cap := range caps {
		if !capabilities.Contains(cap) {
			return errors.BackendUnsupported(b.Name(), string(cap))
		}
	}

	return nil
}
