package consul

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/data"
)

const (
	entriesKey = "entries"
	usersKey   = "users"
)

// ConsulBackend stores the entry and user lists in the HashiCorp Consul KV store.
//
// Each list is a single JSON encoded value below the configured prefix, so
// a save replaces the whole list at once. Consul KV has a 512KB limit per
// value which comfortably holds the default entry capacity.
type ConsulBackend struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	// Configuration
	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string `mapstructure:"address"`

	// Token for Consul ACL authentication (optional)
	Token string `mapstructure:"token"`

	// Datacenter to use (optional)
	Datacenter string `mapstructure:"datacenter"`

	// Namespace for Consul Enterprise (optional)
	Namespace string `mapstructure:"namespace"`

	// Prefix for all keys in Consul KV (default: "vfsh/")
	Prefix string `mapstructure:"prefix"`
}

// NewConsulBackend creates a new Consul-backed entry backend
func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "vfsh/"
	}
	if !strings.HasSuffix(config.Prefix, "/") {
		config.Prefix += "/"
	}

	// Create Consul client
	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*ConsulBackend) Name() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend
func (cb *ConsulBackend) Open(ctx context.Context) error {
	if _, err := cb.client.Status().Leader(); err != nil {
		return fmt.Errorf("failed to reach consul at '%s': %w", cb.config.Address, err)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend
func (cb *ConsulBackend) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend
func (cb *ConsulBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityEntries,
			backend.CapabilityUsers,
		},
		// Consul KV has a default limit of 512KB per value
		MaxValueSize: 512 * 1024,
	}
}

func (cb *ConsulBackend) LoadEntries(ctx context.Context) ([]*data.Entry, error) {
	entries := make([]*data.Entry, 0)
	if err := cb.get(ctx, entriesKey, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (cb *ConsulBackend) SaveEntries(ctx context.Context, entries []*data.Entry) error {
	return cb.put(ctx, entriesKey, entries)
}

func (cb *ConsulBackend) LoadUsers(ctx context.Context) ([]*data.User, error) {
	users := make([]*data.User, 0)
	if err := cb.get(ctx, usersKey, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// SaveUsers replaces the stored users. Only used to seed new installations.
func (cb *ConsulBackend) SaveUsers(ctx context.Context, users []*data.User) error {
	return cb.put(ctx, usersKey, users)
}

// Key returns the full KV key used for name.
func (cb *ConsulBackend) Key(name string) string {
	return cb.config.Prefix + name
}

func (cb *ConsulBackend) get(ctx context.Context, name string, v any) error {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	opts := (&api.QueryOptions{}).WithContext(ctx)
	pair, _, err := cb.kv.Get(cb.Key(name), opts)
	if err != nil {
		return err
	}

	// Missing key is an empty list
	if pair == nil {
		return nil
	}

	return json.Unmarshal(pair.Value, v)
}

func (cb *ConsulBackend) put(ctx context.Context, name string, v any) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if limit := cb.GetCapabilities().MaxValueSize; int64(len(value)) > limit {
		return fmt.Errorf("value for '%s' exceeds %d bytes", name, limit)
	}

	opts := (&api.WriteOptions{}).WithContext(ctx)
	_, err = cb.kv.Put(&api.KVPair{
		Key:   cb.Key(name),
		Value: value,
	}, opts)

	return err
}
