package discovery

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration describes how the service is announced to Consul.
// When GRPCHealthAddr is set Consul probes the gRPC health service, otherwise HTTPHealthURL.
type Registration struct {
	ServiceName    string
	ServiceID      string
	Address        string
	Port           int
	GRPCHealthAddr string
	HTTPHealthURL  string
}

// ConsulRegistrar registers and deregisters the service with a Consul agent.
type ConsulRegistrar struct {
	client *api.Client
	logger *zerolog.Logger
}

// NewConsulRegistrar creates a registrar talking to the agent at addr.
func NewConsulRegistrar(addr string, logger *zerolog.Logger) (*ConsulRegistrar, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return &ConsulRegistrar{client: client, logger: logger}, nil
}

// Register announces the service with a health check.
func (r *ConsulRegistrar) Register(reg Registration) error {
	if err := r.client.Agent().ServiceRegister(newServiceRegistration(reg)); err != nil {
		return fmt.Errorf("register service %q: %w", reg.ServiceID, err)
	}

	r.logger.Info().Str("service_id", reg.ServiceID).Msg("registered with consul")
	return nil
}

// Deregister removes the service from the agent.
func (r *ConsulRegistrar) Deregister(serviceID string) error {
	if err := r.client.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("deregister service %q: %w", serviceID, err)
	}

	r.logger.Info().Str("service_id", serviceID).Msg("deregistered from consul")
	return nil
}

func newServiceRegistration(reg Registration) *api.AgentServiceRegistration {
	check := &api.AgentServiceCheck{
		Interval:                       "10s",
		Timeout:                        "2s",
		DeregisterCriticalServiceAfter: "1m",
	}
	if reg.GRPCHealthAddr != "" {
		check.GRPC = reg.GRPCHealthAddr
	} else {
		check.HTTP = reg.HTTPHealthURL
	}

	return &api.AgentServiceRegistration{
		ID:      reg.ServiceID,
		Name:    reg.ServiceName,
		Address: reg.Address,
		Port:    reg.Port,
		Check:   check,
	}
}

// ServiceID builds a per-instance id from the service name and its listen address.
func ServiceID(serviceName, host string, port int) string {
	return serviceName + "-" + net.JoinHostPort(host, strconv.Itoa(port))
}
