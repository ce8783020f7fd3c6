package discovery

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceRegistration_GRPCCheck(t *testing.T) {
	reg := newServiceRegistration(Registration{
		ServiceName:    "social-service",
		ServiceID:      "social-service-1",
		Address:        "10.0.0.5",
		Port:           5555,
		GRPCHealthAddr: "10.0.0.5:5556",
		HTTPHealthURL:  "http://10.0.0.5:5555/healthz",
	})

	assert.Equal(t, "social-service", reg.Name)
	assert.Equal(t, 5555, reg.Port)
	assert.Equal(t, "10.0.0.5:5556", reg.Check.GRPC)
	assert.Empty(t, reg.Check.HTTP)
}

func TestNewServiceRegistration_HTTPCheck(t *testing.T) {
	reg := newServiceRegistration(Registration{
		ServiceName:   "social-service",
		ServiceID:     "social-service-1",
		HTTPHealthURL: "http://10.0.0.5:5555/healthz",
	})

	assert.Equal(t, "http://10.0.0.5:5555/healthz", reg.Check.HTTP)
	assert.Empty(t, reg.Check.GRPC)
}

func TestServiceID(t *testing.T) {
	assert.Equal(t, "social-service-0.0.0.0:5555", ServiceID("social-service", "0.0.0.0", 5555))
}

func TestRegisterAndDeregister(t *testing.T) {
	var paths []string
	var registered map[string]any

	agent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/register") {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &registered)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer agent.Close()

	logger := zerolog.Nop()
	registrar, err := NewConsulRegistrar(strings.TrimPrefix(agent.URL, "http://"), &logger)
	require.NoError(t, err)

	require.NoError(t, registrar.Register(Registration{ServiceName: "social-service", ServiceID: "social-1", Port: 5555}))
	require.NoError(t, registrar.Deregister("social-1"))

	assert.Equal(t, []string{
		"PUT /v1/agent/service/register",
		"PUT /v1/agent/service/deregister/social-1",
	}, paths)
	assert.Equal(t, "social-1", registered["ID"])
	assert.Equal(t, "social-service", registered["Name"])
}
