// Package testutil provides shared test infrastructure for integration tests
// that require a LanguageTool container.
//
// Usage in TestMain:
//
//	func TestMain(m *testing.M) {
//	    tc := testutil.MustStartLanguageTool()
//	    defer tc.Terminate()
//	    baseURL = tc.BaseURL
//	    os.Exit(m.Run())
//	}
package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainer wraps a testcontainers container with the base URL for
// connecting to it.
type TestContainer struct {
	Container testcontainers.Container
	BaseURL   string
}

// MustStartLanguageTool starts a LanguageTool server container and waits for
// its HTTP API to come up. Calls os.Exit(1) on failure (suitable for TestMain).
func MustStartLanguageTool() *TestContainer {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "erikvl87/languagetool:6.4",
		ExposedPorts: []string{"8010/tcp"},
		Env: map[string]string{
			"Java_Xms": "256m",
			"Java_Xmx": "1g",
		},
		WaitingFor: wait.ForHTTP("/v2/languages").
			WithPort("8010/tcp").
			WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "testutil: failed to start container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testutil: failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := container.MappedPort(ctx, "8010")
	if err != nil {
		fmt.Fprintf(os.Stderr, "testutil: failed to get container port: %v\n", err)
		os.Exit(1)
	}

	return &TestContainer{
		Container: container,
		BaseURL:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
}

// Terminate stops and removes the container.
func (tc *TestContainer) Terminate() {
	_ = tc.Container.Terminate(context.Background())
}

// TestLogger returns a logger configured for test output (warns only).
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
