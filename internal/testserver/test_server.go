package testserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ganot/activitylog/internal/domain/activity"
	"github.com/ganot/activitylog/internal/mcp"
	"github.com/ganot/activitylog/internal/metrics"
	"github.com/ganot/activitylog/internal/sqlite"
	"github.com/ganot/activitylog/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// TestServer runs the full HTTP stack over an in-memory SQLite store.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Repo     *sqlite.CollectionRepository
	Service  *activity.Service
	Registry *prometheus.Registry
	Token    string
}

func New(t *testing.T, token string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(reg, "activitylog")
	require.NoError(t, err)

	repo := sqlite.NewCollectionRepository(db)
	svc := activity.NewService(repo, nil, activity.WithMetrics(recorder))

	mcpServer := mcp.NewServer(mcp.Config{Activity: svc})
	streamable := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	router := transport.NewServer(mcp.NewHandler(svc), transport.Options{
		Auth:    transport.AuthMiddleware(transport.StaticToken{Token: token}),
		MCP:     streamable,
		Metrics: metrics.Handler(reg),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Repo:     repo,
		Service:  svc,
		Registry: reg,
		Token:    token,
	}
}

// Client returns an HTTP client that sends the bearer token on every request.
func (ts *TestServer) Client() *http.Client {
	return &http.Client{Transport: bearerTransport{token: ts.Token, base: http.DefaultTransport}}
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}
