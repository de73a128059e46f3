package testserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/ganot/activitylog/internal/domain/activity"
	"github.com/ganot/activitylog/internal/testserver"
	"github.com/ganot/activitylog/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func rpc(t *testing.T, ts *testserver.TestServer, method string, params any) transport.Response {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": 1, "method": method, "params": params})
	require.NoError(t, err)

	resp, err := ts.Client().Post(ts.Server.URL+"/rpc", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out transport.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRPC_RecordActivityEndToEnd(t *testing.T) {
	ts := testserver.New(t, "secret")

	out := rpc(t, ts, "record_activity", map[string]any{
		"user_id":     "u1",
		"user_name":   "Ana",
		"action":      "invoice_create",
		"target_type": "invoice",
		"target_id":   "F-2024-001",
		"details":     "Invoice issued",
	})
	require.Nil(t, out.Error)

	items, err := ts.Repo.LoadCollection(context.Background(), activity.DefaultCollection)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var stored activity.Record
	require.NoError(t, json.Unmarshal(items[0], &stored))
	require.Equal(t, "invoice_create", stored.Action)
	require.Equal(t, activity.IconFor("invoice_create"), stored.Icon)
	require.NotNil(t, stored.Details)
	require.Equal(t, "Invoice issued", *stored.Details)
	require.Nil(t, stored.TargetName)
	require.Nil(t, stored.ExtraData)
}

func TestRPC_InvalidParams(t *testing.T) {
	ts := testserver.New(t, "secret")

	out := rpc(t, ts, "record_activity", map[string]any{"user_name": "Ana", "action": "login"})
	require.NotNil(t, out.Error)
	require.Equal(t, transport.ErrInvalidParams, out.Error.Code)
}

func TestRPC_RequiresToken(t *testing.T) {
	ts := testserver.New(t, "secret")

	resp, err := http.Post(ts.Server.URL+"/rpc", "application/json",
		bytes.NewBufferString(`{"jsonrpc":"2.0","id":1,"method":"list_action_icons"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStreamableMCP_RecordAndMetrics(t *testing.T) {
	ts := testserver.New(t, "secret")
	ctx := context.Background()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: ts.Client(),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	for _, action := range []string{"login", "job_create", "logout"} {
		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "record_activity",
			Arguments: map[string]any{"user_id": "u1", "user_name": "Ana", "action": action},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)
	}

	items, err := ts.Repo.LoadCollection(ctx, activity.DefaultCollection)
	require.NoError(t, err)
	require.Len(t, items, 3)

	var newest activity.Record
	require.NoError(t, json.Unmarshal(items[0], &newest))
	require.Equal(t, "logout", newest.Action)

	resp, err := http.Get(ts.Server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "activitylog_records_appended_total 3")
	require.Contains(t, string(body), "activitylog_collection_size 3")
	require.Contains(t, string(body), `activitylog_load_recovered_total{reason="absent"} 1`)
}
