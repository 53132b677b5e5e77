package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/synthmc"
	"github.com/aretw0/synthmc/internal/testutils"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *testutils.RecordingHost) {
	t.Helper()
	host := testutils.NewRecordingHost()
	return NewServer(synthmc.New(synthmc.WithHost(host)), "test"), host
}

func callArgs(tokens ...string) map[string]interface{} {
	raw := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		raw[i] = tok
	}
	return map[string]interface{}{"args": raw}
}

func TestTokens(t *testing.T) {
	args := map[string]interface{}{"args": []interface{}{"-top", 42, "cpu"}}
	assert.Equal(t, []string{"-top", "cpu"}, tokens(args))
	assert.Empty(t, tokens(nil))
}

func TestHandleDescribe(t *testing.T) {
	s, host := newTestServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Name = "describe_pipeline"
	req.Params.Arguments = callArgs("-nofsm")

	res, err := s.handleDescribe(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "fsm       (unless -nofsm) [skipped]")
	assert.Empty(t, host.Commands())
}

func TestHandleDescribe_BadOptions(t *testing.T) {
	s, _ := newTestServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = callArgs("-techlib")

	res, err := s.handleDescribe(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandlePlan(t *testing.T) {
	s, _ := newTestServer(t)

	resp, err := s.handlePlan(context.Background(), mcp.CallToolRequest{}, callArgs("-run", ":coarse"))
	require.NoError(t, err)
	require.Len(t, resp.Stages, 2)
	assert.Equal(t, "begin", resp.Stages[0].Label)

	_, err = s.handlePlan(context.Background(), mcp.CallToolRequest{}, callArgs("-run", "nope"))
	assert.ErrorIs(t, err, domain.ErrRange)
}

func TestHandleSynthesize(t *testing.T) {
	s, host := newTestServer(t)

	resp, err := s.handleSynthesize(context.Background(), mcp.CallToolRequest{}, callArgs("-run", "check"))
	require.NoError(t, err)
	require.NotNil(t, resp.Report)
	assert.Empty(t, resp.Error)
	assert.Equal(t, []string{"stat", "check"}, host.Commands())

	host.FailOn["stat"] = true
	resp, err = s.handleSynthesize(context.Background(), mcp.CallToolRequest{}, callArgs("-run", "check"))
	require.NoError(t, err)
	assert.Contains(t, resp.Error, "stat")
	assert.Equal(t, domain.StatusAborted, resp.Report.Status)

	_, err = s.handleSynthesize(context.Background(), mcp.CallToolRequest{}, callArgs("-top"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestReadStages(t *testing.T) {
	s, _ := newTestServer(t)

	contents, err := s.readStages(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, StagesURI, text.URI)

	var stages []domain.Stage
	require.NoError(t, json.Unmarshal([]byte(text.Text), &stages))
	assert.Len(t, stages, 4)
}
