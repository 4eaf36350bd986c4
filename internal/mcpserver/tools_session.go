package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schematools/inferrer"
)

type sessionAddInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"Session to add the sample to; omit to start a new session"`
	Data      string `json:"data"                 jsonschema:"Inline JSON or YAML data content to accumulate"`
}

type sessionAddOutput struct {
	SessionID string `json:"session_id"`
	Samples   int    `json:"samples"`
	Schema    string `json:"schema"`
}

func handleSessionAdd(_ context.Context, _ *mcp.CallToolRequest, input sessionAddInput) (*mcp.CallToolResult, sessionAddOutput, error) {
	if input.Data == "" {
		return errResult(fmt.Errorf("data is required")), sessionAddOutput{}, nil
	}
	if err := checkInlineSize(input.Data); err != nil {
		return errResult(err), sessionAddOutput{}, nil
	}

	// Decode before touching the store so a malformed sample never
	// allocates a session.
	value, _, err := inferrer.DecodeValue([]byte(input.Data))
	if err != nil {
		return errResult(err), sessionAddOutput{}, nil
	}

	var id string
	var state *sessionState
	if input.SessionID != "" {
		var ok bool
		state, ok = sessions.get(input.SessionID)
		if !ok {
			return errResult(fmt.Errorf("unknown session %q; it may have expired or been evicted", input.SessionID)), sessionAddOutput{}, nil
		}
		id = input.SessionID
	} else {
		id, state, err = sessions.create()
		if err != nil {
			return errResult(err), sessionAddOutput{}, nil
		}
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	sourceName := fmt.Sprintf("session sample %d", state.samples+1)
	var result *inferrer.Result
	if state.schema == nil {
		result, err = inferrer.GenerateWithOptions(
			inferrer.WithValue(value),
			inferrer.WithSourceName(sourceName),
		)
	} else {
		result, err = inferrer.ExtendWithOptions(
			inferrer.WithBaseSchema(state.schema),
			inferrer.WithValue(value),
			inferrer.WithSourceName(sourceName),
		)
	}
	if err != nil {
		return errResult(err), sessionAddOutput{}, nil
	}

	state.schema = result.Schema
	state.samples++
	state.updatedAt = time.Now()

	doc, err := schemaJSON(state.schema)
	if err != nil {
		return errResult(err), sessionAddOutput{}, nil
	}

	return nil, sessionAddOutput{
		SessionID: id,
		Samples:   state.samples,
		Schema:    doc,
	}, nil
}

type sessionGetInput struct {
	SessionID string `json:"session_id" jsonschema:"Session to read"`
}

type sessionGetOutput struct {
	SessionID string `json:"session_id"`
	Samples   int    `json:"samples"`
	Schema    string `json:"schema"`
}

func handleSessionGet(_ context.Context, _ *mcp.CallToolRequest, input sessionGetInput) (*mcp.CallToolResult, sessionGetOutput, error) {
	if input.SessionID == "" {
		return errResult(fmt.Errorf("session_id is required")), sessionGetOutput{}, nil
	}

	state, ok := sessions.get(input.SessionID)
	if !ok {
		return errResult(fmt.Errorf("unknown session %q; it may have expired or been evicted", input.SessionID)), sessionGetOutput{}, nil
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.schema == nil {
		return errResult(fmt.Errorf("session %q has no samples", input.SessionID)), sessionGetOutput{}, nil
	}

	doc, err := schemaJSON(state.schema)
	if err != nil {
		return errResult(err), sessionGetOutput{}, nil
	}

	return nil, sessionGetOutput{
		SessionID: input.SessionID,
		Samples:   state.samples,
		Schema:    doc,
	}, nil
}
