package tools

import (
	"context"
	"strings"
)

const mockAPIName = "mock-api-tool"

// UserIDPrefix is the prefix every user id must carry.
const UserIDPrefix = "USR-"

// User is the record returned by the mock user API.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// UserLookup is the mock API's reply. A rejected id is reported in Error,
// not as a Go error, so the calling agent can read it and retry.
type UserLookup struct {
	Result *User  `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// mockAPITool fetches a user record from a stand-in internal API.
type mockAPITool struct{}

func (t *mockAPITool) Name() string { return mockAPIName }

func (t *mockAPITool) Description() string {
	return "Fetches sensitive user data from an internal API."
}

func (t *mockAPITool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"userId": map[string]interface{}{
				"type":        "string",
				"description": "The ID of the user to fetch.",
			},
		},
		"required": []string{"userId"},
	}
}

func (t *mockAPITool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	userID, err := requireString(t.Name(), args, "userId")
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(userID, UserIDPrefix) {
		return UserLookup{
			Error: `Validation Error: userId must strictly begin with the prefix "` + UserIDPrefix + `".`,
		}, nil
	}
	return UserLookup{
		Result: &User{ID: userID, Name: "Alice Agentic", Status: "active"},
	}, nil
}
