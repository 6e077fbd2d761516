package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_IDString(t *testing.T) {
	assert.Equal(t, "", (*User)(nil).IDString())
	assert.Equal(t, "", (&User{}).IDString())
	assert.Equal(t, "42", (&User{ID: 42}).IDString())
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		u    *User
		want string
	}{
		{nil, ""},
		{&User{Username: "ada"}, "ada"},
		{&User{Name: "Ada", Surname: "Lovelace"}, "Ada Lovelace"},
		{&User{Name: "Ada", Surname: "Lovelace", Username: "ada"}, "Ada Lovelace (ada)"},
		{&User{Surname: "Lovelace", Username: "ada"}, "Lovelace (ada)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.u.DisplayName())
	}
}

func TestWorkspace_DecodesNestedFiles(t *testing.T) {
	body := `{
		"name": "demo", "description": "d", "is_active": true, "is_public": false,
		"files": [
			{"name": "src", "type": "folder", "children": [
				{"name": "main.py", "filename": "py", "type": "file", "size": 21}
			]},
			{"name": "README.md", "type": "file"}
		]
	}`

	var ws Workspace
	require.NoError(t, json.Unmarshal([]byte(body), &ws))

	require.Len(t, ws.Files, 2)
	assert.True(t, ws.IsActive)
	assert.True(t, ws.Files[0].IsFolder())
	assert.False(t, ws.Files[1].IsFolder())
	assert.Equal(t, int64(21), ws.Files[0].Children[0].Size)
}

func TestExecResult_Text(t *testing.T) {
	assert.Equal(t, "2\n", ExecResult{Output: "2\n"}.Text())
	assert.Equal(t, "boom", ExecResult{Error: "boom"}.Text())
	assert.Equal(t, "", ExecResult{}.Text())
}
