package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("API_KEY").Valid())
	assert.False(t, Category("login").Valid())
}

func TestCipheredTriple_CompleteAndEmpty(t *testing.T) {
	assert.True(t, CipheredTriple{}.Empty())
	assert.False(t, CipheredTriple{}.Complete())

	partial := CipheredTriple{Ciphertext: "a", IV: "b"}
	assert.False(t, partial.Empty())
	assert.False(t, partial.Complete())

	full := CipheredTriple{Ciphertext: "a", IV: "b", Salt: "c"}
	assert.True(t, full.Complete())
}

func TestSecretPayload_WireKeys(t *testing.T) {
	project := "p-1"
	body, err := json.Marshal(SecretPayload{
		Name:           "github",
		Category:       CategoryToken,
		CipheredTriple: CipheredTriple{Ciphertext: "ct", IV: "iv", Salt: "salt"},
		ProjectID:      &project,
	})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "ct", raw["encrypted_value"])
	assert.Equal(t, "iv", raw["iv"])
	assert.Equal(t, "salt", raw["salt"])
	assert.Equal(t, "p-1", raw["project_id"])
	assert.Equal(t, "token", raw["category"])
	assert.NotContains(t, raw, "id")
}

func TestTOTPStatus_WireKeys(t *testing.T) {
	body, err := json.Marshal(TOTPStatus{Enabled: true, SetupRequired: false})
	require.NoError(t, err)
	assert.JSONEq(t, `{"enabled":true,"setupRequired":false,"verified":false}`, string(body))
}

func TestDegradedTOTPStatus(t *testing.T) {
	assert.Equal(t, TOTPStatus{Verified: true}, DegradedTOTPStatus())
}

func TestSecret_InProject(t *testing.T) {
	id := "p-1"
	assert.True(t, Secret{ProjectID: &id}.InProject("p-1"))
	assert.False(t, Secret{ProjectID: &id}.InProject("p-2"))
	assert.False(t, Secret{}.InProject("p-1"))
}

func TestAppBuildInfo_DefaultsToNA(t *testing.T) {
	info := NewAppBuildInfo("v1.2.0", "", "abc123")
	assert.Equal(t, VersionResponse{Version: "v1.2.0", Date: "N/A", Commit: "abc123"}, info.Response())
}
