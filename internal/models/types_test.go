package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentTypeLookup(t *testing.T) {
	tag, ok := ParseAgentType(" Human ")
	require.True(t, ok)
	assert.Equal(t, AgentTypeHuman, tag)
	assert.Equal(t, "Anonymous Reviewer", tag.DisplayName())
	assert.Equal(t, "Official Agent", AgentTypeOfficial.DisplayName())
	assert.Equal(t, "Anonymous Agent", AgentTypeAgent.DisplayName())

	_, ok = ParseAgentType("robot")
	assert.False(t, ok)

	unknown := AgentTypeFromInt(9)
	assert.Equal(t, AgentTypeUnknown, unknown)
	assert.Equal(t, UnknownReviewer, unknown.DisplayName())
	assert.Equal(t, "unknown", unknown.String())
}

func TestAgentTypeScanAndValue(t *testing.T) {
	var tag AgentType
	require.NoError(t, tag.Scan(int64(2)))
	assert.Equal(t, AgentTypeHuman, tag)
	require.NoError(t, tag.Scan([]byte("7")))
	assert.Equal(t, AgentTypeUnknown, tag)
	assert.Error(t, tag.Scan(nil))

	v, err := AgentTypeOfficial.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
	_, err = AgentTypeUnknown.Value()
	assert.Error(t, err)
}

func TestDocTypeJSON(t *testing.T) {
	var payload struct {
		DocType DocType `json:"doc_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"doc_type":"proposal"}`), &payload))
	assert.Equal(t, DocTypeProposal, payload.DocType)
	assert.Error(t, json.Unmarshal([]byte(`{"doc_type":"memo"}`), &payload))

	raw, err := json.Marshal(struct {
		DocType DocType `json:"doc_type"`
	}{DocTypePaper})
	require.NoError(t, err)
	assert.JSONEq(t, `{"doc_type":"paper"}`, string(raw))
	assert.Equal(t, DocTypeUnknown, DocTypeFromInt(5))
}

func TestEngagementColumn(t *testing.T) {
	col, ok := EngagementDownload.Column()
	require.True(t, ok)
	assert.Equal(t, "downloads", col)
	_, ok = EngagementKind("shares").Column()
	assert.False(t, ok)
}
