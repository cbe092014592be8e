package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// AgentType classifies who authored a review. Stored as smallint.
type AgentType int16

const (
	AgentTypeOfficial AgentType = 0
	AgentTypeAgent    AgentType = 1
	AgentTypeHuman    AgentType = 2
	// AgentTypeUnknown is never persisted; it is the decode result for unrecognised values.
	AgentTypeUnknown AgentType = -1
)

// UnknownReviewer is the display name for unrecognised agent types.
const UnknownReviewer = "Unknown Reviewer"

var agentTypeNames = map[AgentType]string{
	AgentTypeOfficial: "official",
	AgentTypeAgent:    "agent",
	AgentTypeHuman:    "human",
}

var reviewerDisplayNames = map[AgentType]string{
	AgentTypeOfficial: "Official Agent",
	AgentTypeAgent:    "Anonymous Agent",
	AgentTypeHuman:    "Anonymous Reviewer",
}

// ParseAgentType maps a reviewer name ("agent", "human", "official") to its tag.
func ParseAgentType(raw string) (AgentType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for tag, name := range agentTypeNames {
		if name == normalized {
			return tag, true
		}
	}
	return AgentTypeUnknown, false
}

// AgentTypeFromInt returns the tag for a stored value, or AgentTypeUnknown.
func AgentTypeFromInt(v int64) AgentType {
	tag := AgentType(v)
	if _, ok := agentTypeNames[tag]; ok {
		return tag
	}
	return AgentTypeUnknown
}

// String returns the short name used in request payloads.
func (a AgentType) String() string {
	if name, ok := agentTypeNames[a]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the short name.
func (a AgentType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts the short name.
func (a *AgentType) UnmarshalText(text []byte) error {
	tag, ok := ParseAgentType(string(text))
	if !ok {
		return fmt.Errorf("invalid agent_type %q", string(text))
	}
	*a = tag
	return nil
}

// DisplayName returns the reviewer label shown alongside reviews.
func (a AgentType) DisplayName() string {
	if name, ok := reviewerDisplayNames[a]; ok {
		return name
	}
	return UnknownReviewer
}

// Value implements driver.Valuer.
func (a AgentType) Value() (driver.Value, error) {
	if _, ok := agentTypeNames[a]; !ok {
		return nil, fmt.Errorf("agent type %d is not storable", int16(a))
	}
	return int64(a), nil
}

// Scan implements sql.Scanner, decoding unknown values to AgentTypeUnknown.
func (a *AgentType) Scan(src interface{}) error {
	v, err := scanSmallInt(src)
	if err != nil {
		return fmt.Errorf("scan agent type: %w", err)
	}
	*a = AgentTypeFromInt(v)
	return nil
}

// DocType classifies a submission as paper or proposal. Stored as smallint.
type DocType int16

const (
	DocTypeProposal DocType = 0
	DocTypePaper    DocType = 1
	DocTypeUnknown  DocType = -1
)

var docTypeNames = map[DocType]string{
	DocTypeProposal: "proposal",
	DocTypePaper:    "paper",
}

// ParseDocType maps "paper" or "proposal" to its tag.
func ParseDocType(raw string) (DocType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for tag, name := range docTypeNames {
		if name == normalized {
			return tag, true
		}
	}
	return DocTypeUnknown, false
}

// DocTypeFromInt returns the tag for a stored value, or DocTypeUnknown.
func DocTypeFromInt(v int64) DocType {
	tag := DocType(v)
	if _, ok := docTypeNames[tag]; ok {
		return tag
	}
	return DocTypeUnknown
}

func (d DocType) String() string {
	if name, ok := docTypeNames[d]; ok {
		return name
	}
	return "unknown"
}

// Value implements driver.Valuer.
func (d DocType) Value() (driver.Value, error) {
	if _, ok := docTypeNames[d]; !ok {
		return nil, fmt.Errorf("doc type %d is not storable", int16(d))
	}
	return int64(d), nil
}

// Scan implements sql.Scanner.
func (d *DocType) Scan(src interface{}) error {
	v, err := scanSmallInt(src)
	if err != nil {
		return fmt.Errorf("scan doc type: %w", err)
	}
	*d = DocTypeFromInt(v)
	return nil
}

// MarshalText renders the short name so JSON payloads carry "paper"/"proposal".
func (d DocType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts the short name.
func (d *DocType) UnmarshalText(text []byte) error {
	tag, ok := ParseDocType(string(text))
	if !ok {
		return fmt.Errorf("invalid doc_type %q; must be 'paper' or 'proposal'", string(text))
	}
	*d = tag
	return nil
}

func scanSmallInt(src interface{}) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case []byte:
		var out int64
		if _, err := fmt.Sscanf(string(v), "%d", &out); err != nil {
			return 0, err
		}
		return out, nil
	case nil:
		return 0, fmt.Errorf("null value")
	default:
		return 0, fmt.Errorf("unsupported type %T", src)
	}
}
