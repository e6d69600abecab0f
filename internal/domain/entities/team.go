package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ExcludedExternalIDs are api-sports ids of the league aggregates (1 = American League,
// 23 = National League). They are not teams and are never stored.
// The ids follow api-sports numbering; nothing detects it if the provider renumbers them.
var ExcludedExternalIDs = map[int]struct{}{
	1:  {},
	23: {},
}

// IsExcludedExternalID reports whether id belongs to ExcludedExternalIDs.
func IsExcludedExternalID(id int) bool {
	_, ok := ExcludedExternalIDs[id]
	return ok
}

// Team is a baseball team as stored locally. ExternalID is the api-sports id and the
// natural key; ID is the local surrogate key.
type Team struct {
	ID         uint      `json:"id"`
	ExternalID int       `json:"api_sports_id"`
	Name       string    `json:"name"`
	Logo       string    `json:"logo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TeamRecord is one untrusted team object from the external API.
type TeamRecord map[string]any

// ToTeam extracts id, name and logo. ok is false when any of them is missing,
// of the wrong shape, or empty (id 0 counts as empty).
func (r TeamRecord) ToTeam() (*Team, bool) {
	id, ok := recordInt(r["id"])
	if !ok || id == 0 {
		return nil, false
	}
	name, ok := r["name"].(string)
	if !ok || name == "" {
		return nil, false
	}
	logo, ok := r["logo"].(string)
	if !ok || logo == "" {
		return nil, false
	}
	return &Team{ExternalID: id, Name: name, Logo: logo}, true
}

// recordInt accepts integral ids that fit the api_sports_id INTEGER column,
// whatever numeric type the decoder produced.
func recordInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return int32Bounded(int64(n))
	case int32:
		return int(n), true
	case int64:
		return int32Bounded(n)
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int32Bounded(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	default:
		return 0, false
	}
}

func int32Bounded(i int64) (int, bool) {
	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, false
	}
	return int(i), true
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// TeamRecordsFromPayload returns the team objects listed under "response" in an
// api-sports payload. A missing or null "response" yields no records; elements
// that are not objects become empty records and are later skipped as incomplete.
func TeamRecordsFromPayload(payload map[string]any) ([]TeamRecord, error) {
	raw, ok := payload["response"]
	if !ok || raw == nil {
		return []TeamRecord{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("response field is %T, want list", raw)
	}

	records := make([]TeamRecord, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		records = append(records, TeamRecord(obj))
	}
	return records, nil
}

// TeamSyncResult is the outcome of one fetch and upsert round.
type TeamSyncResult struct {
	TeamsSynced int
	APIResponse map[string]any
	Teams       []*Team
}
