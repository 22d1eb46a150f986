//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_EventFlow covers the weekly event lifecycle: admin creates an
// event authored in the reference zone, a member in Tokyo responds and
// sees the time localized with the day rolled over.
func TestE2E_EventFlow(t *testing.T) {
	ts := setupTestServer(t)
	adminClient, _ := ts.loginAdmin(t)
	memberClient, nickname := ts.signupMember(t, adminClient, "Asia/Tokyo")

	// Monday 23:30 in Europe/London is already Tuesday in Tokyo.
	status, created := ts.doJSON(t, adminClient, http.MethodPost, "/events", map[string]string{
		"title":     "Late night siege",
		"day":       "MONDAY",
		"timeOfDay": "23:30",
	})
	require.Equal(t, http.StatusCreated, status)
	eventID := created["id"].(string)

	status, _ = ts.doJSON(t, memberClient, http.MethodPut, "/events/"+eventID+"/response", map[string]string{
		"response": "ACCEPTED",
	})
	require.Equal(t, http.StatusOK, status)

	status, events := ts.doJSONList(t, memberClient, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, status)

	var view map[string]any
	for _, e := range events {
		if e["id"] == eventID {
			view = e
		}
	}
	require.NotNil(t, view, "created event must be listed")

	// Authored values survive untouched; localized values shift.
	assert.Equal(t, "MONDAY", view["day"])
	assert.Equal(t, "23:30", view["timeOfDay"])
	assert.Equal(t, "TUESDAY", view["localDay"], "midnight crossover must roll the weekday")
	assert.NotEqual(t, "23:30", view["localTime"])

	assert.Contains(t, view["accepted"], nickname)
	assert.Equal(t, "ACCEPTED", view["viewerResponse"])

	// Switching the answer overwrites, never duplicates.
	status, _ = ts.doJSON(t, memberClient, http.MethodPut, "/events/"+eventID+"/response", map[string]string{
		"response": "DECLINED",
	})
	require.Equal(t, http.StatusOK, status)

	status, events = ts.doJSONList(t, memberClient, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, status)
	for _, e := range events {
		if e["id"] == eventID {
			assert.NotContains(t, e["accepted"], nickname)
			assert.Contains(t, e["declined"], nickname)
			assert.Equal(t, "DECLINED", e["viewerResponse"])
		}
	}
}

// TestE2E_TimePollFlow covers a time poll end to end: slots keep their
// authoring order, slot responses build the availability matrix, and an
// explicit false revokes an earlier yes.
func TestE2E_TimePollFlow(t *testing.T) {
	ts := setupTestServer(t)
	adminClient, _ := ts.loginAdmin(t)
	memberClient, nickname := ts.signupMember(t, adminClient, "UTC")

	// Deliberately non-chronological authoring order.
	status, created := ts.doJSON(t, adminClient, http.MethodPost, "/polls/time", map[string]any{
		"title": "War start time",
		"slots": []map[string]string{
			{"day": "FRIDAY", "timeOfDay": "21:00"},
			{"day": "MONDAY", "timeOfDay": "08:15"},
		},
	})
	require.Equal(t, http.StatusCreated, status)

	slots := created["slots"].([]any)
	require.Len(t, slots, 2)
	first := slots[0].(map[string]any)
	second := slots[1].(map[string]any)
	assert.Equal(t, "FRIDAY", first["day"], "authoring order must survive")
	assert.Equal(t, "MONDAY", second["day"])

	pollID := created["id"].(string)

	// Yes to the first slot, explicit no to the second.
	status, _ = ts.doJSON(t, memberClient, http.MethodPut, "/polls/"+pollID+"/slots", map[string]any{
		"responses": []map[string]any{
			{"slotId": first["id"], "available": true},
			{"slotId": second["id"], "available": false},
		},
	})
	require.Equal(t, http.StatusOK, status)

	status, polls := ts.doJSONList(t, memberClient, http.MethodGet, "/polls", nil)
	require.Equal(t, http.StatusOK, status)

	var view map[string]any
	for _, p := range polls {
		if p["id"] == pollID {
			view = p
		}
	}
	require.NotNil(t, view)

	matrix := view["matrix"].([]any)
	var row map[string]any
	for _, r := range matrix {
		if r.(map[string]any)["nickname"] == nickname {
			row = r.(map[string]any)
		}
	}
	require.NotNil(t, row, "responder must have a matrix row")

	cells := row["available"].([]any)
	require.Len(t, cells, 2)
	assert.Equal(t, true, cells[0])
	assert.Equal(t, false, cells[1], "explicit no renders as unavailable")

	// Revoke the yes; the cell flips to false.
	status, _ = ts.doJSON(t, memberClient, http.MethodPut, "/polls/"+pollID+"/slots", map[string]any{
		"responses": []map[string]any{
			{"slotId": first["id"], "available": false},
		},
	})
	require.Equal(t, http.StatusOK, status)

	status, polls = ts.doJSONList(t, memberClient, http.MethodGet, "/polls", nil)
	require.Equal(t, http.StatusOK, status)
	for _, p := range polls {
		if p["id"] == pollID {
			for _, r := range p["matrix"].([]any) {
				if r.(map[string]any)["nickname"] == nickname {
					cells := r.(map[string]any)["available"].([]any)
					assert.Equal(t, false, cells[0], "revoked yes must read as false")
				}
			}
		}
	}
}

// TestE2E_RegularPollFlow covers a yes/no poll: vote, tally, overwrite.
func TestE2E_RegularPollFlow(t *testing.T) {
	ts := setupTestServer(t)
	adminClient, _ := ts.loginAdmin(t)
	memberClient, nickname := ts.signupMember(t, adminClient, "UTC")

	status, created := ts.doJSON(t, adminClient, http.MethodPost, "/polls", map[string]string{
		"title": "Merge with Dragon alliance?",
	})
	require.Equal(t, http.StatusCreated, status)
	pollID := created["id"].(string)

	status, _ = ts.doJSON(t, memberClient, http.MethodPut, "/polls/"+pollID+"/vote", map[string]any{"vote": true})
	require.Equal(t, http.StatusOK, status)

	// Change of heart: the new vote replaces the old one.
	status, _ = ts.doJSON(t, memberClient, http.MethodPut, "/polls/"+pollID+"/vote", map[string]any{"vote": false})
	require.Equal(t, http.StatusOK, status)

	status, polls := ts.doJSONList(t, memberClient, http.MethodGet, "/polls", nil)
	require.Equal(t, http.StatusOK, status)
	for _, p := range polls {
		if p["id"] == pollID {
			no, _ := p["no"].([]any)
			assert.Contains(t, no, nickname)
			yes, _ := p["yes"].([]any)
			assert.NotContains(t, yes, nickname)
			assert.Equal(t, false, p["viewerVote"])
		}
	}

	// Slot responses are meaningless on a yes/no poll.
	status, _ = ts.doJSON(t, memberClient, http.MethodPut, "/polls/"+pollID+"/slots", map[string]any{
		"responses": []map[string]any{{"slotId": "00000000-0000-0000-0000-000000000001", "available": true}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
