package event

import (
	"encoding/json"
	"testing"

	"github.com/pandamarket/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func Test_New_wraps_the_event_payload(t *testing.T) {
	ev, err := New("user1", NewNotificationEvent{
		Notification: model.Notification{ID: 7, UserID: "user1", Message: "hello"},
	})
	require.NoError(t, err)
	require.Equal(t, "new-notification", ev.Op)
	require.Equal(t, "user1", ev.Metadata.To)

	var payload model.Notification
	require.NoError(t, json.Unmarshal(ev.Data, &payload))
	require.EqualValues(t, 7, payload.ID)
	require.Equal(t, "hello", payload.Message)
}

func Test_Format_wire_shape(t *testing.T) {
	ev, err := New("user1", NewNotificationEvent{
		Notification: model.Notification{ID: 7, UserID: "user1", Message: "hello"},
	})
	require.NoError(t, err)

	b, err := Format(ev, 3)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Contains(t, decoded, "o")
	require.Contains(t, decoded, "s")
	require.Contains(t, decoded, "d")

	var resp EventResponse
	require.NoError(t, json.Unmarshal(b, &resp))
	require.Equal(t, "new-notification", resp.Op)
	require.EqualValues(t, 3, resp.Seq)
}
