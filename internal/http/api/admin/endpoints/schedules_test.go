package endpoints_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis-io/auralis/internal/db/storetest"
	"github.com/auralis-io/auralis/internal/http/api/admin/endpoints"
	"github.com/auralis-io/auralis/internal/http/api/admin/packets"
)

func adminPost(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateScheduleEntryValidatesWindow(t *testing.T) {
	store := storetest.New()
	mix := "https://cdn.example.com/focus.mp3"
	style, err := store.CreateStyle("Deep Focus", nil, &mix, nil)
	require.NoError(t, err)

	r := newAdminRouter(store, endpoints.ScheduleModule(store))

	w := adminPost(t, r, "/api/admin/schedules", packets.CreateScheduleEntryRequest{
		StyleID: style.ID, StartTime: "08:00", EndTime: "12:00",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	for _, bad := range []packets.CreateScheduleEntryRequest{
		{StyleID: style.ID, StartTime: "8:00", EndTime: "12:00"},  // not zero padded
		{StyleID: style.ID, StartTime: "12:00", EndTime: "08:00"}, // start after end
		{StyleID: style.ID, StartTime: "25:00", EndTime: "26:00"}, // not a clock time
	} {
		w = adminPost(t, r, "/api/admin/schedules", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w = adminPost(t, r, "/api/admin/schedules", packets.CreateScheduleEntryRequest{
		StyleID: 9999, StartTime: "08:00", EndTime: "12:00",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedulePreviewResolvesForTerminal(t *testing.T) {
	store := storetest.New()
	mix := "https://cdn.example.com/focus.mp3"
	style, err := store.CreateStyle("Deep Focus", nil, &mix, nil)
	require.NoError(t, err)
	terminal, err := store.CreateTerminal("Lobby Kiosk", nil)
	require.NoError(t, err)
	_, err = store.CreateScheduleEntry(style.ID, nil, "08:00", "12:00")
	require.NoError(t, err)

	r := newAdminRouter(store, endpoints.ScheduleModule(store))

	w := adminGet(t, r, "/api/admin/schedules/preview?terminal_id="+itoa(terminal.ID)+"&now=09:30", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Entry *packets.ScheduleEntryResponse `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Entry)
	assert.Equal(t, style.ID, resp.Entry.StyleID)

	w = adminGet(t, r, "/api/admin/schedules/preview?terminal_id="+itoa(terminal.ID)+"&now=13:00", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp.Entry = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Entry)
}

func itoa(n int) string { return strconv.Itoa(n) }
