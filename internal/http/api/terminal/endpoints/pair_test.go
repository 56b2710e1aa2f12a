package endpoints_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis-io/auralis/internal/db/storetest"
	"github.com/auralis-io/auralis/internal/http/api"
	"github.com/auralis-io/auralis/internal/http/api/terminal/endpoints"
	"github.com/auralis-io/auralis/internal/http/api/terminal/packets"
	redisclient "github.com/auralis-io/auralis/internal/redis"
)

func newPairRouter(t *testing.T, store *storetest.Store) *gin.Engine {
	mr := miniredis.RunT(t)
	redisclient.InitRedis(mr.Addr(), "", "")
	t.Cleanup(func() { redisclient.Rdb = nil })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/terminal"},
		endpoints.PairModule(store, testSecret))
	return r
}

func TestPairExchangesCodeForToken(t *testing.T) {
	store := storetest.New()
	terminal, err := store.CreateTerminal("Lobby Kiosk", nil)
	require.NoError(t, err)

	r := newPairRouter(t, store)
	require.NoError(t, redisclient.StorePairingCode(context.Background(), "ABC234", terminal.ID))

	w := doJSON(t, r, http.MethodPost, "/api/terminal/pair", "",
		packets.PairRequest{Code: "ABC234", DeviceID: "kiosk-17"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[packets.PairResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, terminal.ID, resp.Terminal.ID)

	paired, err := store.GetTerminalByDeviceID("kiosk-17")
	require.NoError(t, err)
	assert.Equal(t, terminal.ID, paired.ID)
	assert.True(t, paired.Paired)

	// a code is single use
	w = doJSON(t, r, http.MethodPost, "/api/terminal/pair", "",
		packets.PairRequest{Code: "ABC234", DeviceID: "kiosk-18"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPairRejectsUnknownCode(t *testing.T) {
	store := storetest.New()
	r := newPairRouter(t, store)

	w := doJSON(t, r, http.MethodPost, "/api/terminal/pair", "",
		packets.PairRequest{Code: "NOPE42", DeviceID: "kiosk-17"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPairWithoutRedisUnavailable(t *testing.T) {
	store := storetest.New()
	redisclient.Rdb = nil

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/terminal"},
		endpoints.PairModule(store, testSecret))

	// no Recovery middleware on the test engine, so this also proves the
	// handler degrades instead of panicking
	w := doJSON(t, r, http.MethodPost, "/api/terminal/pair", "",
		packets.PairRequest{Code: "ABC234", DeviceID: "kiosk-17"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
