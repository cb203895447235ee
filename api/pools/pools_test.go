// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpool/launchpool/api/restutil"
	"github.com/launchpool/launchpool/factory"
	"github.com/launchpool/launchpool/host"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/lvldb"
	"github.com/launchpool/launchpool/pool"
)

var (
	sponsor = launch.BytesToAddress([]byte("sponsor"))
	alice   = launch.BytesToAddress([]byte("alice"))
	dai     = launch.BytesToAddress([]byte("dai"))
	shar    = launch.BytesToAddress([]byte("shar"))

	ts    *httptest.Server
	clock *host.ManualClock
	h     *host.Host
)

func ether(s string) *math.HexOrDecimal256 {
	v, err := launch.ParseUnits(s, 18)
	if err != nil {
		panic(err)
	}
	return (*math.HexOrDecimal256)(v)
}

func initPoolsServer(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	clock = host.NewManualClock(1000)
	h, err = host.New(db, nil, clock)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, h.RegisterToken(ctx, dai, "DAI", 18))
	require.NoError(t, h.RegisterToken(ctx, shar, "SHAR", 18))
	require.NoError(t, h.Mint(ctx, dai, alice, (*big.Int)(ether("1000"))))

	router := mux.NewRouter()
	New(h).Mount(router, "/pools")
	ts = httptest.NewServer(router)
	t.Cleanup(func() {
		ts.Close()
		h.Close()
		db.Close()
	})
}

func httpDo(t *testing.T, method, path string, body any) (int, []byte, http.Header) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data, res.Header
}

func decode[T any](t *testing.T, data []byte) *T {
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return &v
}

func createBody() *CreatePool {
	pricing := pool.PricingEarlyBird
	return &CreatePool{
		Caller: sponsor,
		Tokens: []launch.Address{dai},
		Params: [8]*math.HexOrDecimal256{
			ether("100"),
			ether("2000000"),
			math.NewHexOrDecimal256(0),
			math.NewHexOrDecimal256(2000),
			math.NewHexOrDecimal256(10),
			math.NewHexOrDecimal256(100),
			ether("0.5"),
			ether("2000000"),
		},
		Metadata:    "QmZuQMs9n2TJUsV2VyGHox5wwxNAg3FVr5SWRKU814DCra",
		SharesToken: shar,
		Pricing:     &pricing,
	}
}

func TestPools(t *testing.T) {
	initPoolsServer(t)

	code, data, _ := httpDo(t, http.MethodGet, "/pools", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]\n", string(data))

	code, data, _ = httpDo(t, http.MethodPost, "/pools", createBody())
	require.Equal(t, http.StatusOK, code, string(data))
	rec := decode[factory.CreationRecord](t, data)
	assert.Equal(t, launch.CreatePoolAddress(sponsor, 0), rec.Pool)
	poolPath := "/pools/" + rec.Pool.String()

	// stake flow moves the clock and the stage, so it runs last
	for _, tt := range []struct {
		name string
		fn   func(*testing.T, string)
	}{
		{"testGetPool", testGetPool},
		{"testInvalidCreate", testInvalidCreate},
		{"testShares", testShares},
		{"testUnknownPool", testUnknownPool},
		{"testStakeFlow", testStakeFlow},
	} {
		t.Run(tt.name, func(t *testing.T) { tt.fn(t, poolPath) })
	}
}

func testGetPool(t *testing.T, poolPath string) {
	code, data, _ := httpDo(t, http.MethodGet, poolPath, nil)
	require.Equal(t, http.StatusOK, code)
	p := decode[Pool](t, data)
	assert.Equal(t, sponsor, p.Sponsor)
	assert.Equal(t, []Token{{dai, 18}}, p.Tokens)
	assert.Equal(t, shar, p.SharesToken)
	assert.Equal(t, pool.Staking, p.Stage)
	assert.Equal(t, pool.PricingEarlyBird, p.Pricing)
	assert.Equal(t, pool.CapAggregate, p.CapPolicy)
	assert.True(t, p.Abortable)
	assert.Equal(t, "2000", (*big.Int)(p.GeneralInfos[pool.InfoEnd]).String())
	assert.Equal(t, "1", (*big.Int)(p.GeneralInfos[pool.InfoStage]).String())

	code, data, _ = httpDo(t, http.MethodGet, "/pools?limit=1", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []launch.Address{p.Address}, *decode[[]launch.Address](t, data))

	code, _, _ = httpDo(t, http.MethodGet, "/pools?limit=1000", nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func testInvalidCreate(t *testing.T, _ string) {
	body := createBody()
	body.Params[1] = math.NewHexOrDecimal256(0)
	code, data, header := httpDo(t, http.MethodPost, "/pools", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidConfiguration", header.Get(restutil.RevertKindHeader))
	assert.Equal(t, "maximum cap must be positive\n", string(data))

	body = createBody()
	body.Params[6] = nil
	code, data, _ = httpDo(t, http.MethodPost, "/pools", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "params[6]: required\n", string(data))

	code, _, _ = httpDo(t, http.MethodPost, "/pools", map[string]any{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, code)
}

func testStakeFlow(t *testing.T, poolPath string) {
	p := launch.MustParseAddress(poolPath[len("/pools/"):])
	require.NoError(t, h.Approve(context.Background(), alice, dai, p, (*big.Int)(ether("1000"))))

	code, data, _ := httpDo(t, http.MethodPost, poolPath+"/stake", &StakeCall{Caller: alice, Token: dai, Amount: ether("400")})
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, uint64(0), decode[StakeResult](t, data).Index)

	code, data, header := httpDo(t, http.MethodPost, poolPath+"/stake", &StakeCall{Caller: alice, Token: dai, Amount: ether("50")})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BelowMinimum", header.Get(restutil.RevertKindHeader))
	assert.Equal(t, "Stake below minimum amount\n", string(data))

	code, data, _ = httpDo(t, http.MethodGet, poolPath+"/stakes", nil)
	require.Equal(t, http.StatusOK, code)
	list := *decode[[]*Stake](t, data)
	require.Len(t, list, 1)
	assert.Equal(t, alice, list[0].Owner)
	assert.Equal(t, ether("400"), list[0].Amount)

	code, data, _ = httpDo(t, http.MethodGet, poolPath+"/stakes?owner="+sponsor.String(), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]\n", string(data))

	code, data, _ = httpDo(t, http.MethodGet, poolPath+"/stakes/0", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, ether("400"), decode[Stake](t, data).Normalized)

	code, _, _ = httpDo(t, http.MethodGet, poolPath+"/stakes/9", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _, header = httpDo(t, http.MethodPost, poolPath+"/unstake", &UnstakeCall{Caller: sponsor, Index: 0})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "NotOwner", header.Get(restutil.RevertKindHeader))

	code, _, header = httpDo(t, http.MethodPost, poolPath+"/lock", &Call{Caller: alice})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "NotSponsor", header.Get(restutil.RevertKindHeader))

	code, data, _ = httpDo(t, http.MethodPost, poolPath+"/lock", &Call{Caller: sponsor})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Launch Pool is still open\n", string(data))

	code, _, _ = httpDo(t, http.MethodPost, poolPath+"/extend", &ExtendCall{Caller: sponsor, Delta: 100})
	assert.Equal(t, http.StatusOK, code)

	clock.Set(2100)
	code, _, _ = httpDo(t, http.MethodPost, poolPath+"/lock", &Call{Caller: sponsor})
	require.Equal(t, http.StatusOK, code)

	code, data, _ = httpDo(t, http.MethodPost, poolPath+"/calculate", &Call{Caller: sponsor})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, &pool.ChunkResult{Examined: 1, Processed: 1, Done: true}, decode[pool.ChunkResult](t, data))

	require.NoError(t, h.Mint(context.Background(), shar, sponsor, (*big.Int)(ether("1000"))))
	require.NoError(t, h.Approve(context.Background(), sponsor, shar, p, (*big.Int)(ether("1000"))))
	code, data, _ = httpDo(t, http.MethodPost, poolPath+"/distribute", &Call{Caller: sponsor})
	require.Equal(t, http.StatusOK, code, string(data))
	assert.True(t, decode[pool.ChunkResult](t, data).Done)

	code, data, _ = httpDo(t, http.MethodPost, poolPath+"/withdraw", &WithdrawCall{Caller: sponsor, Token: dai})
	require.Equal(t, http.StatusOK, code, string(data))
	w := decode[WithdrawResult](t, data)
	assert.Equal(t, ether("400"), w.SponsorAmount)
	assert.Equal(t, 0, (*big.Int)(w.ReferralAmount).Sign())
}

func testShares(t *testing.T, poolPath string) {
	code, data, _ := httpDo(t, http.MethodGet, poolPath+"/shares?amount=100&tokenIndex=0", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "200", (*big.Int)(decode[SharesResult](t, data).Shares).String())

	code, _, header := httpDo(t, http.MethodGet, poolPath+"/shares?amount=100&tokenIndex=3", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "UnknownToken", header.Get(restutil.RevertKindHeader))

	code, _, _ = httpDo(t, http.MethodGet, poolPath+"/shares?amount=abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func testUnknownPool(t *testing.T, _ string) {
	unknown := "/pools/" + alice.String()
	code, _, _ := httpDo(t, http.MethodGet, unknown, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _, header := httpDo(t, http.MethodPost, unknown+"/lock", &Call{Caller: sponsor})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NoSuchPool", header.Get(restutil.RevertKindHeader))

	code, _, _ = httpDo(t, http.MethodGet, "/pools/0x1234", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
