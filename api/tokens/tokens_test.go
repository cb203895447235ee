// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"bytes"
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
	"github.com/launchpool/launchpool/host"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/lvldb"
)

var (
	alice = launch.BytesToAddress([]byte("alice"))
	bob   = launch.BytesToAddress([]byte("bob"))
	dai   = launch.BytesToAddress([]byte("dai"))
)

func newServer(t *testing.T, mint bool) *httptest.Server {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	h, err := host.New(db, nil, host.NewManualClock(1000))
	require.NoError(t, err)

	router := mux.NewRouter()
	New(h, mint).Mount(router, "/tokens")
	ts := httptest.NewServer(router)
	t.Cleanup(func() {
		ts.Close()
		h.Close()
		db.Close()
	})
	return ts
}

func httpDo(t *testing.T, ts *httptest.Server, method, path string, body any) (int, []byte, http.Header) {
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

func amountOf(t *testing.T, data []byte) *big.Int {
	var a Amount
	require.NoError(t, json.Unmarshal(data, &a), string(data))
	return (*big.Int)(a.Amount)
}

func TestTokens(t *testing.T) {
	ts := newServer(t, true)
	tokenPath := "/tokens/" + dai.String()

	code, data, _ := httpDo(t, ts, http.MethodPost, "/tokens", &Register{Address: dai, Symbol: "DAI", Decimals: 18})
	require.Equal(t, http.StatusOK, code, string(data))

	code, _, header := httpDo(t, ts, http.MethodPost, "/tokens", &Register{Address: dai, Symbol: "DAI", Decimals: 18})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidConfiguration", header.Get(restutil.RevertKindHeader))

	code, data, _ = httpDo(t, ts, http.MethodPost, tokenPath+"/mint", &Mint{To: alice, Amount: math.NewHexOrDecimal256(1000)})
	require.Equal(t, http.StatusOK, code, string(data))

	code, data, _ = httpDo(t, ts, http.MethodGet, "/tokens", nil)
	require.Equal(t, http.StatusOK, code)
	var list []*Token
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Equal(t, []*Token{{Address: dai, Symbol: "DAI", Decimals: 18}}, list)

	code, data, _ = httpDo(t, ts, http.MethodGet, tokenPath, nil)
	require.Equal(t, http.StatusOK, code)
	var tk Token
	require.NoError(t, json.Unmarshal(data, &tk))
	assert.Equal(t, "1000", (*big.Int)(tk.TotalSupply).String())

	code, _, _ = httpDo(t, ts, http.MethodGet, "/tokens/"+bob.String(), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, data, _ = httpDo(t, ts, http.MethodPost, tokenPath+"/transfer", &Transfer{Caller: alice, To: bob, Amount: math.NewHexOrDecimal256(300)})
	require.Equal(t, http.StatusOK, code, string(data))

	code, _, header = httpDo(t, ts, http.MethodPost, tokenPath+"/transfer", &Transfer{Caller: bob, To: alice, Amount: math.NewHexOrDecimal256(301)})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InsufficientBalance", header.Get(restutil.RevertKindHeader))

	code, data, _ = httpDo(t, ts, http.MethodGet, tokenPath+"/balances/"+alice.String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "700", amountOf(t, data).String())
	code, data, _ = httpDo(t, ts, http.MethodGet, tokenPath+"/balances/"+bob.String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "300", amountOf(t, data).String())

	code, data, _ = httpDo(t, ts, http.MethodPost, tokenPath+"/approve", &Approve{Caller: alice, Spender: bob, Amount: math.NewHexOrDecimal256(50)})
	require.Equal(t, http.StatusOK, code, string(data))
	code, data, _ = httpDo(t, ts, http.MethodGet, tokenPath+"/allowances/"+alice.String()+"/"+bob.String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "50", amountOf(t, data).String())

	code, _, _ = httpDo(t, ts, http.MethodPost, tokenPath+"/approve", map[string]any{"caller": alice})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMintDisabled(t *testing.T) {
	ts := newServer(t, false)

	code, data, _ := httpDo(t, ts, http.MethodPost, "/tokens", &Register{Address: dai, Symbol: "DAI", Decimals: 18})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "token minting is disabled\n", string(data))
	code, _, _ = httpDo(t, ts, http.MethodPost, "/tokens/"+dai.String()+"/mint", &Mint{To: alice, Amount: math.NewHexOrDecimal256(1)})
	assert.Equal(t, http.StatusForbidden, code)

	code, data, _ = httpDo(t, ts, http.MethodGet, "/tokens", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]\n", string(data), "nothing was registered")
}
