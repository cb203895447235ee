// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpool/launchpool/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
		body   string
	}{
		{"ok", nil, http.StatusOK, "", ""},
		{"bad request", BadRequest(errors.New("body: invalid")), http.StatusBadRequest, "", "body: invalid\n"},
		{"forbidden", Forbidden(errors.New("limit")), http.StatusForbidden, "", "limit\n"},
		{"bare status", HTTPError(nil, http.StatusTeapot), http.StatusTeapot, "", ""},
		{"revert", reverts.ErrCapExceeded, http.StatusBadRequest, "CapExceeded", "Maximum staked amount exceeded\n"},
		{"wrapped revert", pkgerrors.WithMessage(reverts.ErrPoolClosed, "stake"), http.StatusBadRequest, "PoolClosed", "stake: Launch Pool is closed\n"},
		{"role revert", reverts.ErrNotSponsor, http.StatusForbidden, "NotSponsor", "Only sponsor\n"},
		{"internal", errors.New("disk"), http.StatusInternalServerError, "", "disk\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				if tt.err != nil {
					return tt.err
				}
				return nil
			})
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.kind, rec.Header().Get(RevertKindHeader))
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"a":1,"b":2}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, M{"a": 1}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "{\"a\":1}\n", rec.Body.String())
}

func TestVars(t *testing.T) {
	var gotErr error
	router := mux.NewRouter()
	router.Path("/{address}").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, gotErr = AddressVar(req, "address")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/0x0000000000000000000000000000000000000001", nil))
	assert.NoError(t, gotErr)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/0x01", nil))
	assert.Error(t, gotErr)

	req := httptest.NewRequest(http.MethodGet, "/?limit=5&offset=x", nil)
	v, err := Uint64Query(req, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)
	v, err = Uint64Query(req, "missing", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), v)
	_, err = Uint64Query(req, "offset", 0)
	assert.Error(t, err)
}
