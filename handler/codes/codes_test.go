package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"vcop/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{fmt.Errorf("%w: symbol %q", core.ErrAssetNotFound, "WBTC"), http.StatusNotFound, int(core.ErrAssetNotFound)},
		{fmt.Errorf("mint amount: %w", core.ErrInvalidAmount), http.StatusBadRequest, int(core.ErrInvalidAmount)},
		{core.ErrPriceUnavailable, http.StatusServiceUnavailable, int(core.ErrPriceUnavailable)},
		{errors.New("boom"), http.StatusInternalServerError, http.StatusInternalServerError},
		{twirp.InvalidArgumentError("owner", "invalid"), http.StatusBadRequest, InvalidArguments},
	}

	for _, c := range cases {
		twerr := From(c.err)
		assert.Equal(t, c.status, twirp.ServerHTTPStatusFromErrorCode(twerr.Code()), c.err.Error())
		assert.Equal(t, c.code, Code(twerr), c.err.Error())
	}
}

func TestWith(t *testing.T) {
	err := With(errors.New("boom"), 42)
	assert.Equal(t, 42, Code(err.(twirp.Error)))
}
