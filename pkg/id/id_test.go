package id

import (
	"testing"

	"vcop/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestBundleID(t *testing.T) {
	a := []*core.Call{{To: common.HexToAddress("0x01"), Data: []byte{0x01}}}
	b := []*core.Call{{To: common.HexToAddress("0x01"), Data: []byte{0x01}}}
	c := []*core.Call{{To: common.HexToAddress("0x01"), Data: []byte{0x02}}}

	assert.Equal(t, BundleID(a), BundleID(b))
	assert.NotEqual(t, BundleID(a), BundleID(c))
}

func TestTraceID(t *testing.T) {
	trace := GenTraceID()
	assert.NotEqual(t, trace, GenTraceID())
	assert.Equal(t, SubTraceID(trace, 1), SubTraceID(trace, 1))
	assert.NotEqual(t, SubTraceID(trace, 0), SubTraceID(trace, 1))
}
