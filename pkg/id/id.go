package id

import (
	"strconv"
	"strings"

	"vcop/core"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// bundleNamespace namespace of call bundle ids
var bundleNamespace = uuid.Must(uuid.FromString("6ba7b811-9dad-11d1-80b4-00c04fd430c8"))

// GenTraceID new random trace id
func GenTraceID() string {
	return foxuuid.New()
}

// SubTraceID trace id of the index-th call of a submission
func SubTraceID(traceID string, index int) string {
	return foxuuid.Modify(traceID, strconv.Itoa(index))
}

// BundleID stable id of an ordered call list, equal calls give equal ids
func BundleID(calls []*core.Call) string {
	var b strings.Builder
	for _, call := range calls {
		b.WriteString(call.To.Hex())
		b.WriteString(call.Data.String())
		b.WriteString(call.ValueInt().String())
		b.WriteByte(';')
	}

	return uuid.NewV5(bundleNamespace, b.String()).String()
}
