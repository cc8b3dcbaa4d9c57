package param

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/schema"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Binding bind the query string, then a json body if the request carries one
func Binding(r *http.Request, v interface{}) error {
	if err := r.ParseForm(); err != nil {
		return err
	}

	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	if typ := r.Header.Get("Content-Type"); typ != "" && !strings.HasPrefix(typ, "application/json") {
		return fmt.Errorf("unsupported content type %q", typ)
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("body: %w", err)
	}

	return nil
}
