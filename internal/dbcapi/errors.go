// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dbcapi

import (
	"encoding/json"
	"net/http"

	"github.com/surrealabs/sdbeditor/internal/apperr"
)

func appErrOf(err error) (*apperr.Error, bool) {
	return apperr.As(err)
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
