package utils

import (
	"net/http"
	"path"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDAndFormat splits a parameter such as "site-pie.svg" into its name and its
// extension without the dot. A parameter with no extension yields an empty format.
func ExtractIDAndFormat(r *http.Request, paramName string) (string, string) {
	params := httprouter.ParamsFromContext(r.Context())
	rawID := params.ByName(paramName)

	ext := path.Ext(rawID)
	return strings.TrimSuffix(rawID, ext), strings.TrimPrefix(ext, ".")
}
