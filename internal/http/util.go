package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/projection"
)

// maxLimit caps the page size a client may request.
const maxLimit = 500

// parseCriteria reads the list query parameters and clamps the page size.
func parseCriteria(r *http.Request) (projection.Criteria, error) {
	c, err := projection.ParseCriteria(r.URL.Query())
	if err != nil {
		return c, err
	}
	if c.Limit > maxLimit {
		c.Limit = maxLimit
	}
	return c, nil
}

// pathID returns the {id} path value when it is a well-formed identifier. Backend ids
// are UUIDs, so anything else can never match a record.
func pathID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if _, err := uuid.Parse(id); err != nil {
		return id, false
	}
	return id, true
}

func writeCriteriaError(w http.ResponseWriter, err error) {
	WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
}

func writeNotFound(w http.ResponseWriter, resource, id string) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New(resource + " " + id + " not found"),
	})
}
