package handler

import (
	"net/http"
	"strconv"
	"time"

	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	return id, err == nil
}

// queryPage reads skip and limit, ignoring malformed values.
func queryPage(r *http.Request) entity.Page {
	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return entity.Page{Skip: skip, Limit: limit}.Normalize()
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func queryTime(r *http.Request, name string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, r.URL.Query().Get(name))
	return t, err == nil
}
