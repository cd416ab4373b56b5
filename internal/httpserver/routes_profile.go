// internal/httpserver/routes_profile.go
//
// HTTP routes for the per-user profile key-value store.
// Exposes four endpoints under /profile (all require auth):
//   - GET    /profile        → list all keys/values for the current user
//   - GET    /profile/{key}  → fetch one value
//   - PUT    /profile/{key}  → upsert a value
//   - DELETE /profile/{key}  → remove a key
//
// Rows are keyed (user_id, key); a user can only ever see or touch their
// own rows, which is the whole access-control model.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxProfileValueLen = 4096

// mountProfile registers all /profile routes behind requireAuth.
func (s *Server) mountProfile() {
	s.r.With(s.requireAuth()).Route("/profile", func(r chi.Router) {
		r.Get("/", s.handleProfileList)
		r.Get("/{key}", s.handleProfileGet)
		r.Put("/{key}", s.handleProfilePut)
		r.Delete("/{key}", s.handleProfileDelete)
	})
}

// handleProfileList returns every key/value pair owned by the caller.
func (s *Server) handleProfileList(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	rows, err := s.db.Query(`SELECT key, value FROM profile_kv WHERE user_id=? ORDER BY key`, me.ID)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err == nil {
			out[k] = v
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleProfileGet fetches a single value, 404 on unknown key.
func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	key := chi.URLParam(r, "key")
	var val string
	err := s.db.QueryRow(`SELECT value FROM profile_kv WHERE user_id=? AND key=?`, me.ID, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"key": key, "value": val})
}

// profilePutReq is the request payload for PUT /profile/{key}.
type profilePutReq struct {
	Value string `json:"value"`
}

// handleProfilePut upserts one key for the caller.
func (s *Server) handleProfilePut(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	key := chi.URLParam(r, "key")
	var body profilePutReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if key == "" || len(key) > 64 || len(body.Value) > maxProfileValueLen {
		http.Error(w, `{"error":"invalid"}`, http.StatusBadRequest)
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(`INSERT INTO profile_kv (user_id, key, value, updated_at) VALUES (?,?,?,?)
	                        ON CONFLICT(user_id, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		me.ID, key, body.Value, now); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("profile upsert")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"key": key, "value": body.Value})
}

// handleProfileDelete removes a key; deleting a missing key is a no-op.
func (s *Server) handleProfileDelete(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	key := chi.URLParam(r, "key")
	if _, err := s.db.Exec(`DELETE FROM profile_kv WHERE user_id=? AND key=?`, me.ID, key); err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
