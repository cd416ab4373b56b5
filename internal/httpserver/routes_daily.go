// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Puzzle" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start the daily game (creates or reuses session)
//   - POST /daily/select      → submit a drag for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB when the
// puzzle is completed or given up. Every player gets the same grid:
// the generator is seeded deterministically from date + salt.

package httpserver

import (
	"encoding/json"
	mrand "math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/caffeinepub/word-hunt-game/internal/daily"
	"github.com/caffeinepub/word-hunt-game/internal/puzzle"
	"github.com/caffeinepub/word-hunt-game/internal/session"
	"github.com/caffeinepub/word-hunt-game/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailyGame // active sessions keyed by userID|date
	mu       sync.Mutex            // guards sessions
}

// dailyGame holds transient in-memory state for an in-progress daily game.
type dailyGame struct {
	Sess  *session.Session
	Date  string
	Start time.Time
	Done  bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailyGame),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/select", dd.handleSelect)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// puzzleForDate generates today's deterministic puzzle.
func (d *dailyServer) puzzleForDate(now time.Time) puzzle.Puzzle {
	rng := mrand.New(mrand.NewSource(daily.Seed(now, d.salt)))
	return puzzle.Generate(words.List(), defaultGridSize, puzzle.Options{Rand: rng})
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID   string   `json:"gameId"`
	Date     string   `json:"date"`
	Played   bool     `json:"played"`
	Grid     []string `json:"grid,omitempty"`
	WordList []string `json:"wordList,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return the grid.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	now := time.Now().UTC()
	date := daily.DateKey(now)

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: "", Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if g, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{
			GameID: g.Sess.ID, Date: date, Played: false,
			Grid: g.Sess.Puzzle.Rows(), WordList: g.Sess.Puzzle.WordList,
		})
		return
	}
	g := &dailyGame{
		Sess:  session.New(d.puzzleForDate(now)),
		Date:  date,
		Start: time.Now(),
	}
	d.sessions[key] = g
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID: g.Sess.ID, Date: date, Played: false,
		Grid: g.Sess.Puzzle.Rows(), WordList: g.Sess.Puzzle.WordList,
	})
}

// -----------------------------------------------------------------------------
// /daily/select

// dailySelectReq is the request payload for /daily/select.
type dailySelectReq struct {
	GameID   string `json:"gameId"`
	StartRow int    `json:"startRow"`
	StartCol int    `json:"startCol"`
	EndRow   int    `json:"endRow"`
	EndCol   int    `json:"endCol"`
	GiveUp   bool   `json:"giveUp"` // record the result as-is and lock the day
}

// dailySelectRes is the response payload for /daily/select.
type dailySelectRes struct {
	Word     string   `json:"word,omitempty"`
	Matched  bool     `json:"matched"`
	Found    []string `json:"found"`
	State    string   `json:"state"` // in_progress | completed | locked
	Complete bool     `json:"complete"`
}

// handleSelect applies a drag to today's daily session.
// - Rejects if no session or session finished.
// - On completion (all words found) or give-up, persists the result row.
func (d *dailyServer) handleSelect(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailySelectReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if p.GameID == "" {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date := daily.DateKey(time.Now().UTC())

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	g, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || g.Sess.ID != p.GameID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if g.Done {
		_ = json.NewEncoder(w).Encode(dailySelectRes{Found: g.Sess.Found(), State: "locked"})
		return
	}

	var word string
	var matched bool
	if !p.GiveUp {
		word, matched = g.Sess.Select(p.StartRow, p.StartCol, p.EndRow, p.EndCol)
	}
	found, total := g.Sess.Progress()
	complete := total > 0 && found == total

	// Persist and lock on completion or give-up.
	if complete || p.GiveUp {
		d.mu.Lock()
		g.Done = true
		d.mu.Unlock()

		elapsed := int(time.Since(g.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, WordsFound: found, TotalWords: total, ElapsedMs: elapsed,
		})
		state := "completed"
		if !complete {
			state = "locked"
		}
		_ = json.NewEncoder(w).Encode(dailySelectRes{
			Word: word, Matched: matched, Found: g.Sess.Found(), State: state, Complete: complete,
		})
		return
	}
	_ = json.NewEncoder(w).Encode(dailySelectRes{
		Word: word, Matched: matched, Found: g.Sess.Found(), State: "in_progress", Complete: false,
	})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now().UTC())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
