package httpserver

import (
	"database/sql"
	"encoding/json"
	mrand "math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/caffeinepub/word-hunt-game/internal/puzzle"
	"github.com/caffeinepub/word-hunt-game/internal/store"
	"github.com/caffeinepub/word-hunt-game/internal/words"
)

// testSchema mirrors sql/001_init.sql; migrations read from disk, so tests
// apply the schema directly against an in-memory database.
const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY, username TEXT NOT NULL UNIQUE, password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL, games_played INTEGER NOT NULL DEFAULT 0,
    words_found INTEGER NOT NULL DEFAULT 0, completed INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE games (
    id TEXT PRIMARY KEY, user_id TEXT, anonymous_id TEXT,
    grid_size INTEGER NOT NULL, words_total INTEGER NOT NULL,
    words_found INTEGER NOT NULL DEFAULT 0, elapsed_ms INTEGER,
    started_at TEXT NOT NULL, finished_at TEXT, status TEXT NOT NULL DEFAULT 'playing'
);
CREATE TABLE daily_results (
    user_id TEXT NOT NULL, date TEXT NOT NULL, words_found INTEGER NOT NULL,
    total_words INTEGER NOT NULL, elapsed_ms INTEGER NOT NULL,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    UNIQUE(user_id, date)
);
CREATE TABLE profile_kv (
    user_id TEXT NOT NULL, key TEXT NOT NULL, value TEXT NOT NULL,
    updated_at TEXT NOT NULL, PRIMARY KEY (user_id, key)
);`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	if err := words.Init(); err != nil {
		t.Fatalf("words.Init: %v", err)
	}
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Each pooled connection would get its own :memory: database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return New(store.NewMemoryStore(), db)
}

func doJSON(t *testing.T, srv *Server, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestNewGameAndSelectFlow(t *testing.T) {
	srv := newTestServer(t)

	// Fixed seed + fixed word list make the generated puzzle reproducible,
	// so the test can recompute placements and drag real coordinates.
	customWords := []string{"ENGINE", "RIVER", "STONE"}
	body := `{"gridSize":15,"seed":42,"words":["ENGINE","RIVER","STONE"]}`
	w := doJSON(t, srv, "POST", "/game/new", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("game/new: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		GameID   string   `json:"gameId"`
		Grid     []string `json:"grid"`
		WordList []string `json:"wordList"`
	}
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.GameID == "" || len(created.Grid) != 15 {
		t.Fatalf("unexpected response %+v", created)
	}
	anonCookies := w.Result().Cookies()

	// Recompute the same puzzle locally to learn where words were placed.
	local := puzzle.Generate(words.Normalize(customWords), 15,
		puzzle.Options{Rand: mrand.New(mrand.NewSource(42))})
	if len(local.PlacedWords) == 0 {
		t.Fatal("local regeneration placed no words")
	}
	if len(local.WordList) != len(created.WordList) {
		t.Fatalf("server word list %v diverges from local %v", created.WordList, local.WordList)
	}

	// A drag that is not a straight line is a routine no-match, not an error.
	w = doJSON(t, srv, "POST", "/game/select",
		`{"gameId":"`+created.GameID+`","startRow":0,"startCol":0,"endRow":1,"endCol":2}`, anonCookies)
	if w.Code != http.StatusOK {
		t.Fatalf("select: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var sel struct {
		Word     string   `json:"word"`
		Matched  bool     `json:"matched"`
		Found    []string `json:"found"`
		Complete bool     `json:"complete"`
	}
	_ = json.NewDecoder(w.Body).Decode(&sel)
	if sel.Matched {
		t.Fatal("non-collinear drag must not match")
	}

	// Find every placed word by dragging its endpoints.
	for _, pw := range local.PlacedWords {
		first, last := pw.Cells[0], pw.Cells[len(pw.Cells)-1]
		payload := `{"gameId":"` + created.GameID + `",` +
			`"startRow":` + strconv.Itoa(first.Row) + `,"startCol":` + strconv.Itoa(first.Col) + `,` +
			`"endRow":` + strconv.Itoa(last.Row) + `,"endCol":` + strconv.Itoa(last.Col) + `}`
		w = doJSON(t, srv, "POST", "/game/select", payload, anonCookies)
		if w.Code != http.StatusOK {
			t.Fatalf("select %q: got %d: %s", pw.Word, w.Code, w.Body.String())
		}
		_ = json.NewDecoder(w.Body).Decode(&sel)
		if !sel.Matched || sel.Word != pw.Word {
			t.Fatalf("select %q: matched=%v word=%q", pw.Word, sel.Matched, sel.Word)
		}
	}
	if !sel.Complete {
		t.Fatal("expected complete after finding every placed word")
	}

	// State reflects the finds.
	w = doJSON(t, srv, "GET", "/game/state?gameId="+created.GameID, "", anonCookies)
	if w.Code != http.StatusOK {
		t.Fatalf("state: got %d", w.Code)
	}
	var st struct {
		Found    []string `json:"found"`
		Complete bool     `json:"complete"`
	}
	_ = json.NewDecoder(w.Body).Decode(&st)
	if len(st.Found) != len(local.PlacedWords) || !st.Complete {
		t.Fatalf("state found=%v complete=%v", st.Found, st.Complete)
	}

	// Finish drops the session.
	w = doJSON(t, srv, "POST", "/game/finish",
		`{"gameId":"`+created.GameID+`","elapsedMs":12345}`, anonCookies)
	if w.Code != http.StatusOK {
		t.Fatalf("finish: got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, "GET", "/game/state?gameId="+created.GameID, "", anonCookies)
	if w.Code != http.StatusNotFound {
		t.Fatalf("state after finish: expected 404, got %d", w.Code)
	}
}

func TestSelectUnknownGame(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, "POST", "/game/select",
		`{"gameId":"nope","startRow":0,"startCol":0,"endRow":0,"endCol":0}`, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSignupAndProfileKV(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, "POST", "/auth/signup",
		`{"username":"alice","password":"supersecret"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("signup: got %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()

	// Gated route without credentials.
	if w := doJSON(t, srv, "GET", "/profile", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("profile without auth: expected 401, got %d", w.Code)
	}

	// Upsert, read back, list, delete.
	w = doJSON(t, srv, "PUT", "/profile/theme", `{"value":"dark"}`, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("profile put: got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, "GET", "/profile/theme", "", cookies)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"value":"dark"`) {
		t.Fatalf("profile get: got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, "PUT", "/profile/theme", `{"value":"light"}`, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("profile overwrite: got %d", w.Code)
	}
	w = doJSON(t, srv, "GET", "/profile", "", cookies)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"theme":"light"`) {
		t.Fatalf("profile list: got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, "DELETE", "/profile/theme", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("profile delete: got %d", w.Code)
	}
	w = doJSON(t, srv, "GET", "/profile/theme", "", cookies)
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted key: expected 404, got %d", w.Code)
	}
}

func TestDailyFlow(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, "POST", "/daily/new", `{}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("daily/new: got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		GameID string   `json:"gameId"`
		Date   string   `json:"date"`
		Played bool     `json:"played"`
		Grid   []string `json:"grid"`
	}
	_ = json.NewDecoder(w.Body).Decode(&created)
	if created.Played || created.GameID == "" || len(created.Grid) == 0 {
		t.Fatalf("unexpected daily/new response %+v", created)
	}
	cookies := w.Result().Cookies()

	// Same anon user asks again: the session is reused.
	w = doJSON(t, srv, "POST", "/daily/new", `{}`, cookies)
	var again struct {
		GameID string `json:"gameId"`
	}
	_ = json.NewDecoder(w.Body).Decode(&again)
	if again.GameID != created.GameID {
		t.Fatalf("expected reused session %s, got %s", created.GameID, again.GameID)
	}

	// Give up: result is persisted and the day locks.
	w = doJSON(t, srv, "POST", "/daily/select",
		`{"gameId":"`+created.GameID+`","giveUp":true}`, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("daily giveup: got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, "POST", "/daily/new", `{}`, cookies)
	var locked struct {
		Played bool `json:"played"`
	}
	_ = json.NewDecoder(w.Body).Decode(&locked)
	if !locked.Played {
		t.Fatal("expected played=true after giving up today's puzzle")
	}

	// Leaderboard has the row.
	w = doJSON(t, srv, "GET", "/daily/leaderboard", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard: got %d", w.Code)
	}
	var lb struct {
		Date string `json:"date"`
		Top  []struct {
			WordsFound int `json:"wordsFound"`
		} `json:"top"`
	}
	_ = json.NewDecoder(w.Body).Decode(&lb)
	if lb.Date != created.Date || len(lb.Top) != 1 {
		t.Fatalf("leaderboard date=%s rows=%d", lb.Date, len(lb.Top))
	}
}
