package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	auth "github.com/mind-engage/suggestify/internal/auth/middleware"
	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/db"
	"github.com/mind-engage/suggestify/internal/history"
	"github.com/mind-engage/suggestify/internal/quiz"
	"github.com/mind-engage/suggestify/internal/storage"
)

var testShows = []catalog.Show{
	{Title: "Breaking Bad", Year: 2008, Genres: "Crime, Drama, Thriller"},
	{Title: "The Office", Year: 2005, Genres: "Comedy"},
	{Title: "Sherlock", Year: 2010, Genres: "Crime, Drama, Mystery"},
	{Title: "Friends", Year: 1994, Genres: "Comedy, Romance"},
	{Title: "Parks and Recreation", Year: 2009, Genres: "Comedy"},
}

type testServer struct {
	h       http.Handler
	holder  *catalog.Holder
	history *history.Repo
	token   string
}

func newTestServer(t *testing.T, loaded bool) *testServer {
	t.Helper()
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	bs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	var tbl *catalog.Table
	if loaded {
		tbl = catalog.NewTable(testShows)
	}
	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc := auth.NewAuthService("test-secret")
	ts := &testServer{
		holder:  catalog.NewHolder(tbl),
		history: history.NewRepo(dbh),
	}
	ts.h = NewRouter(Deps{
		Battery:     quiz.DefaultBattery(),
		Catalog:     ts.holder,
		Store:       catalog.NewSQLStore(dbh),
		Blobs:       bs,
		History:     ts.history,
		Auth:        svc,
		Admin:       auth.Admin{User: "admin", PassHash: hash},
		CORSOrigins: []string{"http://localhost:3000"},
	})
	ts.token, err = svc.IssueJWT("admin", "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	ts.h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestQuizQuestions(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(t, "GET", "/api/quiz/questions", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	f := decode[quiz.File](t, rr)
	if len(f.Questions) != 5 || len(f.Questions[0].Options) != 4 {
		t.Fatalf("unexpected battery: %+v", f)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestQuizScore(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(t, "POST", "/api/quiz/score", `{"answers":["c","C","B","D","B","A"]}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body)
	}
	res := decode[quiz.Result](t, rr)
	if !reflect.DeepEqual(res.Genres, []string{"Comedy"}) {
		t.Fatalf("genres = %v", res.Genres)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != quiz.SkipBeyondBattery {
		t.Fatalf("skipped = %+v", res.Skipped)
	}

	events, err := ts.history.Recent(context.Background(), history.TypeQuizScored, 10)
	if err != nil || len(events) != 1 {
		t.Fatalf("history: %v %v", events, err)
	}
}

func TestQuizResultMatchesScore(t *testing.T) {
	ts := newTestServer(t, true)
	body := `{"answers":["C","C","B","D","B"]}`
	for _, path := range []string{"/api/quiz/score", "/api/quiz/result"} {
		rr := ts.do(t, "POST", path, body, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d: %s", path, rr.Code, rr.Body)
		}
		if res := decode[quiz.Result](t, rr); !reflect.DeepEqual(res.Genres, []string{"Comedy"}) {
			t.Fatalf("%s: genres = %v", path, res.Genres)
		}
	}
}

func TestQuizScoreNoSignal(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(t, "POST", "/api/quiz/score", `{"answers":["X","?"]}`, nil)
	res := decode[quiz.Result](t, rr)
	if rr.Code != http.StatusOK || len(res.Genres) != 0 || res.HasSignal() {
		t.Fatalf("got %d %+v", rr.Code, res)
	}
}

func TestQuizScoreValidation(t *testing.T) {
	ts := newTestServer(t, true)
	cases := map[string]string{
		"bad json":     `{"answers":`,
		"key too long": `{"answers":["ABCDEFGHIJ"]}`,
		"wrong type":   `{"answers":"A"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := ts.do(t, "POST", "/api/quiz/score", body, nil)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status %d: %s", rr.Code, rr.Body)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	ts := newTestServer(t, true)
	tests := []struct {
		name   string
		body   string
		titles []string
		errMsg string
	}{
		{"list", `{"genres":["crime","drama"]}`, []string{"Breaking Bad", "Sherlock"}, ""},
		{"comma string", `{"genres":" Crime , DRAMA "}`, []string{"Breaking Bad", "Sherlock"}, ""},
		{"limit", `{"genres":"comedy","limit":2}`, []string{"The Office", "Friends"}, ""},
		{"no match", `{"genres":["western"]}`, []string{}, "No shows found matching genres: western"},
		{"empty request", `{"genres":" , "}`, []string{}, "No genres requested."},
		{"no body", ``, []string{}, "No genres requested."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.do(t, "POST", "/api/recommend", tc.body, nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("status %d: %s", rr.Code, rr.Body)
			}
			out := decode[recommendResponse](t, rr)
			if got := showTitles(out.Recommendations); !reflect.DeepEqual(got, tc.titles) {
				t.Fatalf("titles = %v, want %v", got, tc.titles)
			}
			if out.Error != tc.errMsg {
				t.Fatalf("error = %q, want %q", out.Error, tc.errMsg)
			}
		})
	}
}

func TestRecommendWithoutCatalog(t *testing.T) {
	ts := newTestServer(t, false)
	rr := ts.do(t, "POST", "/api/recommend", `{"genres":"drama"}`, nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rr.Code)
	}
	if rr := ts.do(t, "GET", "/readyz", "", nil); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz %d", rr.Code)
	}
}

func TestQuizRecommend(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(t, "POST", "/api/quiz/recommend", `{"answers":["C","C","B","D","B"],"limit":1}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body)
	}
	out := decode[quizRecommendResponse](t, rr)
	if !reflect.DeepEqual(out.Genres, []string{"Comedy"}) ||
		!reflect.DeepEqual(showTitles(out.Recommendations), []string{"The Office"}) {
		t.Fatalf("got %+v", out)
	}

	rr = ts.do(t, "POST", "/api/quiz/recommend", `{"answers":[]}`, nil)
	out = decode[quizRecommendResponse](t, rr)
	if rr.Code != http.StatusOK || len(out.Recommendations) != 0 || out.Error == "" {
		t.Fatalf("no-signal: %d %+v", rr.Code, out)
	}
}

func TestListShows(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(t, "GET", "/api/shows?q=the&limit=10", "", nil)
	out := decode[struct {
		Total int            `json:"total"`
		Shows []catalog.Show `json:"shows"`
	}](t, rr)
	if out.Total != 1 || out.Shows[0].Title != "The Office" {
		t.Fatalf("got %+v", out)
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(t, "POST", "/auth/login", `{"username":"admin","password":"nope"}`, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", rr.Code)
	}
	rr = ts.do(t, "POST", "/auth/login", `{"username":"admin","password":"s3cret"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body)
	}
	if tok := decode[map[string]string](t, rr)["access_token"]; tok == "" {
		t.Fatalf("no token")
	}
}

func TestCatalogImport(t *testing.T) {
	ts := newTestServer(t, false)
	csv := "title,year,genres\nDark,2017,\"Sci-Fi, Mystery\"\nLost,2004,\"Drama, Mystery\"\n"

	rr := ts.do(t, "POST", "/admin/catalog/import", csv, map[string]string{"Content-Type": "text/csv"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated import: %d", rr.Code)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "shows.csv")
	_, _ = fw.Write([]byte(csv))
	_ = mw.Close()

	rr = ts.do(t, "POST", "/admin/catalog/import", buf.String(), map[string]string{
		"Content-Type":  mw.FormDataContentType(),
		"Authorization": "Bearer " + ts.token,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("import: %d %s", rr.Code, rr.Body)
	}
	res := decode[struct {
		Imported int    `json:"imported"`
		Snapshot string `json:"snapshot"`
	}](t, rr)
	if res.Imported != 2 || !strings.HasPrefix(res.Snapshot, "catalog/") {
		t.Fatalf("import result %+v", res)
	}
	if !ts.holder.Loaded() || ts.holder.Table().Len() != 2 {
		t.Fatalf("catalog not swapped in")
	}

	rr = ts.do(t, "GET", "/admin/catalog/snapshots/"+res.Snapshot, "", map[string]string{"Authorization": "Bearer " + ts.token})
	if rr.Code != http.StatusOK || rr.Body.String() != csv {
		t.Fatalf("snapshot: %d %q", rr.Code, rr.Body)
	}

	rr = ts.do(t, "POST", "/api/recommend", `{"genres":"mystery"}`, nil)
	if got := showTitles(decode[recommendResponse](t, rr).Recommendations); !reflect.DeepEqual(got, []string{"Dark", "Lost"}) {
		t.Fatalf("after import: %v", got)
	}
}

func TestCatalogImportRejectsBadCSV(t *testing.T) {
	ts := newTestServer(t, true)
	hdr := map[string]string{"Content-Type": "text/csv", "Authorization": "Bearer " + ts.token}
	for name, body := range map[string]string{
		"empty":       "",
		"no title":    "name,genres\nx,Drama\n",
		"header only": "title,genres\n",
	} {
		t.Run(name, func(t *testing.T) {
			rr := ts.do(t, "POST", "/admin/catalog/import", body, hdr)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status %d: %s", rr.Code, rr.Body)
			}
			if ts.holder.Table().Len() != len(testShows) {
				t.Fatalf("catalog replaced by a rejected import")
			}
		})
	}
}

func TestAdminRBAC(t *testing.T) {
	ts := newTestServer(t, true)
	svc := auth.NewAuthService("test-secret")
	viewer, _ := svc.IssueJWT("someone", "viewer")
	rr := ts.do(t, "GET", "/admin/history", "", map[string]string{"Authorization": "Bearer " + viewer})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("viewer: %d", rr.Code)
	}

	ts.do(t, "POST", "/api/recommend", `{"genres":"comedy"}`, nil)
	rr = ts.do(t, "GET", "/admin/history?type=ShowsRecommended", "", map[string]string{"Authorization": "Bearer " + ts.token})
	if rr.Code != http.StatusOK {
		t.Fatalf("admin: %d %s", rr.Code, rr.Body)
	}
	out := decode[struct {
		Events []history.Event `json:"events"`
	}](t, rr)
	if len(out.Events) != 1 || out.Events[0].Type != history.TypeShowsRecommended {
		t.Fatalf("events %+v", out.Events)
	}

	operator, _ := svc.IssueJWT("ops", "operator")
	rr = ts.do(t, "GET", "/admin/history", "", map[string]string{"Authorization": "Bearer " + operator})
	if rr.Code != http.StatusOK {
		t.Fatalf("operator: %d %s", rr.Code, rr.Body)
	}

	rr = ts.do(t, "GET", "/admin/history?type=Bogus", "", map[string]string{"Authorization": "Bearer " + ts.token})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bogus type: %d", rr.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, true)
	rr := ts.do(t, "GET", "/nope", "", nil)
	if rr.Code != http.StatusNotFound || decode[errorBody](t, rr).Code != "NOT_FOUND" {
		t.Fatalf("got %d %s", rr.Code, rr.Body)
	}
}
