package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/kickaround/pickup-league/internal/infrastructure/auth/organiser"
	"github.com/kickaround/pickup-league/internal/infrastructure/repository/memory"
	"github.com/kickaround/pickup-league/internal/platform/cache"
	"github.com/kickaround/pickup-league/internal/platform/logging"
	"github.com/kickaround/pickup-league/internal/usecase"
)

const testOrganiserPin = "4321"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	gameweekRepo := memory.NewGameweekRepository(nil)
	rosterRepo := memory.NewRosterRepository(playerRepo)

	tableService := usecase.NewTableService(playerRepo, gameweekRepo, rosterRepo, cache.NewStore(time.Minute), logger)
	gameweekService := usecase.NewGameweekService(gameweekRepo, rosterRepo, playerRepo, tableService, logger)
	rosterService := usecase.NewRosterService(rosterRepo, gameweekRepo, playerRepo, logger)
	playerService := usecase.NewPlayerService(playerRepo, tableService, logger)
	verifier := organiser.NewStaticVerifier(testOrganiserPin)

	handler := NewHandler(gameweekService, rosterService, playerService, tableService, verifier, logger)
	return NewRouter(handler, verifier, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body, pin string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if pin != "" {
		req.Header.Set("X-Organiser-Pin", pin)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func errorReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got body %s", rec.Body.String())
	}
	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected errors list, got %v", errorObj)
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("expected error item object, got %v", items[0])
	}
	reason, _ := first["reason"].(string)
	return reason
}

func createOpenGameweek(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks",
		`{"gameDate":"2026-09-03","gameTime":"19:00","location":"Victoria Park"}`, testOrganiserPin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create gameweek: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected gameweek data in response")
	}
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("expected gameweek id in response")
	}
	return id
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_CreateGameweekRequiresPin(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks",
		`{"gameDate":"2026-09-03"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/gameweeks",
		`{"gameDate":"2026-09-03"}`, "0000")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for wrong pin, got %d", rec.Code)
	}
}

func TestRouter_SecondOpenGameweekConflicts(t *testing.T) {
	router := newTestRouter(t)
	createOpenGameweek(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks",
		`{"gameDate":"2026-09-10"}`, testOrganiserPin)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if reason := errorReason(t, rec); reason != "conflict" {
		t.Fatalf("expected reason conflict, got %q", reason)
	}
}

func TestRouter_ClaimFlow(t *testing.T) {
	router := newTestRouter(t)
	gameweekID := createOpenGameweek(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/slots/claim",
		`{"playerId":"p-dave-smith","position":3}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("claim: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected claim data in response")
	}
	entry, ok := data["entry"].(map[string]any)
	if !ok {
		t.Fatalf("expected entry in claim response")
	}
	if got, _ := entry["playerFirstName"].(string); got != "Dave" {
		t.Fatalf("expected playerFirstName Dave, got %q", got)
	}
	if got, _ := entry["team"].(string); got != "subs" {
		t.Fatalf("expected new claims to land on subs, got %q", got)
	}

	// Same player again: their existing slot wins the error message.
	rec = doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/slots/claim",
		`{"playerId":"p-dave-smith","position":7}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if reason := errorReason(t, rec); reason != "playerAlreadySignedUp" {
		t.Fatalf("expected reason playerAlreadySignedUp, got %q", reason)
	}

	// Another player on the same slot.
	rec = doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/slots/claim",
		`{"playerId":"p-jim-jones","position":3}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if reason := errorReason(t, rec); reason != "slotTaken" {
		t.Fatalf("expected reason slotTaken, got %q", reason)
	}
}

func TestRouter_ClaimUnknownGameweek(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks/no-such-gw/slots/claim",
		`{"playerId":"p-dave-smith","position":3}`, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_LockedGameweekRejectsClaims(t *testing.T) {
	router := newTestRouter(t)
	gameweekID := createOpenGameweek(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/lock",
		`{"darksScore":3,"whitesScore":1}`, testOrganiserPin)
	if rec.Code != http.StatusOK {
		t.Fatalf("lock: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/slots/claim",
		`{"playerId":"p-dave-smith","position":3}`, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if reason := errorReason(t, rec); reason != "gameweekLocked" {
		t.Fatalf("expected reason gameweekLocked, got %q", reason)
	}
}

func TestRouter_LeagueTableAfterLock(t *testing.T) {
	router := newTestRouter(t)
	gameweekID := createOpenGameweek(t, router)

	for _, claim := range []string{
		`{"playerId":"p-dave-smith","position":1}`,
		`{"playerId":"p-jim-jones","position":2}`,
	} {
		rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/slots/claim", claim, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("claim: expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}
	for _, assign := range []string{
		`{"playerId":"p-dave-smith","team":"darks"}`,
		`{"playerId":"p-jim-jones","team":"whites"}`,
	} {
		rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/slots/assign", assign, testOrganiserPin)
		if rec.Code != http.StatusOK {
			t.Fatalf("assign: expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/lock",
		`{"darksScore":2,"whitesScore":0}`, testOrganiserPin)
	if rec.Code != http.StatusOK {
		t.Fatalf("lock: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/league/table", nil)
	tableRec := httptest.NewRecorder()
	router.ServeHTTP(tableRec, req)
	if tableRec.Code != http.StatusOK {
		t.Fatalf("table: expected status 200, got %d", tableRec.Code)
	}

	rows, ok := decodeEnvelope(t, tableRec)["data"].([]any)
	if !ok || len(rows) == 0 {
		t.Fatalf("expected table rows, got %s", tableRec.Body.String())
	}
	top, ok := rows[0].(map[string]any)
	if !ok {
		t.Fatalf("expected row object")
	}
	if got, _ := top["playerId"].(string); got != "p-dave-smith" {
		t.Fatalf("expected p-dave-smith on top of the table, got %v", top)
	}
	if got, _ := top["wins"].(float64); got != 1 {
		t.Fatalf("expected 1 win for the winner, got %v", top["wins"])
	}
}

func TestRouter_GameOverviewFreshInstall(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/game/overview", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected overview data")
	}
	if data["gameweek"] != nil {
		t.Fatalf("expected nil gameweek on a fresh install, got %v", data["gameweek"])
	}
	players, ok := data["players"].([]any)
	if !ok || len(players) == 0 {
		t.Fatalf("expected seeded players in overview")
	}
}

func TestRouter_VerifyOrganiser(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/organiser/verify",
		`{"pin":"`+testOrganiserPin+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/organiser/verify",
		`{"pin":"0000"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_PlayerCRUD(t *testing.T) {
	router := newTestRouter(t)

	// Both names are required, as on the sign-up sheet.
	rec := doJSON(t, router, http.MethodPost, "/v1/players",
		`{"firstName":"New"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create player without last name: expected status 400, got %d", rec.Code)
	}

	// Player creation is open so newcomers can add themselves to the pool.
	rec = doJSON(t, router, http.MethodPost, "/v1/players",
		`{"firstName":"New","lastName":"Signing"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create player: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected player data")
	}
	playerID, _ := data["id"].(string)
	if playerID == "" {
		t.Fatalf("expected player id")
	}

	// Duplicate names collide.
	rec = doJSON(t, router, http.MethodPost, "/v1/players",
		`{"firstName":"new","lastName":"signing"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for duplicate name, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/v1/players/"+playerID,
		`{"firstName":"Renamed","lastName":"Signing"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("update player without pin: expected status 401, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/v1/players/"+playerID,
		`{"firstName":"Renamed","lastName":"Signing"}`, testOrganiserPin)
	if rec.Code != http.StatusOK {
		t.Fatalf("update player: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/players/"+playerID, nil)
	req.Header.Set("X-Organiser-Pin", testOrganiserPin)
	deleteRec := httptest.NewRecorder()
	router.ServeHTTP(deleteRec, req)
	if deleteRec.Code != http.StatusOK {
		t.Fatalf("delete player: expected status 200, got %d", deleteRec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/v1/players/"+playerID,
		`{"firstName":"Ghost","lastName":"Player"}`, testOrganiserPin)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestRouter_UnknownFieldRejected(t *testing.T) {
	router := newTestRouter(t)
	gameweekID := createOpenGameweek(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/gameweeks/"+gameweekID+"/slots/claim",
		`{"playerId":"p-dave-smith","position":3,"shirtNumber":9}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d", rec.Code)
	}
}
