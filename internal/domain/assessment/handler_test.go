package assessment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mdscare/mdscare/internal/mds"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	body := `{"resident_id":"` + uuid.New().String() + `","assessment_type":"admission","reference_date":"2024-03-15T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Create(c); err != nil { t.Fatalf("unexpected error: %v", err) }
	if rec.Code != http.StatusCreated { t.Errorf("expected 201, got %d", rec.Code) }
}

func TestHandler_Create_BadType(t *testing.T) {
	h, e := newTestHandler()
	body := `{"resident_id":"` + uuid.New().String() + `","assessment_type":"weekly","reference_date":"2024-03-15T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Create(c); err == nil { t.Error("expected error") }
}

func TestHandler_SaveSection(t *testing.T) {
	h, e := newTestHandler()
	a := createTest(t, h.svc)
	body := `{"b0100":"0","b0200":"5"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "section"); c.SetParamValues(a.ID.String(), "section_b")
	if err := h.SaveSection(c); err != nil { t.Fatalf("unexpected error: %v", err) }
	if rec.Code != http.StatusOK { t.Errorf("expected 200, got %d", rec.Code) }

	var result mds.ValidationResult
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result.Valid { t.Error("expected invalid result for out-of-range hearing code") }
	found := false
	for _, ve := range result.Errors {
		if ve.Code == "B0200_INVALID" { found = true }
	}
	if !found { t.Errorf("expected B0200_INVALID, got %+v", result.Errors) }
}

func TestHandler_SaveSection_UnknownSection(t *testing.T) {
	h, e := newTestHandler()
	a := createTest(t, h.svc)
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "section"); c.SetParamValues(a.ID.String(), "section_z")
	if err := h.SaveSection(c); err == nil { t.Error("expected error") }
}

func TestHandler_GetTriggers_NotEvaluated(t *testing.T) {
	h, e := newTestHandler()
	a := createTest(t, h.svc)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id"); c.SetParamValues(a.ID.String())
	if err := h.GetTriggers(c); err == nil { t.Error("expected error before evaluation") }
}

func TestHandler_ItemHelp(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("item"); c.SetParamValues("c0500")
	if err := h.ItemHelp(c); err != nil { t.Fatalf("unexpected error: %v", err) }
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["help"] == "" { t.Error("expected help text") }
}

func TestHandler_SkipPatterns(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("section"); c.SetParamValues("section_c")
	if err := h.SkipPatterns(c); err != nil { t.Fatalf("unexpected error: %v", err) }
	var patterns []map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &patterns)
	if len(patterns) != 2 { t.Errorf("expected 2 patterns for section_c, got %d", len(patterns)) }
}

func TestHandler_SkipCheck(t *testing.T) {
	h, e := newTestHandler()
	a := createTest(t, h.svc)
	if _, err := h.svc.SaveSection(context.Background(), a.ID, "section_b", mds.SectionData{"b0100": "1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "item"); c.SetParamValues(a.ID.String(), "b0200")
	if err := h.SkipCheck(c); err != nil { t.Fatalf("unexpected error: %v", err) }
	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["skipped"] != true { t.Error("expected b0200 to be skipped while comatose") }
}
