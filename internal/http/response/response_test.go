package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

func TestErrorMirrorsHTTPStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Error(c, CodeNotFound, "missing")

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected http status: got=%d expected=%d", w.Code, http.StatusNotFound)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeNotFound || body.Msg != "missing" || body.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestCreatedAndNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, gin.H{"id": 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected created status: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r := gin.New()
	r.DELETE("/x", func(c *gin.Context) { NoContent(c) })
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/x", nil))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("unexpected no content response: code=%d body=%q", w.Code, w.Body.String())
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 6, 13)
	if p.TotalPage != 3 || p.Page != 2 || p.PageSize != 6 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if BuildPagination(1, 0, 10).TotalPage != 0 {
		t.Fatalf("zero page size should not divide")
	}
}

func TestSuccessWithPageFlattensEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SuccessWithPage(c, []int{1, 2}, BuildPagination(1, 2, 5))

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	for _, key := range []string{"status_code", "msg", "data", "pagination"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing top-level key %q in %s", key, w.Body.String())
		}
	}
	if _, nested := body["Response"]; nested {
		t.Fatalf("embedded response should be inlined: %s", w.Body.String())
	}
}

func TestAppErrorServerSide(t *testing.T) {
	if WrapError(CodeNotFound, "missing", nil).ServerSide() {
		t.Fatalf("404 is not a server error")
	}
	if !WrapError(CodeInternal, "boom", nil).ServerSide() || !WrapError(42, "odd", nil).ServerSide() {
		t.Fatalf("5xx and unknown codes map to server errors")
	}
	if WrapError(CodeBadRequest, "bad", errors.New("cause")).Error() != "bad: cause" {
		t.Fatalf("unexpected error text")
	}
}
