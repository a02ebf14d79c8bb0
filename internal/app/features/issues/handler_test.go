package issues_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	"github.com/daehokim/soluhub/internal/app/features/issues"
	"github.com/daehokim/soluhub/internal/app/system/clock"
	"github.com/daehokim/soluhub/internal/testutil"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*issues.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := issues.NewHandler(db, errLog, logger, clock.Fixed(testNow))
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

type listResponse struct {
	Items []struct {
		ID           int64  `json:"id"`
		Title        string `json:"title"`
		Status       string `json:"status"`
		Priority     string `json:"priority"`
		CommentCount int64  `json:"comment_count"`
	} `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	TotalCount int64  `json:"total_count"`
	Status     string `json:"status"`
	Query      string `json:"query"`
}

func serveList(t *testing.T, handler *issues.Handler, target string) listResponse {
	t.Helper()
	req := testutil.NewAuthenticatedRequest("GET", target, testutil.ViewerUser())
	req = testutil.WithChiURLParam(req, "solution", "alpha")
	rec := testutil.NewRecorder()

	handler.ServeList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var resp listResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestServeList_StatusFilterAndPaging(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 12; i++ {
		fixtures.CreateIssue(ctx, "alpha", "open "+strconv.Itoa(i), "in_progress", "high")
	}
	for i := 0; i < 5; i++ {
		fixtures.CreateIssue(ctx, "alpha", "done "+strconv.Itoa(i), "resolved", "low")
	}

	resp := serveList(t, handler, "/alpha/issues?status=in_progress")
	if resp.TotalCount != 12 {
		t.Errorf("TotalCount = %d, want 12", resp.TotalCount)
	}
	if len(resp.Items) != 10 || resp.TotalPages != 2 {
		t.Errorf("got %d items over %d pages, want 10 over 2", len(resp.Items), resp.TotalPages)
	}
	for _, it := range resp.Items {
		if it.Status != "in_progress" {
			t.Errorf("item %d has status %q", it.ID, it.Status)
		}
	}

	resp = serveList(t, handler, "/alpha/issues?status=in_progress&page=2")
	if resp.Page != 2 || len(resp.Items) != 2 {
		t.Errorf("page 2 has %d items, want 2", len(resp.Items))
	}
}

func TestServeList_StalePageRefetchesClamped(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		fixtures.CreateIssue(ctx, "alpha", "issue "+strconv.Itoa(i), "waiting", "medium")
	}

	resp := serveList(t, handler, "/alpha/issues?page=7")
	if resp.Page != 1 {
		t.Errorf("Page = %d, want clamped to 1", resp.Page)
	}
	if len(resp.Items) != 3 {
		t.Errorf("len(Items) = %d, want 3 after refetch", len(resp.Items))
	}
	if strings.Contains(resp.Query, "page=") {
		t.Errorf("Query = %q still carries the stale page", resp.Query)
	}
}

func TestServeList_SearchSpansTitleContentClient(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateIssue(ctx, "alpha", "login page broken", "in_progress", "high")
	fixtures.CreateIssue(ctx, "alpha", "report export", "waiting", "medium")

	resp := serveList(t, handler, "/alpha/issues?search=login")
	if resp.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", resp.TotalCount)
	}
	if resp.Items[0].Title != "login page broken" {
		t.Errorf("Items[0].Title = %q", resp.Items[0].Title)
	}
}

func TestHandleBulkDelete_ContinuesPastFailures(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateIssue(ctx, "alpha", "first", "in_progress", "high")
	b := fixtures.CreateIssue(ctx, "alpha", "second", "waiting", "low")
	fixtures.CreateComment(ctx, a.ID, "Kim", "will be cascaded")

	body := `{"ids":[` + strconv.FormatInt(a.ID, 10) + `,99999,` + strconv.FormatInt(b.ID, 10) + `]}`
	req := httptest.NewRequest("POST", "/api/issues/bulk_delete", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.EditorUser())
	rec := testutil.NewRecorder()

	handler.HandleBulkDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusMultiStatus)
	var resp struct {
		Deleted   int     `json:"deleted"`
		FailedIDs []int64 `json:"failed_ids"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Deleted != 2 {
		t.Errorf("Deleted = %d, want 2", resp.Deleted)
	}
	if len(resp.FailedIDs) != 1 || resp.FailedIDs[0] != 99999 {
		t.Errorf("FailedIDs = %v, want [99999]", resp.FailedIDs)
	}

	list := serveList(t, handler, "/alpha/issues")
	if list.TotalCount != 0 {
		t.Errorf("TotalCount after delete = %d, want 0", list.TotalCount)
	}
}

func TestHandleBulkDelete_EmptySelection(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/issues/bulk_delete", strings.NewReader(`{"ids":[]}`))
	req = testutil.WithUser(req, testutil.EditorUser())
	rec := testutil.NewRecorder()

	handler.HandleBulkDelete(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusConflict)
}

func TestServeList_CommentCounts(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	is := fixtures.CreateIssue(ctx, "alpha", "needs discussion", "in_progress", "high")
	fixtures.CreateComment(ctx, is.ID, "Kim", "first")
	fixtures.CreateComment(ctx, is.ID, "Lee", "second")
	fixtures.CreateIssue(ctx, "alpha", "quiet one", "waiting", "low")

	resp := serveList(t, handler, "/alpha/issues")

	counts := map[string]int64{}
	for _, it := range resp.Items {
		counts[it.Title] = it.CommentCount
	}
	if counts["needs discussion"] != 2 {
		t.Errorf("comment count = %d, want 2", counts["needs discussion"])
	}
	if counts["quiet one"] != 0 {
		t.Errorf("comment count = %d, want 0", counts["quiet one"])
	}
}
