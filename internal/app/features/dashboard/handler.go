// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	clientstore "github.com/daehokim/soluhub/internal/app/store/clients"
	issuestore "github.com/daehokim/soluhub/internal/app/store/issues"
	workstore "github.com/daehokim/soluhub/internal/app/store/works"
	"github.com/daehokim/soluhub/internal/app/system/clock"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/app/system/querysync"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"github.com/daehokim/soluhub/internal/app/system/weekcal"
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the solution dashboard.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Clients *clientstore.Store
	Works   *workstore.Store
	Issues  *issuestore.Store
	Clock   clock.Clock
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger, clk clock.Clock) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		ErrLog:  errLog,
		Clients: clientstore.New(db),
		Works:   workstore.New(db),
		Issues:  issuestore.New(db),
		Clock:   clk,
	}
}

var dashFields = querysync.Fields{Week: true}

// ServeDashboard renders the week-scoped dashboard for one solution.
// GET /{solution}/dashboard?week=YYYY-Www
//
// The three collections are fetched concurrently; the aggregation
// itself is pure and runs on the combined result.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	solution := normalize.Solution(chi.URLParam(r, "solution"))

	state := querysync.Parse(r.URL.Query(), dashFields)
	now := h.Clock.Now()

	week := weekcal.Token(state.Week)
	start, end, ok := weekcal.Range(week)
	if !ok {
		week = weekcal.Current(now)
		start, end, _ = weekcal.Range(week)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var (
		wg      sync.WaitGroup
		clients []models.Client
		works   []models.Work
		issues  []models.Issue
		errs    [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		clients, errs[0] = h.Clients.ListBySolution(ctx, solution)
	}()
	go func() {
		defer wg.Done()
		works, errs[1] = h.Works.ListBySolutionRange(ctx, solution, start, end.Add(24*time.Hour-time.Nanosecond))
	}()
	go func() {
		defer wg.Done()
		issues, errs[2] = h.Issues.ListBySolution(ctx, solution)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load dashboard data failed", err, "A database error occurred.")
			return
		}
	}

	stats := Aggregate(week, clients, works, issues, now)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}
