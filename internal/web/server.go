// Package web exposes the simulator over HTTP: plan submission, comparison,
// the watchlist snapshot and an SSE stream of journaled runs.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dripfolio/dripfolio/internal/domain"
	"github.com/dripfolio/dripfolio/internal/services/analytics"
	"github.com/dripfolio/dripfolio/internal/services/simulator"
)

const runPollInterval = 2 * time.Second

type simulationService interface {
	Run(ctx context.Context, plan domain.InvestmentPlan) (*simulator.Result, error)
	Compare(ctx context.Context, base, alternative domain.InvestmentPlan) (*simulator.Comparison, error)
}

type watchlistService interface {
	Snapshot(ctx context.Context) []domain.WatchItem
}

type runJournal interface {
	Save(run domain.SimulationRun) error
	RunsAfter(index uint64) ([]domain.SimulationRunRecord, error)
}

// Server exposes HTTP endpoints serving the HTML page, the JSON API and an
// SSE stream of simulation runs.
type Server struct {
	Addr      string
	Simulator simulationService
	Watchlist watchlistService
	Journal   runJournal
	Logger    *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, sim simulationService, watch watchlistService, journal runJournal, l *zap.Logger) *Server {
	return &Server{Addr: addr, Simulator: sim, Watchlist: watch, Journal: journal, Logger: l}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/simulate", s.handleSimulate)
	mux.HandleFunc("/api/compare", s.handleCompare)
	mux.HandleFunc("/api/watchlist", s.handleWatchlist)
	mux.HandleFunc("/runs/stream", s.handleRunStream)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// planRequest is the wire form of an investment plan.
type planRequest struct {
	Coins         []string        `json:"coins"`
	StartDate     string          `json:"start_date"`
	DayOfMonth    int             `json:"day_of_month"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Currency      string          `json:"currency"`
	CurrentPrice  decimal.Decimal `json:"current_price,omitempty"`
}

func (r planRequest) toPlan() (domain.InvestmentPlan, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return domain.InvestmentPlan{}, fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
	}
	return domain.InvestmentPlan{
		Coins:         r.Coins,
		StartDate:     start,
		DayOfMonth:    r.DayOfMonth,
		MonthlyAmount: r.MonthlyAmount,
		Currency:      r.Currency,
		CurrentPrice:  r.CurrentPrice,
	}, nil
}

// simulateResponse bundles the run result with its chart series.
type simulateResponse struct {
	*simulator.Result
	Chart analytics.Series `json:"chart"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	plan, err := req.toPlan()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.Simulator.Run(r.Context(), plan)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.journalRun(plan, result)
	s.writeJSON(w, simulateResponse{Result: result, Chart: analytics.BuildSeries(result.Processed)})
}

// compareRequest carries the primary plan and an alternative coin
// selection simulated with the same parameters.
type compareRequest struct {
	Base        planRequest `json:"base"`
	Alternative planRequest `json:"alternative"`
}

type compareResponse struct {
	Base        simulateResponse `json:"base"`
	Alternative simulateResponse `json:"alternative"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	base, err := req.Base.toPlan()
	if err != nil {
		http.Error(w, "base: "+err.Error(), http.StatusBadRequest)
		return
	}
	alternative, err := req.Alternative.toPlan()
	if err != nil {
		http.Error(w, "alternative: "+err.Error(), http.StatusBadRequest)
		return
	}

	cmp, err := s.Simulator.Compare(r.Context(), base, alternative)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, compareResponse{
		Base:        simulateResponse{Result: cmp.Base, Chart: analytics.BuildSeries(cmp.Base.Processed)},
		Alternative: simulateResponse{Result: cmp.Alternative, Chart: analytics.BuildSeries(cmp.Alternative.Processed)},
	})
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Watchlist == nil {
		http.Error(w, "watchlist not available", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.Watchlist.Snapshot(r.Context()))
}

func (s *Server) handleRunStream(w http.ResponseWriter, r *http.Request) {
	if s.Journal == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "run journal not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeat every 30s so proxies keep the connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(runPollInterval)
	defer pollTicker.Stop()

	lastIndex := uint64(0)
	sendRuns := func() error {
		records, err := s.Journal.RunsAfter(lastIndex)
		if err != nil {
			return err
		}
		for _, record := range records {
			payload, err := json.Marshal(record.Run)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "event: run\n")
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
			lastIndex = record.Index
		}
		return nil
	}

	if err := sendRuns(); err != nil {
		http.Error(w, "failed to load runs", http.StatusInternalServerError)
		s.Logger.Error("run stream initial load", zap.Error(err))
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendRuns(); err != nil {
				s.Logger.Error("run stream poll", zap.Error(err))
			}
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", zap.Error(err))
	}
}

// journalRun appends the run outcome to the journal; journal failures never
// fail the request.
func (s *Server) journalRun(plan domain.InvestmentPlan, result *simulator.Result) {
	if s.Journal == nil {
		return
	}
	run := domain.SimulationRun{
		ID:            uuid.NewString(),
		Time:          time.Now().UTC(),
		Coins:         plan.Coins,
		Currency:      domain.NormalizeSlug(plan.Currency),
		MonthlyAmount: plan.MonthlyAmount,
		Periods:       len(result.Records),
		TotalInvested: result.Portfolio.TotalInvested,
		TotalValue:    result.Portfolio.TotalValue,
		ROIPercent:    result.Portfolio.ROIPercent,
	}
	if err := s.Journal.Save(run); err != nil {
		s.Logger.Warn("journal simulation run", zap.Error(err))
	}
}
