package cmd

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyla-ma/melody-surprise/config"
	"github.com/skyla-ma/melody-surprise/model"
	"github.com/skyla-ma/melody-surprise/stats"
	"github.com/skyla-ma/melody-surprise/util"
)

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves computed artifacts as JSON",
	Long: `Loads the surprise artifacts once at startup and serves per-genre
summaries and example curves over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := baseConfig()
		if err := conf.Validate(); err != nil {
			return err
		}
		return runServe(conf, flagAddr)
	},
}

type server struct {
	summaries []model.SummaryResponse
	genres    []string
	curves    map[string]model.CurveResponse
}

func runServe(conf config.Config, addr string) error {
	router, err := NewRouter(conf)
	if err != nil {
		return err
	}
	logrus.Infof("listening on %v", addr)
	return http.ListenAndServe(addr, cors.Default().Handler(router))
}

// NewRouter loads the artifacts and returns the API routes.
func NewRouter(conf config.Config) (http.Handler, error) {
	srv, err := newServer(conf)
	if err != nil {
		return nil, err
	}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/summaries", srv.handleSummaries).Methods("GET")
	router.HandleFunc("/genres", srv.handleGenres).Methods("GET")
	router.HandleFunc("/genres/{genre}/curve", srv.handleCurve).Methods("GET")
	return router, nil
}

func newServer(conf config.Config) (*server, error) {
	arts, err := loadArtifacts(conf)
	if err != nil {
		return nil, err
	}
	srv := &server{
		summaries: make([]model.SummaryResponse, 0, len(arts)),
		genres:    make([]string, 0, len(arts)),
		curves:    make(map[string]model.CurveResponse),
	}
	for _, g := range util.SortedKeys(arts) {
		a := arts[g]
		s := stats.Summarize(g, a.records)
		srv.genres = append(srv.genres, g)
		srv.summaries = append(srv.summaries, model.SummaryResponse{
			Genre:    g,
			Mean:     stats.Cell(s.Mean),
			Variance: stats.Cell(s.Variance),
			Count:    s.Count,
			GapCount: s.GapCount,
		})
		if a.bestPath == "" {
			continue
		}
		rel, err := filepath.Rel(conf.SurpriseDir(), a.bestPath)
		if err != nil {
			rel = filepath.Base(a.bestPath)
		}
		points := make([]model.CurvePoint, len(a.bestRecs))
		for i, r := range a.bestRecs {
			points[i] = model.CurvePoint{Index: r.Index, Pitch: r.Pitch, Bits: r.Bits, Gap: r.Gap}
		}
		srv.curves[g] = model.CurveResponse{Genre: g, File: filepath.ToSlash(rel), Points: points}
	}
	return srv, nil
}

func (s *server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.summaries)
}

func (s *server) handleGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.genres)
}

func (s *server) handleCurve(w http.ResponseWriter, r *http.Request) {
	g := mux.Vars(r)["genre"]
	curve, ok := s.curves[g]
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no curve for genre " + g})
		return
	}
	writeJSON(w, http.StatusOK, curve)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("encoding response: %v", err)
	}
}
