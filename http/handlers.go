package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MaggieWM-sketch/water-quality-app/monitoring"
	"github.com/MaggieWM-sketch/water-quality-app/potability"
	"go.uber.org/zap"
)

var (
	pipeline *potability.Pipeline
	model    *potability.Model
	metrics  *monitoring.Metrics
	hub      *monitoring.Hub

	// auditSink receives the verdict surface of each prediction; nil
	// disables auditing (tests).
	auditSink func(modelVersion, verdict string, confidence float64, duration time.Duration)
	// auditSummary supplies the persisted aggregate for /api/stats.
	auditSummary func() (interface{}, error)
)

// SetPipeline installs the prediction pipeline. Tests substitute one built
// over a stub classifier.
func SetPipeline(p *potability.Pipeline) { pipeline = p }

// SetModel installs the loaded model handle for /api/model.
func SetModel(m *potability.Model) { model = m }

// SetMetrics installs the metrics registry.
func SetMetrics(m *monitoring.Metrics) { metrics = m }

// SetHub installs the monitor hub for the WebSocket feed.
func SetHub(h *monitoring.Hub) { hub = h }

// SetAuditSink installs the prediction audit recorder.
func SetAuditSink(sink func(modelVersion, verdict string, confidence float64, duration time.Duration)) {
	auditSink = sink
}

// SetAuditSummary installs the persisted-stats provider.
func SetAuditSummary(provider func() (interface{}, error)) { auditSummary = provider }

// RegisterHandlers registers all API routes.
func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/predict", handlePredict)
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/parameters", handleParameters)
	mux.HandleFunc("GET /api/model", handleModelInfo)
	mux.HandleFunc("GET /api/stats", handleStats)
	mux.HandleFunc("GET /api/ws/monitor", handleMonitorWS)
}

type predictRequest struct {
	Parameters   map[string]float64 `json:"parameters"`
	FillDefaults bool               `json:"fill_defaults"`
}

type predictResponse struct {
	*potability.PredictionResult
	RiskFactors     []potability.RiskFactor `json:"risk_factors,omitempty"`
	Recommendations []string                `json:"recommendations"`
	Note            string                  `json:"note"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	if pipeline == nil {
		respondError(w, http.StatusServiceUnavailable, errorResponse{Error: "no model loaded"})
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	// An empty parameter set is valid when the caller asks for defaults;
	// the substitutions come back in the defaulted report.
	if len(req.Parameters) == 0 && !req.FillDefaults {
		respondError(w, http.StatusBadRequest, errorResponse{Error: "parameters are required"})
		return
	}

	start := time.Now()
	result, err := pipeline.Predict(req.Parameters, potability.NormalizeOptions{FillDefaults: req.FillDefaults})
	if err != nil {
		var verr *potability.ValidationError
		if errors.As(err, &verr) {
			if metrics != nil {
				metrics.RecordValidationFailure()
			}
			respondError(w, http.StatusBadRequest, errorResponse{
				Error:  verr.Error(),
				Field:  verr.Field,
				Reason: string(verr.Reason),
			})
			return
		}
		// Anything else is a deployment fault, not a user-input fault.
		if metrics != nil {
			metrics.RecordInferenceFailure()
		}
		logger().Error("inference failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	duration := time.Since(start)

	if metrics != nil {
		metrics.RecordPrediction(result.Prediction == potability.VerdictSafe)
	}
	if auditSink != nil {
		auditSink(result.ModelVersion, string(result.Prediction), result.Confidence, duration)
	}
	if hub != nil {
		hub.PublishPrediction(monitoring.PredictionMessage{
			Prediction: string(result.Prediction),
			Confidence: result.Confidence,
			Duration:   duration.String(),
		})
	}

	riskFactors := potability.AssessRiskFactors(req.Parameters)
	respondJSON(w, predictResponse{
		PredictionResult: result,
		RiskFactors:      riskFactors,
		Recommendations:  potability.Recommend(result.Prediction, riskFactors, req.Parameters),
		Note:             potability.ConfidenceNote,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if pipeline != nil {
		status["model_version"] = pipeline.ModelVersion()
	} else {
		status["status"] = "degraded"
	}
	respondJSON(w, status)
}

func handleParameters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{
		"fields": potability.FieldSpecs(),
		"order":  potability.FieldNames(),
	})
}

func handleModelInfo(w http.ResponseWriter, r *http.Request) {
	if model == nil {
		respondError(w, http.StatusServiceUnavailable, errorResponse{Error: "no model loaded"})
		return
	}
	respondJSON(w, map[string]interface{}{
		"version":       model.Version,
		"normalization": potability.NormalizationScheme,
		"feature_order": potability.FieldNames(),
		"feature_count": model.Forest.FeatureCount(),
		"tree_count":    model.Forest.TreeCount(),
	})
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{}
	if metrics != nil {
		response["process"] = metrics.Snapshot()
	}
	if auditSummary != nil {
		if summary, err := auditSummary(); err == nil {
			response["persisted"] = summary
		} else {
			logger().Warn("audit summary failed", zap.Error(err))
		}
	}
	respondJSON(w, response)
}

func handleMonitorWS(w http.ResponseWriter, r *http.Request) {
	if hub == nil {
		respondError(w, http.StatusServiceUnavailable, errorResponse{Error: "monitor feed not available"})
		return
	}
	hub.HandleWebSocket(w, r)
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger().Error("encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger().Error("encode error response", zap.Error(err))
	}
}
