package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/grafbee/procurement-service/internal/handlers"
	"github.com/grafbee/procurement-service/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(proposalHandler *handlers.ProposalHandler, requirementHandler *handlers.RequirementHandler, analysisHandler *handlers.AnalysisHandler, vendorHandler *handlers.VendorHandler, notificationHandler *handlers.NotificationHandler) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, handler http.HandlerFunc) {
		route := pattern
		if i := strings.IndexByte(pattern, ' '); i >= 0 {
			route = pattern[i+1:]
		}
		mux.HandleFunc(pattern, instrument(route, handler))
	}

	handle("/api/ping", handlers.PingHandler)

	handle("/api/proposals/new", proposalHandler.CreateProposal)
	handle("/api/proposals", proposalHandler.GetProposals)
	handle("/api/proposals/my", proposalHandler.GetUserProposals)
	handle("/api/proposals/{proposalId}/status", proposalHandler.GetProposalStatus)
	handle("/api/proposals/{proposalId}/edit", proposalHandler.EditProposal)
	handle("/api/proposals/{proposalId}/decision", proposalHandler.SubmitDecision)
	handle("/api/proposals/{proposalId}/certificates", proposalHandler.ConfirmCertificates)
	handle("/api/proposals/{proposalId}/dispatch", proposalHandler.DispatchProposal)
	handle("/api/proposals/{proposalId}/receive", proposalHandler.ConfirmReceipt)
	handle("POST /api/proposals/{proposalId}/review", proposalHandler.SubmitReview)
	handle("GET /api/proposals/{proposalId}/reviews", proposalHandler.GetProposalReviews)

	handle("/api/requirements/new", requirementHandler.CreateRequirement)
	handle("/api/requirements", requirementHandler.GetRequirements)
	handle("/api/requirements/{requirementId}/edit", requirementHandler.EditRequirement)

	handle("/api/analysis", analysisHandler.RunAnalysis)

	handle("/api/vendors/new", vendorHandler.RegisterVendor)
	handle("/api/vendors/{vendor}/rating", vendorHandler.GetVendorRating)
	handle("POST /api/vendors/{vendor}/documents", vendorHandler.SubmitDocument)
	handle("GET /api/vendors/{vendor}/documents", vendorHandler.GetVendorDocuments)
	handle("/api/vendors/{vendor}/documents/verify", vendorHandler.VerifyDocument)

	handle("/api/catalog", vendorHandler.GetCatalog)

	handle("/api/notifications", notificationHandler.GetUnread)
	handle("/api/notifications/read", notificationHandler.MarkAllRead)

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// statusRecorder запоминает код ответа для метрик.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument оборачивает обработчик сбором метрик длительности запроса.
// Меткой маршрута служит шаблон пути, а не сам путь, чтобы не плодить
// серии на каждый идентификатор.
func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next(recorder, r)
		metrics.CollectRequest(route, r.Method, recorder.status, time.Since(start).Seconds())
	}
}
