package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gitlab.com/ranfdev/sqadmin/internal/models"
	"gitlab.com/ranfdev/sqadmin/internal/utils"
)

const maxReportBody = 16 << 10

func (routes *Routes) ReportsRouter(r chi.Router) {
	r.Use(routes.IdentityCtx)

	r.With(httprate.LimitByIP(routes.envConfig.ReportsPerMinute, time.Minute)).
		Post("/{infoHash}", routes.AppHandler(routes.PostReport))

	admin := r.With(routes.RequireRole(models.RoleAdmin))
	admin.Get("/", routes.AppHandler(routes.GetReports))
	admin.Get("/{reportID}", routes.AppHandler(routes.GetReport))
	admin.Post("/{reportID}/resolve", routes.AppHandler(routes.ResolveReport))
}

func (routes *Routes) PostReport(w http.ResponseWriter, r *http.Request) AppError {
	var req models.CreateReportReq
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReportBody)).Decode(&req)
	if err != nil {
		return &ErrBadRequest{Message: models.ErrReasonRequired.Error(), Cause: err}
	}
	if err := utils.Validate().Struct(req); err != nil {
		return &ErrBadRequest{Message: models.ErrReasonRequired.Error(), Cause: err}
	}

	infoHash := chi.URLParam(r, "infoHash")
	_, err = routes.reports.CreateReport(r.Context(), GetIdentity(r), infoHash, req.Reason)
	if err != nil {
		return fromDomain(err)
	}
	return nil
}

func (routes *Routes) GetReports(w http.ResponseWriter, r *http.Request) AppError {
	reports, err := routes.reports.ListOpenReports(r.Context(), GetIdentity(r), utils.ParsePage(r))
	if err != nil {
		return fromDomain(err)
	}
	return writeJSON(w, reports)
}

func (routes *Routes) GetReport(w http.ResponseWriter, r *http.Request) AppError {
	reportID, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		return &ErrNotFound{Cause: err, Thing: "report"}
	}
	report, err := routes.reports.FetchReport(r.Context(), GetIdentity(r), reportID)
	if err != nil {
		return fromDomain(err)
	}
	return writeJSON(w, report)
}

// ResolveReport treats an id that doesn't parse like any unknown id.
func (routes *Routes) ResolveReport(w http.ResponseWriter, r *http.Request) AppError {
	reportID, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		routes.log.Debug().Str("report_id", chi.URLParam(r, "reportID")).Msg("Resolve of malformed report id ignored")
		return nil
	}
	if err := routes.reports.ResolveReport(r.Context(), GetIdentity(r), reportID); err != nil {
		return fromDomain(err)
	}
	return nil
}
