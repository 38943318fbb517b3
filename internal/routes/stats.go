package routes

import (
	"net/http"
)

// GetStats answers 200 whenever the local counts succeed, tracker fields
// that could not be scraped are "?".
func (routes *Routes) GetStats(w http.ResponseWriter, r *http.Request) AppError {
	snapshot, err := routes.stats.ComputeStats(r.Context(), GetIdentity(r))
	if err != nil {
		return fromDomain(err)
	}
	return writeJSON(w, snapshot)
}
