package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/service"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrUnauthenticated:    http.StatusUnauthorized,
	service.ErrRecordNotFound:     http.StatusNotFound,
	service.ErrUnknownRecordType:  http.StatusNotFound,
	service.ErrFieldNotSearchable: http.StatusBadRequest,
	service.ErrInvalidRecordType:  http.StatusBadRequest,
	service.ErrInvalidRecordID:    http.StatusBadRequest,
	service.ErrEmptyRecord:        http.StatusBadRequest,
	service.ErrEmptySearchValue:   http.StatusBadRequest,
	service.ErrStorageUnavailable: http.StatusServiceUnavailable,

	ErrInvalidJSON:  http.StatusBadRequest,
	ErrInvalidQuery: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and writes the mapped status. Server-side
// failures never echo the underlying error to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Send()
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	log.Debug().Err(err).Str("func", funcName).Int("status", status).Send()
	utils.WriteError(w, err.Error(), status)
}
