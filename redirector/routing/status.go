package routing

import (
	"encoding/json"
	"net/http"

	"github.com/freakmaxi/rdrelay/redirector/service"
	"go.uber.org/zap"
)

type statusRouter struct {
	tracker service.Tracker
	logger  *zap.Logger

	definitions []*Definition
}

func NewStatusRouter(tracker service.Tracker, logger *zap.Logger) Router {
	pR := &statusRouter{
		tracker:     tracker,
		logger:      logger,
		definitions: make([]*Definition, 0),
	}
	pR.setup()

	return pR
}

func (s *statusRouter) setup() {
	s.definitions =
		append(s.definitions,
			&Definition{
				Path:    "/status",
				Methods: []string{http.MethodGet},
				Handler: s.handleGet,
			},
		)
}

func (s *statusRouter) Get() []*Definition {
	return s.definitions
}

func (s *statusRouter) handleGet(w http.ResponseWriter, _ *http.Request) {
	body, err := json.Marshal(s.tracker.Status())
	if err != nil {
		w.WriteHeader(500)
		s.logger.Error(
			"Response of status request is failed",
			zap.Error(err),
		)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

var _ Router = &statusRouter{}
