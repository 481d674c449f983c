package carelog

import (
	"time"

	"careledger/internal/app/repository"

	"github.com/sirupsen/logrus"
)

// Service is the care log engine: access predicates, the draft/submitted
// state machine, section-level visibility, the audit trail and the per-viewer
// watermark. Handlers stay thin and translate its results to HTTP.
type Service struct {
	repo *repository.Repository
	log  *logrus.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewService(repo *repository.Repository, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		repo: repo,
		log:  logger,
		now:  time.Now,
	}
}
