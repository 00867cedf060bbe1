package service

import (
	"github.com/MKhiriev/go-recall-keeper/internal/config"
	"github.com/MKhiriev/go-recall-keeper/internal/crypto"
	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/internal/scheduler"
	"github.com/MKhiriev/go-recall-keeper/internal/store"
	"github.com/MKhiriev/go-recall-keeper/internal/utils"
	"github.com/MKhiriev/go-recall-keeper/internal/validators"
)

type Services struct {
	AuthService AuthService
}

func NewServices(storages *store.Storages, keyChain crypto.KeyChainService, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(Deps{
			Credentials: storages.Credentials,
			Containers:  storages.Containers,
			Meta:        storages.Meta,
			KeyChain:    keyChain,
			Validator:   validators.NewRecallValidator(),
			Paths:       storages.PathsFor,
			Params:      scheduler.NewParams(cfg.Scheduler.LeechThreshold),
			IDs:         utils.NewUUIDGenerator(),
			Logger:      logger,
		}),
	}
}
