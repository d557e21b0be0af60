package object

import (
	"log/slog"

	"go.uber.org/fx"

	"suppliertracker/internal/config"
	"suppliertracker/internal/domain/repository"
)

// Module wires the disk-backed object store.
var Module = fx.Options(
	fx.Provide(newDiskStore),
	fx.Provide(func(s *DiskStore) repository.ObjectStore { return s }),
)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newDiskStore(p storeParams) (*DiskStore, error) {
	return NewDiskStore(p.Config.AttachmentsDir, p.Config.AttachmentsBaseURL, p.Logger)
}
