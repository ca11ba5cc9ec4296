package repositories

import "github.com/vsinha/scacmatch/pkg/domain/entities"

// CarrierRepository provides access to the deduplicated carrier manifest
type CarrierRepository interface {
	LoadCarriers(rows []*entities.CarrierRow) error
	GetAllCarriers() ([]*entities.CarrierRow, error)
	FindByContainer(fragment string) ([]*entities.CarrierRow, error)
}
