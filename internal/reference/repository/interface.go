package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for reference data: locations, visa
// types, and CSR fulfillment lookups.
type Repository interface {
	CreateCountry(ctx context.Context, name, isoCode string) (Country, error)
	CreateState(ctx context.Context, name string, countryID uuid.UUID) (State, error)
	CreateCity(ctx context.Context, name string, stateID uuid.UUID) (City, error)
	ListCountries(ctx context.Context) ([]Country, error)
	ListStates(ctx context.Context) ([]State, error)
	ListCities(ctx context.Context) ([]City, error)

	CreateVisaType(ctx context.Context, name string) (VisaType, error)
	ListVisaTypes(ctx context.Context) ([]VisaType, error)
	GetVisaTypeByID(ctx context.Context, id uuid.UUID) (VisaType, error)

	CreateShippingCompany(ctx context.Context, name, phoneNumber string) (ShippingCompany, error)
	ListShippingCompanies(ctx context.Context) ([]ShippingCompany, error)
	CreateDriver(ctx context.Context, name, phoneNumber string) (Driver, error)
	ListDrivers(ctx context.Context) ([]Driver, error)
}
