package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/reference/repository"
	"backoffice_portal_backend/internal/reference/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

type fakeRepo struct {
	countries []repository.Country
	states    []repository.State
	cities    []repository.City
	visas     []repository.VisaType
	companies []repository.ShippingCompany
	drivers   []repository.Driver
}

var _ repository.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) CreateCountry(_ context.Context, name, isoCode string) (repository.Country, error) {
	for _, c := range f.countries {
		if c.IsoCode == isoCode {
			return repository.Country{}, apperr.Conflict("country already exists")
		}
	}
	country := repository.Country{ID: uuid.New(), Name: name, IsoCode: isoCode}
	f.countries = append(f.countries, country)
	return country, nil
}

func (f *fakeRepo) CreateState(_ context.Context, name string, countryID uuid.UUID) (repository.State, error) {
	state := repository.State{ID: uuid.New(), Name: name, CountryID: countryID}
	f.states = append(f.states, state)
	return state, nil
}

func (f *fakeRepo) CreateCity(_ context.Context, name string, stateID uuid.UUID) (repository.City, error) {
	city := repository.City{ID: uuid.New(), Name: name, StateID: stateID}
	f.cities = append(f.cities, city)
	return city, nil
}

func (f *fakeRepo) ListCountries(context.Context) ([]repository.Country, error) {
	return f.countries, nil
}

func (f *fakeRepo) ListStates(context.Context) ([]repository.State, error) {
	return f.states, nil
}

func (f *fakeRepo) ListCities(context.Context) ([]repository.City, error) {
	return f.cities, nil
}

func (f *fakeRepo) CreateVisaType(_ context.Context, name string) (repository.VisaType, error) {
	for _, v := range f.visas {
		if v.Name == name {
			return repository.VisaType{}, apperr.Conflict("visa type already exists")
		}
	}
	visa := repository.VisaType{ID: uuid.New(), Name: name}
	f.visas = append(f.visas, visa)
	return visa, nil
}

func (f *fakeRepo) ListVisaTypes(context.Context) ([]repository.VisaType, error) {
	return f.visas, nil
}

func (f *fakeRepo) GetVisaTypeByID(_ context.Context, id uuid.UUID) (repository.VisaType, error) {
	for _, v := range f.visas {
		if v.ID == id {
			return v, nil
		}
	}
	return repository.VisaType{}, apperr.NotFound("visa type not found")
}

func (f *fakeRepo) CreateShippingCompany(_ context.Context, name, phoneNumber string) (repository.ShippingCompany, error) {
	company := repository.ShippingCompany{ID: uuid.New(), Name: name, PhoneNumber: phoneNumber}
	f.companies = append(f.companies, company)
	return company, nil
}

func (f *fakeRepo) ListShippingCompanies(context.Context) ([]repository.ShippingCompany, error) {
	return f.companies, nil
}

func (f *fakeRepo) CreateDriver(_ context.Context, name, phoneNumber string) (repository.Driver, error) {
	driver := repository.Driver{ID: uuid.New(), Name: name, PhoneNumber: phoneNumber}
	f.drivers = append(f.drivers, driver)
	return driver, nil
}

func (f *fakeRepo) ListDrivers(context.Context) ([]repository.Driver, error) {
	return f.drivers, nil
}

func TestListCountriesNesting(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, logger.New("test"))
	ctx := context.Background()

	pk, err := svc.CreateCountry(ctx, transport.CreateCountryRequest{Name: "Pakistan", IsoCode: "pk"})
	if err != nil {
		t.Fatalf("CreateCountry: %v", err)
	}
	if pk.IsoCode != "PK" {
		t.Errorf("iso code = %q, want upper-cased PK", pk.IsoCode)
	}

	punjab, err := svc.CreateState(ctx, transport.CreateStateRequest{Name: "Punjab", CountryID: pk.ID})
	if err != nil {
		t.Fatalf("CreateState: %v", err)
	}
	if _, err := svc.CreateCity(ctx, transport.CreateCityRequest{Name: "Lahore", StateID: punjab.ID}); err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	if _, err := svc.CreateCountry(ctx, transport.CreateCountryRequest{Name: "United Arab Emirates", IsoCode: "AE"}); err != nil {
		t.Fatalf("CreateCountry: %v", err)
	}

	countries, err := svc.ListCountries(ctx)
	if err != nil {
		t.Fatalf("ListCountries: %v", err)
	}
	if len(countries) != 2 {
		t.Fatalf("countries = %d, want 2", len(countries))
	}

	var got transport.CountryResponse
	for _, c := range countries {
		if c.IsoCode == "PK" {
			got = c
		}
	}
	if len(got.States) != 1 || got.States[0].Name != "Punjab" {
		t.Fatalf("states = %+v, want Punjab", got.States)
	}
	if len(got.States[0].Cities) != 1 || got.States[0].Cities[0].Name != "Lahore" {
		t.Errorf("cities = %+v, want Lahore", got.States[0].Cities)
	}

	for _, c := range countries {
		if c.IsoCode == "AE" && c.States == nil {
			t.Error("empty states should be [], not nil")
		}
	}
}

func TestCreateVisaTypeDuplicate(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, logger.New("test"))

	if _, err := svc.CreateVisaType(context.Background(), transport.CreateVisaTypeRequest{Name: "Work"}); err != nil {
		t.Fatalf("CreateVisaType: %v", err)
	}
	_, err := svc.CreateVisaType(context.Background(), transport.CreateVisaTypeRequest{Name: "Work"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate err = %v, want conflict", err)
	}
}
