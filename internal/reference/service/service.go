package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/reference/repository"
	"backoffice_portal_backend/internal/reference/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
)

// Service implements reference data management.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new reference data service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateCountry adds a country with an upper-cased ISO code.
func (s *Service) CreateCountry(ctx context.Context, req transport.CreateCountryRequest) (transport.CountryResponse, error) {
	country, err := s.repo.CreateCountry(ctx, req.Name, strings.ToUpper(req.IsoCode))
	if err != nil {
		return transport.CountryResponse{}, err
	}
	return transport.CountryResponse{
		ID:      country.ID.String(),
		Name:    country.Name,
		IsoCode: country.IsoCode,
		States:  []transport.StateResponse{},
	}, nil
}

// CreateState adds a state under a country.
func (s *Service) CreateState(ctx context.Context, req transport.CreateStateRequest) (transport.StateResponse, error) {
	countryID, err := uuid.Parse(req.CountryID)
	if err != nil {
		return transport.StateResponse{}, apperr.Validation("invalid country id")
	}
	state, err := s.repo.CreateState(ctx, req.Name, countryID)
	if err != nil {
		return transport.StateResponse{}, err
	}
	return transport.StateResponse{
		ID:     state.ID.String(),
		Name:   state.Name,
		Cities: []transport.CityResponse{},
	}, nil
}

// CreateCity adds a city under a state.
func (s *Service) CreateCity(ctx context.Context, req transport.CreateCityRequest) (transport.CityResponse, error) {
	stateID, err := uuid.Parse(req.StateID)
	if err != nil {
		return transport.CityResponse{}, apperr.Validation("invalid state id")
	}
	city, err := s.repo.CreateCity(ctx, req.Name, stateID)
	if err != nil {
		return transport.CityResponse{}, err
	}
	return transport.CityResponse{ID: city.ID.String(), Name: city.Name}, nil
}

// ListCountries returns all countries with their states and cities nested.
func (s *Service) ListCountries(ctx context.Context) ([]transport.CountryResponse, error) {
	countries, err := s.repo.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	states, err := s.repo.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, err
	}

	citiesByState := make(map[uuid.UUID][]transport.CityResponse)
	for _, c := range cities {
		citiesByState[c.StateID] = append(citiesByState[c.StateID], transport.CityResponse{
			ID:   c.ID.String(),
			Name: c.Name,
		})
	}

	statesByCountry := make(map[uuid.UUID][]transport.StateResponse)
	for _, st := range states {
		nested := citiesByState[st.ID]
		if nested == nil {
			nested = []transport.CityResponse{}
		}
		statesByCountry[st.CountryID] = append(statesByCountry[st.CountryID], transport.StateResponse{
			ID:     st.ID.String(),
			Name:   st.Name,
			Cities: nested,
		})
	}

	out := make([]transport.CountryResponse, 0, len(countries))
	for _, country := range countries {
		nested := statesByCountry[country.ID]
		if nested == nil {
			nested = []transport.StateResponse{}
		}
		out = append(out, transport.CountryResponse{
			ID:      country.ID.String(),
			Name:    country.Name,
			IsoCode: country.IsoCode,
			States:  nested,
		})
	}
	return out, nil
}

// CreateVisaType adds a visa type; duplicates are a conflict.
func (s *Service) CreateVisaType(ctx context.Context, req transport.CreateVisaTypeRequest) (transport.VisaTypeResponse, error) {
	visa, err := s.repo.CreateVisaType(ctx, req.Name)
	if err != nil {
		return transport.VisaTypeResponse{}, err
	}
	return transport.VisaTypeResponse{ID: visa.ID.String(), Name: visa.Name}, nil
}

// ListVisaTypes returns all visa types.
func (s *Service) ListVisaTypes(ctx context.Context) ([]transport.VisaTypeResponse, error) {
	visas, err := s.repo.ListVisaTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.VisaTypeResponse, 0, len(visas))
	for _, v := range visas {
		out = append(out, transport.VisaTypeResponse{ID: v.ID.String(), Name: v.Name})
	}
	return out, nil
}

// CreateShippingCompany adds a shipping company for CSR fulfillment.
func (s *Service) CreateShippingCompany(ctx context.Context, req transport.CreateShippingCompanyRequest) (transport.ShippingCompanyResponse, error) {
	company, err := s.repo.CreateShippingCompany(ctx, req.Name, req.PhoneNumber)
	if err != nil {
		return transport.ShippingCompanyResponse{}, err
	}
	return transport.ShippingCompanyResponse{
		ID:          company.ID.String(),
		Name:        company.Name,
		PhoneNumber: company.PhoneNumber,
	}, nil
}

// ListShippingCompanies returns all shipping companies.
func (s *Service) ListShippingCompanies(ctx context.Context) ([]transport.ShippingCompanyResponse, error) {
	companies, err := s.repo.ListShippingCompanies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ShippingCompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, transport.ShippingCompanyResponse{
			ID:          c.ID.String(),
			Name:        c.Name,
			PhoneNumber: c.PhoneNumber,
		})
	}
	return out, nil
}

// CreateDriver adds a delivery driver.
func (s *Service) CreateDriver(ctx context.Context, req transport.CreateDriverRequest) (transport.DriverResponse, error) {
	driver, err := s.repo.CreateDriver(ctx, req.Name, req.PhoneNumber)
	if err != nil {
		return transport.DriverResponse{}, err
	}
	return transport.DriverResponse{
		ID:          driver.ID.String(),
		Name:        driver.Name,
		PhoneNumber: driver.PhoneNumber,
	}, nil
}

// ListDrivers returns all drivers.
func (s *Service) ListDrivers(ctx context.Context) ([]transport.DriverResponse, error) {
	drivers, err := s.repo.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, transport.DriverResponse{
			ID:          d.ID.String(),
			Name:        d.Name,
			PhoneNumber: d.PhoneNumber,
		})
	}
	return out, nil
}
