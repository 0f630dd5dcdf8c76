package transport

// CreateCountryRequest adds a country.
type CreateCountryRequest struct {
	Name    string `json:"name" validate:"required"`
	IsoCode string `json:"isoCode" validate:"required,uppercase,len=2"`
}

// CreateStateRequest adds a state under a country.
type CreateStateRequest struct {
	Name      string `json:"name" validate:"required"`
	CountryID string `json:"countryId" validate:"required,uuid"`
}

// CreateCityRequest adds a city under a state.
type CreateCityRequest struct {
	Name    string `json:"name" validate:"required"`
	StateID string `json:"stateId" validate:"required,uuid"`
}

// CreateVisaTypeRequest adds a visa type.
type CreateVisaTypeRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateShippingCompanyRequest adds a shipping company.
type CreateShippingCompanyRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// CreateDriverRequest adds a delivery driver.
type CreateDriverRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// CityResponse, StateResponse, and CountryResponse form the nested
// location listing.
type CityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StateResponse struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Cities []CityResponse `json:"cities"`
}

type CountryResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	IsoCode string          `json:"isoCode"`
	States  []StateResponse `json:"states"`
}

// VisaTypeResponse is the API shape of a visa type.
type VisaTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShippingCompanyResponse is the API shape of a shipping company.
type ShippingCompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// DriverResponse is the API shape of a driver.
type DriverResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}
