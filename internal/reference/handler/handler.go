package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice_portal_backend/internal/reference/service"
	"backoffice_portal_backend/internal/reference/transport"
	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for reference data.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new reference data handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func bind[T any](h *Handler, c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}

// CreateCountry adds a country.
// POST /api/v1/country/add
func (h *Handler) CreateCountry(c *gin.Context) {
	req, ok := bind[transport.CreateCountryRequest](h, c)
	if !ok {
		return
	}
	result, err := h.svc.CreateCountry(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "country created", result)
}

// CreateState adds a state.
// POST /api/v1/country/state/add
func (h *Handler) CreateState(c *gin.Context) {
	req, ok := bind[transport.CreateStateRequest](h, c)
	if !ok {
		return
	}
	result, err := h.svc.CreateState(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "state created", result)
}

// CreateCity adds a city.
// POST /api/v1/country/city/add
func (h *Handler) CreateCity(c *gin.Context) {
	req, ok := bind[transport.CreateCityRequest](h, c)
	if !ok {
		return
	}
	result, err := h.svc.CreateCity(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "city created", result)
}

// ListCountries returns the nested country/state/city tree.
// GET /api/v1/country/all
func (h *Handler) ListCountries(c *gin.Context) {
	result, err := h.svc.ListCountries(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "countries fetched", result)
}

// CreateVisaType adds a visa type.
// POST /api/v1/visa/add
func (h *Handler) CreateVisaType(c *gin.Context) {
	req, ok := bind[transport.CreateVisaTypeRequest](h, c)
	if !ok {
		return
	}
	result, err := h.svc.CreateVisaType(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "visa type created", result)
}

// ListVisaTypes returns all visa types.
// GET /api/v1/visa/all
func (h *Handler) ListVisaTypes(c *gin.Context) {
	result, err := h.svc.ListVisaTypes(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "visa types fetched", result)
}

// CreateShippingCompany adds a shipping company.
// POST /api/v1/reference/company/add
func (h *Handler) CreateShippingCompany(c *gin.Context) {
	req, ok := bind[transport.CreateShippingCompanyRequest](h, c)
	if !ok {
		return
	}
	result, err := h.svc.CreateShippingCompany(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "shipping company created", result)
}

// ListShippingCompanies returns all shipping companies.
// GET /api/v1/reference/company/all
func (h *Handler) ListShippingCompanies(c *gin.Context) {
	result, err := h.svc.ListShippingCompanies(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "shipping companies fetched", result)
}

// CreateDriver adds a driver.
// POST /api/v1/reference/driver/add
func (h *Handler) CreateDriver(c *gin.Context) {
	req, ok := bind[transport.CreateDriverRequest](h, c)
	if !ok {
		return
	}
	result, err := h.svc.CreateDriver(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "driver created", result)
}

// ListDrivers returns all drivers.
// GET /api/v1/reference/driver/all
func (h *Handler) ListDrivers(c *gin.Context) {
	result, err := h.svc.ListDrivers(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "drivers fetched", result)
}
