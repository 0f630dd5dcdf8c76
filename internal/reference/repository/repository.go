package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice_portal_backend/platform/apperr"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reference data repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Country, State, and City are rows of the location tables.
type Country struct {
	ID      uuid.UUID
	Name    string
	IsoCode string
}

type State struct {
	ID        uuid.UUID
	Name      string
	CountryID uuid.UUID
}

type City struct {
	ID      uuid.UUID
	Name    string
	StateID uuid.UUID
}

// VisaType is a row of the visa_types table.
type VisaType struct {
	ID   uuid.UUID
	Name string
}

// ShippingCompany and Driver are CSR fulfillment lookups.
type ShippingCompany struct {
	ID          uuid.UUID
	Name        string
	PhoneNumber string
}

type Driver struct {
	ID          uuid.UUID
	Name        string
	PhoneNumber string
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateCountry inserts a country.
func (r *Repo) CreateCountry(ctx context.Context, name, isoCode string) (Country, error) {
	var country Country
	err := r.pool.QueryRow(ctx, `
		INSERT INTO countries (name, iso_code) VALUES ($1, $2)
		RETURNING id, name, iso_code
	`, name, isoCode).Scan(&country.ID, &country.Name, &country.IsoCode)
	if isUniqueViolation(err) {
		return Country{}, apperr.Conflict("country already exists")
	}
	if err != nil {
		return Country{}, fmt.Errorf("create country: %w", err)
	}
	return country, nil
}

// CreateState inserts a state under a country.
func (r *Repo) CreateState(ctx context.Context, name string, countryID uuid.UUID) (State, error) {
	var state State
	err := r.pool.QueryRow(ctx, `
		INSERT INTO states (name, country_id) VALUES ($1, $2)
		RETURNING id, name, country_id
	`, name, countryID).Scan(&state.ID, &state.Name, &state.CountryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return State{}, apperr.NotFound("country not found")
		}
		return State{}, fmt.Errorf("create state: %w", err)
	}
	return state, nil
}

// CreateCity inserts a city under a state.
func (r *Repo) CreateCity(ctx context.Context, name string, stateID uuid.UUID) (City, error) {
	var city City
	err := r.pool.QueryRow(ctx, `
		INSERT INTO cities (name, state_id) VALUES ($1, $2)
		RETURNING id, name, state_id
	`, name, stateID).Scan(&city.ID, &city.Name, &city.StateID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return City{}, apperr.NotFound("state not found")
		}
		return City{}, fmt.Errorf("create city: %w", err)
	}
	return city, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// ListCountries returns all countries ordered by name.
func (r *Repo) ListCountries(ctx context.Context) ([]Country, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, iso_code FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]Country, 0)
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.Name, &c.IsoCode); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

// ListStates returns all states ordered by name.
func (r *Repo) ListStates(ctx context.Context) ([]State, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, country_id FROM states ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()

	states := make([]State, 0)
	for rows.Next() {
		var s State
		if err := rows.Scan(&s.ID, &s.Name, &s.CountryID); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

// ListCities returns all cities ordered by name.
func (r *Repo) ListCities(ctx context.Context) ([]City, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, state_id FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	cities := make([]City, 0)
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// CreateVisaType inserts a visa type; duplicate names are a conflict.
func (r *Repo) CreateVisaType(ctx context.Context, name string) (VisaType, error) {
	var visa VisaType
	err := r.pool.QueryRow(ctx, `
		INSERT INTO visa_types (name) VALUES ($1) RETURNING id, name
	`, name).Scan(&visa.ID, &visa.Name)
	if isUniqueViolation(err) {
		return VisaType{}, apperr.Conflict("visa type already exists")
	}
	if err != nil {
		return VisaType{}, fmt.Errorf("create visa type: %w", err)
	}
	return visa, nil
}

// ListVisaTypes returns all visa types ordered by name.
func (r *Repo) ListVisaTypes(ctx context.Context) ([]VisaType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM visa_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list visa types: %w", err)
	}
	defer rows.Close()

	visas := make([]VisaType, 0)
	for rows.Next() {
		var v VisaType
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("scan visa type: %w", err)
		}
		visas = append(visas, v)
	}
	return visas, rows.Err()
}

// GetVisaTypeByID returns a single visa type.
func (r *Repo) GetVisaTypeByID(ctx context.Context, id uuid.UUID) (VisaType, error) {
	var visa VisaType
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM visa_types WHERE id = $1`, id).Scan(&visa.ID, &visa.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return VisaType{}, apperr.NotFound("visa type not found")
	}
	if err != nil {
		return VisaType{}, fmt.Errorf("get visa type: %w", err)
	}
	return visa, nil
}

// CreateShippingCompany inserts a shipping company.
func (r *Repo) CreateShippingCompany(ctx context.Context, name, phoneNumber string) (ShippingCompany, error) {
	var company ShippingCompany
	err := r.pool.QueryRow(ctx, `
		INSERT INTO shipping_companies (name, phone_number) VALUES ($1, $2)
		RETURNING id, name, phone_number
	`, name, phoneNumber).Scan(&company.ID, &company.Name, &company.PhoneNumber)
	if err != nil {
		return ShippingCompany{}, fmt.Errorf("create shipping company: %w", err)
	}
	return company, nil
}

// ListShippingCompanies returns all shipping companies ordered by name.
func (r *Repo) ListShippingCompanies(ctx context.Context) ([]ShippingCompany, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, phone_number FROM shipping_companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list shipping companies: %w", err)
	}
	defer rows.Close()

	companies := make([]ShippingCompany, 0)
	for rows.Next() {
		var c ShippingCompany
		if err := rows.Scan(&c.ID, &c.Name, &c.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scan shipping company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// CreateDriver inserts a driver.
func (r *Repo) CreateDriver(ctx context.Context, name, phoneNumber string) (Driver, error) {
	var driver Driver
	err := r.pool.QueryRow(ctx, `
		INSERT INTO drivers (name, phone_number) VALUES ($1, $2)
		RETURNING id, name, phone_number
	`, name, phoneNumber).Scan(&driver.ID, &driver.Name, &driver.PhoneNumber)
	if err != nil {
		return Driver{}, fmt.Errorf("create driver: %w", err)
	}
	return driver, nil
}

// ListDrivers returns all drivers ordered by name.
func (r *Repo) ListDrivers(ctx context.Context) ([]Driver, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, phone_number FROM drivers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	drivers := make([]Driver, 0)
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}
