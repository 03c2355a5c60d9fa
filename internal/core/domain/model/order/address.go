package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// MinStreetLength is the minimum number of characters of a street line.
const MinStreetLength = 5

var (
	// ErrAddressIsNotConstructed is returned when an Address was not created via NewAddress.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

	zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// Address is a validated shipping or billing address.
// All fields are required; the zip code follows the 5 or 5+4 digit pattern.
type Address struct { //nolint:recvcheck //using for validation
	street  string
	city    string
	state   string
	country string
	zip     string

	guard guard.ConstructorGuard
}

// NewAddress validates and creates an Address. Surrounding whitespace is trimmed
// before validation. All violations are reported together.
//
// Example:
//
//	addr, err := order.NewAddress("221B Baker Street", "London", "LDN", "UK", "12345")
func NewAddress(street, city, state, country, zip string) (Address, error) {
	a := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setStreet(street),
		a.setRequired(&a.city, "city", city),
		a.setRequired(&a.state, "state", state),
		a.setRequired(&a.country, "country", country),
		a.setZip(zip),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string { return a.street }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state or region.
func (a Address) State() string { return a.state }

// Country returns the country.
func (a Address) Country() string { return a.country }

// Zip returns the postal code.
func (a Address) Zip() string { return a.zip }

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	if n := utf8.RuneCountInString(street); n < MinStreetLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"street",
			fmt.Errorf("%d characters is shorter than %d", n, MinStreetLength),
		)
	}
	a.street = street
	return nil
}

func (a *Address) setRequired(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}

func (a *Address) setZip(zip string) error {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return errs.NewValueIsRequiredError("zip")
	}
	if !zipPattern.MatchString(zip) {
		return errs.NewValueIsInvalidErrorWithCause(
			"zip",
			fmt.Errorf("%q does not match 12345 or 12345-6789", zip),
		)
	}
	a.zip = zip
	return nil
}
