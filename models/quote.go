package models

// QuoteInput carries everything the booking form submits when requesting a
// quote. Email is the only required field; the rest defaults to empty.
type QuoteInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`

	Address      string   `json:"address"`
	CleanType    string   `json:"cleanType"`
	PropertyType string   `json:"propertyType"`
	Bedrooms     string   `json:"bedrooms"`
	Bathrooms    string   `json:"bathrooms"`
	Occupancy    string   `json:"occupancy"`
	AddOns       []string `json:"addOns"`

	BasePrice  float64 `json:"basePrice"`
	AddOnTotal float64 `json:"addOnTotal"`
	TotalMin   float64 `json:"totalMin"`
	TotalMax   float64 `json:"totalMax"`

	BookingDate   string `json:"bookingDate"`
	BookingTime   string `json:"bookingTime"`
	PaymentMethod string `json:"paymentMethod"`
}
