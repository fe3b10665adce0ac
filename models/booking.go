package models

// Booking status lifecycle. A booking is created as a quote and moves to paid
// only on a fully verified payment notification. Paid is never reverted.
const (
	BookingStatusQuote = "quote"
	BookingStatusPaid  = "paid"
)

// Booking is one quote/job instance for a customer, keyed by
// (customer email, booking id). The booking id is immutable once created.
type Booking struct {
	Email        string `bson:"email" json:"email"`
	BookingID    string `bson:"bookingId" json:"bookingId"`
	Address      string `bson:"address" json:"address"`
	CleanType    string `bson:"cleanType" json:"cleanType"`
	PropertyType string `bson:"propertyType" json:"propertyType"`
	Bedrooms     string `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    string `bson:"bathrooms" json:"bathrooms"`
	Occupancy    string `bson:"occupancy" json:"occupancy"`
	AddOns       string `bson:"addOns" json:"addOns"` // JSON-serialized list of add-on labels

	BasePrice     float64 `bson:"basePrice" json:"basePrice"`
	AddOnTotal    float64 `bson:"addOnTotal" json:"addOnTotal"`
	TotalMin      float64 `bson:"totalMin" json:"totalMin"`
	TotalMax      float64 `bson:"totalMax" json:"totalMax"`
	PaymentAmount float64 `bson:"paymentAmount,omitempty" json:"paymentAmount,omitempty"`

	BookingDate   string `bson:"bookingDate" json:"bookingDate"` // "YYYY-MM-DD"
	BookingTime   string `bson:"bookingTime" json:"bookingTime"`
	PaymentMethod string `bson:"paymentMethod" json:"paymentMethod"`

	Status           string `bson:"status" json:"status"`
	PayfastPaymentID string `bson:"payfastPaymentId,omitempty" json:"payfastPaymentId,omitempty"`
	PayfastStatus    string `bson:"payfastStatus,omitempty" json:"payfastStatus,omitempty"`
	PaidAt           string `bson:"paidAt,omitempty" json:"paidAt,omitempty"`

	CreatedAt string `bson:"createdAt" json:"createdAt"`
	UpdatedAt string `bson:"updatedAt" json:"updatedAt"`
}
