package models

// Customer is a returning client, keyed by normalized email. Customers are
// upserted with merge semantics on every quote request and never deleted.
type Customer struct {
	Email     string `bson:"email" json:"email"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Phone     string `bson:"phone" json:"phone"`
	CreatedAt string `bson:"createdAt" json:"createdAt"`
	UpdatedAt string `bson:"updatedAt" json:"updatedAt"`
}
