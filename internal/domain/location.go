package domain

type Location struct {
	ID              int64  `json:"id"`
	AddressLocality string `json:"addressLocality"`
	PostalCode      string `json:"postalCode"`
	StreetAddress   string `json:"streetAddress"`
	AddressCountry  string `json:"addressCountry"`
}
