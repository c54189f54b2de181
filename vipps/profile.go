package vipps

// Profile is the subset of the Vipps userinfo response the broker keeps.
// Field names follow the OIDC claims Vipps returns for the
// "openid name phoneNumber email address birthDate" scope set.
type Profile struct {
	Sub         string   `json:"sub"`
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Address     *Address `json:"address,omitempty"`
	BirthDate   string   `json:"birthdate,omitempty"`
}

type Address struct {
	StreetAddress string `json:"street_address,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Region        string `json:"region,omitempty"`
	Country       string `json:"country,omitempty"`
}

// Tokens is the result of a successful authorization-code exchange.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
}
