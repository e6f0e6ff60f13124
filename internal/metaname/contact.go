package metaname

// Contact holds the registrant details Metaname requires when
// provisioning a domain. It is not involved in zone record sync.
type Contact struct {
	Name             string
	Email            string
	Organisation     string
	PhoneCountryCode string
	PhoneAreaCode    string
	PhoneLocalNumber string
	AddressLine1     string
	AddressLine2     string
	City             string
	Region           string
	PostalCode       string
	CountryCode      string
}

// Payload serialises the contact into the nested structure the Metaname
// provisioning methods expect. Empty optional fields become explicit
// nulls, matching what the API accepts.
func (c Contact) Payload() map[string]any {
	return map[string]any{
		"name":              c.Name,
		"email_address":     c.Email,
		"organisation_name": nullable(c.Organisation),
		"postal_address": map[string]any{
			"line1":        c.AddressLine1,
			"line2":        nullable(c.AddressLine2),
			"city":         c.City,
			"region":       nullable(c.Region),
			"postal_code":  c.PostalCode,
			"country_code": c.CountryCode,
		},
		"phone_number": map[string]any{
			"country_code": c.PhoneCountryCode,
			"area_code":    nullable(c.PhoneAreaCode),
			"local_number": c.PhoneLocalNumber,
		},
		"fax_number": nil,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
