package domain

// SecurityBreakdown counts redacted occurrences of sensitive data by kind.
// Counts only ever accumulate; pages contribute by field-wise addition.
type SecurityBreakdown struct {
	AccountNumbers int `json:"account_numbers"`
	MobileNumbers  int `json:"mobile_numbers"`
	Emails         int `json:"emails"`
	GovernmentIDs  int `json:"government_ids"`
	CustomerIDs    int `json:"customer_ids"`
	RoutingCodes   int `json:"routing_codes"`
	CardNumbers    int `json:"card_numbers"`
	Addresses      int `json:"addresses"`
	PersonNames    int `json:"person_names"`
}

// Add accumulates another breakdown into this one field by field.
func (s *SecurityBreakdown) Add(other SecurityBreakdown) {
	s.AccountNumbers += other.AccountNumbers
	s.MobileNumbers += other.MobileNumbers
	s.Emails += other.Emails
	s.GovernmentIDs += other.GovernmentIDs
	s.CustomerIDs += other.CustomerIDs
	s.RoutingCodes += other.RoutingCodes
	s.CardNumbers += other.CardNumbers
	s.Addresses += other.Addresses
	s.PersonNames += other.PersonNames
}

// Total returns the number of redactions across all kinds.
func (s SecurityBreakdown) Total() int {
	return s.AccountNumbers +
		s.MobileNumbers +
		s.Emails +
		s.GovernmentIDs +
		s.CustomerIDs +
		s.RoutingCodes +
		s.CardNumbers +
		s.Addresses +
		s.PersonNames
}

// ByKind returns the breakdown as a kind→count map, for metrics labels.
func (s SecurityBreakdown) ByKind() map[string]int {
	return map[string]int{
		"account_number": s.AccountNumbers,
		"mobile_number":  s.MobileNumbers,
		"email":          s.Emails,
		"government_id":  s.GovernmentIDs,
		"customer_id":    s.CustomerIDs,
		"routing_code":   s.RoutingCodes,
		"card_number":    s.CardNumbers,
		"address":        s.Addresses,
		"person_name":    s.PersonNames,
	}
}
