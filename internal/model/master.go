package model

// Master data is read-only for applicants. Admins maintain the location
// tables through the *Record types below.

type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type State struct {
	ID        string `json:"id"`
	CountryID string `json:"countryId"`
	Name      string `json:"name"`
	Code      string `json:"code"`
}

type City struct {
	ID      string `json:"id"`
	StateID string `json:"stateId"`
	Name    string `json:"name"`
}

type College struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Address string  `json:"address"`
	CityID  *string `json:"cityId"`
}

type Branch struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Trade is a program of study nested under a Branch. Fee items are trade-scoped.
type Trade struct {
	ID          string `json:"id"`
	BranchID    string `json:"branchId"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
}

// CountryRecord is a country as administered, including inactive rows.
type CountryRecord struct {
	Country
	IsActive     bool `json:"isActive"`
	StudentCount int  `json:"studentCount"`
	StateCount   int  `json:"stateCount"`
}

type StateRecord struct {
	State
	IsActive     bool `json:"isActive"`
	StudentCount int  `json:"studentCount"`
	CityCount    int  `json:"cityCount"`
}

type CityRecord struct {
	City
	IsActive     bool `json:"isActive"`
	StudentCount int  `json:"studentCount"`
}

// Usage counts the rows that point at a master record. A record in use cannot
// be deleted.
type Usage struct {
	Applications int
	Children     int
}

func (u Usage) InUse() bool {
	return u.Applications > 0 || u.Children > 0
}
