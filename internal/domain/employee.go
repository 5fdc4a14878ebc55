package domain

// Employee is a record in the employee store.
type Employee struct {
	ID         int    `json:"Id" yaml:"id" validate:"gte=0"`
	Name       string `json:"Name" yaml:"name" validate:"required,max=128"`
	Department string `json:"Department" yaml:"department" validate:"required,max=64"`
	Salary     int64  `json:"Salary" yaml:"salary" validate:"gte=0"`
}

// CurrentUser describes the caller as returned by the current-user endpoint.
type CurrentUser struct {
	Username string `json:"Username"`
	IsAdmin  bool   `json:"IsAdmin"`
}
