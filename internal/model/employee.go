// Package model holds the domain types shared by the repository,
// service and handler layers.
package model

// Employee is a directory record.
type Employee struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	DateOfJoining Date   `json:"date_of_joining"`
}

// EmployeeFields are the caller-supplied values of a new employee.
type EmployeeFields struct {
	Name          string
	Email         string
	Department    string
	Designation   string
	DateOfJoining Date
}

// EmployeeList is one page of a search together with the total number of
// matching records before pagination.
type EmployeeList struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
