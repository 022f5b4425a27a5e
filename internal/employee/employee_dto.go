package employee

type AddressRequest struct {
	House    string `json:"house"`
	Barangay string `json:"barangay"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
}

type CreateEmployeeRequest struct {
	EmployeeNumber string         `json:"employee_number"`
	FirstName      string         `json:"first_name" binding:"required"`
	LastName       string         `json:"last_name" binding:"required"`
	Email          string         `json:"email" binding:"required,email"`
	Cellphone      string         `json:"cellphone"`
	Department     string         `json:"department" binding:"required"`
	Position       string         `json:"position" binding:"required"`
	HireDate       string         `json:"hire_date" binding:"required"`
	Address        AddressRequest `json:"address"`
}

type UpdateEmployeeRequest struct {
	FirstName  string         `json:"first_name" binding:"required"`
	LastName   string         `json:"last_name" binding:"required"`
	Email      string         `json:"email" binding:"required,email"`
	Cellphone  string         `json:"cellphone"`
	Department string         `json:"department" binding:"required"`
	Position   string         `json:"position" binding:"required"`
	Address    AddressRequest `json:"address"`
}

type AddressResponse struct {
	House    string `json:"house"`
	Barangay string `json:"barangay"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	EmployeeNumber string          `json:"employee_number"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Cellphone      string          `json:"cellphone,omitempty"`
	Department     string          `json:"department"`
	Position       string          `json:"position"`
	Salary         float64         `json:"salary"`
	HireDate       string          `json:"hire_date"`
	Address        AddressResponse `json:"address"`
}
