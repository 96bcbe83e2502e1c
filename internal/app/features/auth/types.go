// internal/app/features/auth/types.go
package auth

// loginRequest is the body for both login endpoints.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is returned on successful login.
type loginResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Team     string `json:"team,omitempty"`
}

// updateEmployeeRequest is the body for the admin employee update.
// Empty fields are left unchanged.
type updateEmployeeRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Team        string `json:"team"`
	Designation string `json:"designation"`
}

// loginHistoryLimit caps the login history response for one account.
const loginHistoryLimit = 20

// registerRequest is the body for employee registration.
type registerRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Team        string `json:"team"`
	Designation string `json:"designation"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}
