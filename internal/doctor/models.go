package doctor

// Doctor is one entry in the directory backing the appointment form's
// doctor field.
type Doctor struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// ListResponse wraps the directory for API responses.
type ListResponse struct {
	Success bool     `json:"success"`
	Doctors []Doctor `json:"doctors"`
	Total   int      `json:"total"`
}
