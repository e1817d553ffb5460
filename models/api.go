package models

// ScanRequest is the body of POST /api/scan. UserID is attached only when a
// session exists so the backend can save the scan to that user's history.
type ScanRequest struct {
	URL    string `json:"url" example:"https://example.com" binding:"required"`
	UserID *int64 `json:"user_id,omitempty"`
}

// ScanResponse is the success body of POST /api/scan.
type ScanResponse struct {
	Status   string        `json:"status" example:"success"`
	URL      string        `json:"url"`
	ScanTime string        `json:"scan_time"`
	Results  []CheckResult `json:"results"`
}

// Report drops the envelope.
func (r ScanResponse) Report() *ScanReport {
	results := r.Results
	if results == nil {
		results = []CheckResult{}
	}
	return &ScanReport{URL: r.URL, ScanTime: r.ScanTime, Results: results}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by login, register and profile updates.
type AuthResponse struct {
	Message string  `json:"message"`
	User    Session `json:"user"`
}

// ProfileUpdateRequest is the body of PUT /api/profile. An empty Password
// leaves the password unchanged.
type ProfileUpdateRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status    string `json:"status" example:"healthy"`
	Service   string `json:"service" example:"WebSecura Backend"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp"`
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalUsers    int `json:"total_users"`
	ActiveUsers   int `json:"active_users"`
	AdminUsers    int `json:"admin_users"`
	TotalScans    int `json:"total_scans"`
	ScansToday    int `json:"scans_today"`
	TotalMessages int `json:"total_messages"`
}

// AdminUser is one row of the admin user table.
type AdminUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsActive  bool   `json:"is_active"`
	ScanCount int    `json:"scan_count"`
	CreatedAt string `json:"created_at"`
}

// AdminUserUpdate is the body of PUT /api/admin/users/{id}. Nil fields are
// left untouched server side.
type AdminUserUpdate struct {
	AdminID  int64  `json:"admin_id"`
	IsAdmin  *bool  `json:"is_admin,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
	Username string `json:"username,omitempty"`
}

// ContactMessage is a contact form submission as listed to admins.
type ContactMessage struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
