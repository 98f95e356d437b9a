package dto

// Response is the envelope every endpoint speaks.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Integer fields that accept zero as a legal value are pointers so the
// missing-field check can tell "absent" from "0".
type DoctorPersonalInfoRequest struct {
	Name           string   `json:"name"`
	Age            *int     `json:"age"`
	Gender         string   `json:"gender"`
	Languages      []string `json:"languages"`
	ContactNumber  string   `json:"contact_number"`
	WhatsappNumber string   `json:"whatsapp_number"`
}

type DoctorProfessionalInfoRequest struct {
	Specialty         string `json:"specialty"`
	Qualification     string `json:"qualification"`
	YearsOfExperience *int   `json:"years_of_experience"`
	Address           string `json:"address"`
	City              string `json:"city"`
	Locality          string `json:"locality"`
}

type DoctorAvailabilityRequest struct {
	AvailableDays   []string `json:"available_days"`
	AvailableTiming string   `json:"available_timing"`
}

type PatientPersonalInfoRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Age         *int   `json:"age"`
	Gender      string `json:"gender"`
	City        string `json:"city"`
	Locality    string `json:"locality"`
	Address     string `json:"address"`
}

type SavedDoctorRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
}

type GoogleVerifyRequest struct {
	AccessToken string `json:"access_token"`
	UserType    string `json:"user_type"`
}
