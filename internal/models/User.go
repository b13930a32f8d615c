package models

// User is a row of the Identity service user list; the drivers screen shows
// these.
type User struct {
	ID                      string   `json:"id"`
	UserCode                string   `json:"userCode,omitempty"`
	Name                    string   `json:"name"`
	Surname                 string   `json:"surname"`
	Email                   string   `json:"email"`
	PhoneNumber             string   `json:"phoneNumber,omitempty"`
	UserType                UserType `json:"userType"`
	Gender                  string   `json:"gender,omitempty"`
	BloodType               string   `json:"bloodType,omitempty"`
	TurkishRepublicIDNumber string   `json:"turkishRepublicIdNumber,omitempty"`
	ProfileImageURL         string   `json:"profileImageUrl,omitempty"`
	IsEmailConfirmed        bool     `json:"isEmailConfirmed"`
	IsPhoneNumberConfirmed  bool     `json:"isPhoneNumberConfirmed"`
}

// FullName joins name and surname for display.
func (u User) FullName() string {
	switch {
	case u.Surname == "":
		return u.Name
	case u.Name == "":
		return u.Surname
	default:
		return u.Name + " " + u.Surname
	}
}
