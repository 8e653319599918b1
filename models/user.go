package models

// User 靜態帳號紀錄；引擎只做不透明查驗，不處理登入流程
type User struct {
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt hash
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// UserResponse 對外回應結構，不帶密碼雜湊
type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
	}
}
