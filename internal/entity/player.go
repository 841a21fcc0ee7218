package entity

type Player struct {
	Name       string `json:"name"`
	Mark       Cell   `json:"mark"`
	IsComputer bool   `json:"is_computer,omitempty"`
}
