package dto

type SettingItemRequest struct {
	Item string `json:"item" validate:"required"`
}

type SettingResponse struct {
	Key  string   `json:"key"`
	List []string `json:"list"`
}
