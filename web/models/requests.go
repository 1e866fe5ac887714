package models

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	CollegeID string `json:"college_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UploadItemRequest struct {
	ItemName   string `json:"item_name"`
	Condition  string `json:"condition"`
	ImageURL   string `json:"image_url"`
	UserEmail  string `json:"user_email"`
	ItemType   string `json:"item_type"`
	CreditCost *int64 `json:"credit_cost"`
}

type SwapRequestRequest struct {
	RequesterEmail  string `json:"requester_email"`
	ItemRequestedID string `json:"item_requested_id"`
	ItemOfferedID   string `json:"item_offered_id"`
}

type SwapRespondRequest struct {
	SwapID   string `json:"swap_id"`
	Response string `json:"response"`
}

type BuyCreditsRequest struct {
	Email       string `json:"email"`
	AmountToBuy *int64 `json:"amount_to_buy"`
}
