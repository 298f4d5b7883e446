package split

type ShopPaymentInput struct {
	GroupID     uint    `json:"groupId"`
	ShopUpiID   string  `json:"shopUpiId"`
	TotalAmount float64 `json:"totalAmount"`
}

type MemberShare struct {
	ID      uint   `json:"id"`
	UserID  uint   `json:"userId"`
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	UpiLink string `json:"upiLink"`
	QR      string `json:"qr"`
}

type ShopPaymentResult struct {
	GroupID     uint          `json:"groupId"`
	GroupName   string        `json:"groupName"`
	ShopUpiID   string        `json:"shopUpiId"`
	TotalAmount string        `json:"totalAmount"`
	UpiLink     string        `json:"upiLink"`
	QR          string        `json:"qr"`
	Members     []MemberShare `json:"members"`
}

type LinkInput struct {
	UpiID  string  `json:"upiId"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type LinkResult struct {
	UpiID   string `json:"upiId"`
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	UpiLink string `json:"upiLink"`
	QR      string `json:"qr"`
}
