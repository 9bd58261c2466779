package types

type Status string

const (
	PendingStatus   Status = "Pending"
	FulfilledStatus Status = "Fulfilled"
	CancelledStatus Status = "Cancelled"
	ResendStatus    Status = "Resend"
	RefundStatus    Status = "Refund"
)

// Shipping is the flat shipping block carried by every row of an order.
type Shipping struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Name      string `json:"name" yaml:"name"`
	Address1  string `json:"address1" yaml:"address1"`
	Address2  string `json:"address2" yaml:"address2"`
	City      string `json:"city" yaml:"city"`
	Province  string `json:"province" yaml:"province"`
	Zip       string `json:"zip" yaml:"zip"`
	Country   string `json:"country" yaml:"country"`
	Phone     string `json:"phone" yaml:"phone"`
}

type Product struct {
	ProductName  string `json:"productName"`
	ItemSKU      string `json:"itemSku"`
	MockupFront  string `json:"mockupFront"`
	MockupBack   string `json:"mockupBack"`
	ArtworkFront string `json:"artworkFront"`
	ArtworkBack  string `json:"artworkBack"`
	MockupType   string `json:"mockupType"`
}

// Order is one line item. Rows of the same order share ID.
type Order struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	LastModified string `json:"lastModified"`
	StoreID      string `json:"storeId"`
	StoreName    string `json:"storeName,omitempty"`
	Handler      string `json:"handler"`
	SKU          string `json:"sku"`
	Type         string `json:"type"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
	Tracking     string `json:"tracking"`
	Link         string `json:"link"`
	Status       Status `json:"status"`
	IsChecked    bool   `json:"isChecked"`
	ActionRole   string `json:"actionRole"`
	IsFulfilled  bool   `json:"isFulfilled"`
	Shipping
	Product
}

type Store struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
