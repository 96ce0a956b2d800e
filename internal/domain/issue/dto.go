package issue

// CreateReportRequest represents a new facility issue report
type CreateReportRequest struct {
	Room        string   `json:"room,omitempty" validate:"omitempty,room_code"`
	Category    Category `json:"category" validate:"required,oneof=electrical furniture cleaning equipment other"`
	Description string   `json:"description" validate:"required,min=10,max=1000"`
}

// ListFilter for filtering reports in the admin view
type ListFilter struct {
	Room     string
	Category Category
	Limit    int
	Offset   int
}
