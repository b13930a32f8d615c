package models

// LoadStop is a stop as sent to the Load service, with its derived order.
type LoadStop struct {
	StopType          StopType `json:"stopType"`
	StopOrder         int      `json:"stopOrder"`
	ContactPersonName string   `json:"contactPersonName,omitempty"`
	ContactPhone      string   `json:"contactPhone,omitempty"`
	Address           string   `json:"address"`
	City              string   `json:"city"`
	District          string   `json:"district"`
	Country           string   `json:"country"`
}

// LoadPayload is the body of POST /api/load/create.
type LoadPayload struct {
	UserID            string     `json:"userId"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Weight            *float64   `json:"weight,omitempty"`
	Volume            *float64   `json:"volume,omitempty"`
	ContactPersonName string     `json:"contactPersonName,omitempty"`
	ContactPhone      string     `json:"contactPhone,omitempty"`
	ContactEmail      string     `json:"contactEmail,omitempty"`
	LoadStops         []LoadStop `json:"loadStops"`
}

// SubmitResult is the envelope both backend services answer with.
type SubmitResult struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message,omitempty"`
}

// LoadStatus is the lifecycle state shown on the loads screen.
type LoadStatus string

const (
	LoadDraft     LoadStatus = "draft"
	LoadPublished LoadStatus = "published"
	LoadMatched   LoadStatus = "matched"
	LoadCompleted LoadStatus = "completed"
)

// Load is a row of the Load service list endpoint.
type Load struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Weight            *float64   `json:"weight,omitempty"`
	Volume            *float64   `json:"volume,omitempty"`
	ContactPersonName string     `json:"contactPersonName,omitempty"`
	ContactPhone      string     `json:"contactPhone,omitempty"`
	ContactEmail      string     `json:"contactEmail,omitempty"`
	Status            LoadStatus `json:"status,omitempty"`
	LoadStops         []LoadStop `json:"loadStops,omitempty"`
}

// DisplayStatus falls back to draft for unknown or empty states.
func (l Load) DisplayStatus() LoadStatus {
	switch l.Status {
	case LoadDraft, LoadPublished, LoadMatched, LoadCompleted:
		return l.Status
	default:
		return LoadDraft
	}
}
