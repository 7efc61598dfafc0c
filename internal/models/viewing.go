package models

import (
	"encoding/json"
	"time"
)

// Party is a reference to a viewing participant. The server sends either a
// bare id string or a populated object, depending on the endpoint.
type Party struct {
	ID   string `json:"_id"`
	User *User  `json:"user,omitempty"`
}

func (p *Party) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &p.ID)
	}
	type alias Party
	return json.Unmarshal(b, (*alias)(p))
}

type FeedbackEntry struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ViewingFeedback holds feedback from either side of a viewing.
type ViewingFeedback struct {
	Tenant *FeedbackEntry `json:"tenant,omitempty"`
	Agent  *FeedbackEntry `json:"agent,omitempty"`
}

// ViewingProperty is the property reference embedded in viewing payloads:
// a bare id string or a populated summary, like Party.
type ViewingProperty struct {
	ID      string          `json:"_id"`
	Title   string          `json:"title"`
	Address PropertyAddress `json:"address"`
	Images  []PropertyImage `json:"images,omitempty"`
}

func (v *ViewingProperty) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &v.ID)
	}
	type alias ViewingProperty
	return json.Unmarshal(b, (*alias)(v))
}

type Viewing struct {
	ID               string           `json:"_id"`
	Property         ViewingProperty  `json:"property"`
	Tenant           Party            `json:"tenant"`
	Agent            *Party           `json:"agent,omitempty"`
	Landlord         *Party           `json:"landlord,omitempty"`
	ScheduledDate    time.Time        `json:"scheduledDate"`
	Status           ViewingStatus    `json:"status"`
	IsFarDistance    bool             `json:"isFarDistance"`
	AdditionalFee    float64          `json:"additionalFee"`
	CancellationTime *time.Time       `json:"cancellationTime,omitempty"`
	Feedback         *ViewingFeedback `json:"feedback,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Transaction      string           `json:"transaction,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// Upcoming reports whether the viewing belongs in the "upcoming" bucket at
// the given instant. A viewing is upcoming while its date is still ahead OR
// its status is pending or confirmed, so a confirmed viewing whose date has
// elapsed stays upcoming until an explicit status transition moves it.
func (v Viewing) Upcoming(now time.Time) bool {
	return v.ScheduledDate.After(now) ||
		v.Status == ViewingPending ||
		v.Status == ViewingConfirmed
}

// Subscription is the tenant viewing-subscription state.
type Subscription struct {
	IsActive               bool   `json:"isActive"`
	StartDate              string `json:"startDate"`
	EndDate                string `json:"endDate"`
	BaseViewings           int    `json:"baseViewings"`
	ExtraViewingsPurchased int    `json:"extraViewingsPurchased"`
	ViewingsRemaining      int    `json:"viewingsRemaining"`
	TransactionID          string `json:"transactionId,omitempty"`
}

// Marketplace pricing constants, in Naira.
const (
	SubscriptionFee = 20000
	ViewingQuota    = 5
	ExtraViewingFee = 1000
)

// CancellationThresholdHours is the free-cancellation window before a
// scheduled viewing.
const CancellationThresholdHours = 24
