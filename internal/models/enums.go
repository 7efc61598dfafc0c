package models

// ------------------------------------------------------------------------
// Role enumerates the account types the marketplace serves.
// ------------------------------------------------------------------------
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// ------------------------------------------------------------------------
// ViewingStatus is the fixed status set for booked viewings.
// ------------------------------------------------------------------------
type ViewingStatus string

const (
	ViewingPending   ViewingStatus = "pending"
	ViewingConfirmed ViewingStatus = "confirmed"
	ViewingCompleted ViewingStatus = "completed"
	ViewingCanceled  ViewingStatus = "canceled"
	ViewingNoShow    ViewingStatus = "no_show"
)

// ------------------------------------------------------------------------
// PropertyStatus covers the listing lifecycle.
// ------------------------------------------------------------------------
type PropertyStatus string

const (
	PropertyAvailable       PropertyStatus = "available"
	PropertyBooked          PropertyStatus = "booked"
	PropertyRented          PropertyStatus = "rented"
	PropertyHidden          PropertyStatus = "hidden"
	PropertyPendingApproval PropertyStatus = "pending_approval"
)

type PropertyType string

const (
	PropertyApartment     PropertyType = "apartment"
	PropertyHouse         PropertyType = "house"
	PropertyDuplex        PropertyType = "duplex"
	PropertyBungalow      PropertyType = "bungalow"
	PropertySelfContained PropertyType = "self_contained"
	PropertyCommercial    PropertyType = "commercial"
)

type PropertyFeature string

const (
	FeatureAirConditioning PropertyFeature = "air_conditioning"
	FeatureBalcony         PropertyFeature = "balcony"
	FeatureSwimmingPool    PropertyFeature = "swimming_pool"
	FeatureGym             PropertyFeature = "gym"
	FeatureSecurity        PropertyFeature = "security"
	FeatureParking         PropertyFeature = "parking"
	FeatureFurnished       PropertyFeature = "furnished"
	FeatureBorehole        PropertyFeature = "borehole"
	FeatureGenerator       PropertyFeature = "generator"
	FeatureElevator        PropertyFeature = "elevator"
	FeatureWifi            PropertyFeature = "wifi"
	FeatureLaundry         PropertyFeature = "laundry"
)

type PaymentFrequency string

const (
	PayMonthly    PaymentFrequency = "monthly"
	PayQuarterly  PaymentFrequency = "quarterly"
	PayBiannually PaymentFrequency = "biannually"
	PayYearly     PaymentFrequency = "yearly"
)
